package domain

import "github.com/shopspring/decimal"

// CommissionAction identifies the driver action a commission rule pays for.
type CommissionAction string

const (
	CommissionPickup   CommissionAction = "PICKUP"
	CommissionDelivery CommissionAction = "DELIVERY"
)

// DriverSalaryType classifies drivers for commission purposes.
type DriverSalaryType string

const (
	WithBaseSalary    DriverSalaryType = "WITH_BASE_SALARY"
	WithoutBaseSalary DriverSalaryType = "WITHOUT_BASE_SALARY"
	AllSalaryTypes    DriverSalaryType = "ALL"
)

// CommissionRuleType distinguishes percentage rules from fixed payouts.
type CommissionRuleType string

const (
	CommissionPercentage  CommissionRuleType = "PERCENTAGE"
	CommissionFixedAmount CommissionRuleType = "FIXED_AMOUNT"
)

// CommissionRule defines how much a driver earns for a pickup or delivery.
// ZoneName empty means the rule is a zone-less default. ValueUSD/ValueKHR
// are the preferred dual-currency fixed values; Value plus CurrencyCode is
// the legacy single-currency pair kept for rules imported before the
// dual-currency fields existed.
type CommissionRule struct {
	RuleID           string             `json:"ruleID"`
	ZoneName         string             `json:"zoneName,omitempty"`
	CommissionFor    CommissionAction   `json:"commissionFor"`
	DriverSalaryType DriverSalaryType   `json:"driverSalaryType"`
	Type             CommissionRuleType `json:"type"`
	Value            decimal.Decimal    `json:"value"` // percentage points, or legacy fixed value
	ValueUSD         decimal.Decimal    `json:"valueUSD"`
	ValueKHR         decimal.Decimal    `json:"valueKHR"`
	CurrencyCode     string             `json:"currencyCode,omitempty"` // currency of the legacy Value
	IsDefault        bool               `json:"isDefault"`
	AuditFields
}
