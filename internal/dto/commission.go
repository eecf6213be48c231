package dto

import (
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCommissionRuleRequest defines the payload for creating a
// commission rule.
type CreateCommissionRuleRequest struct {
	ZoneName         string                    `json:"zoneName"`
	CommissionFor    domain.CommissionAction   `json:"commissionFor" binding:"required,oneof=PICKUP DELIVERY"`
	DriverSalaryType domain.DriverSalaryType   `json:"driverSalaryType" binding:"required,oneof=WITH_BASE_SALARY WITHOUT_BASE_SALARY ALL"`
	Type             domain.CommissionRuleType `json:"type" binding:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	Value            decimal.Decimal           `json:"value"`
	ValueUSD         decimal.Decimal           `json:"valueUSD"`
	ValueKHR         decimal.Decimal           `json:"valueKHR"`
	CurrencyCode     string                    `json:"currencyCode" binding:"omitempty,len=3"`
	IsDefault        bool                      `json:"isDefault"`
}

// ToCommissionRule converts the request into a domain rule.
func (in CreateCommissionRuleRequest) ToCommissionRule() domain.CommissionRule {
	return domain.CommissionRule{
		ZoneName:         in.ZoneName,
		CommissionFor:    in.CommissionFor,
		DriverSalaryType: in.DriverSalaryType,
		Type:             in.Type,
		Value:            in.Value,
		ValueUSD:         in.ValueUSD,
		ValueKHR:         in.ValueKHR,
		CurrencyCode:     in.CurrencyCode,
		IsDefault:        in.IsDefault,
	}
}

// CommissionQuoteResponse carries a computed commission amount.
type CommissionQuoteResponse struct {
	EmployeeID   string                  `json:"employeeID"`
	BookingID    string                  `json:"bookingID"`
	Action       domain.CommissionAction `json:"action"`
	CurrencyCode string                  `json:"currencyCode"`
	Amount       decimal.Decimal         `json:"amount"`
}
