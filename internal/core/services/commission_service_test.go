package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	"github.com/dsadvance/parcel_ledger_app/internal/core/services"
)

func driver(zone string, salaryType domain.DriverSalaryType) domain.Employee {
	return domain.Employee{
		EmployeeID: "drv-1",
		Name:       "Sok Dara",
		IsDriver:   true,
		Driver: &domain.DriverProfile{
			ZoneName:        zone,
			SalaryType:      salaryType,
			WalletAccountID: "acc-wallet-drv-1",
		},
	}
}

func pctRule(id, zone string, salaryType domain.DriverSalaryType, action domain.CommissionAction, pct int64, isDefault bool) domain.CommissionRule {
	return domain.CommissionRule{
		RuleID:           id,
		ZoneName:         zone,
		CommissionFor:    action,
		DriverSalaryType: salaryType,
		Type:             domain.CommissionPercentage,
		Value:            decimal.NewFromInt(pct),
		IsDefault:        isDefault,
	}
}

func TestResolveCommissionRule_CascadePriority(t *testing.T) {
	emp := driver("PP-North", domain.WithBaseSalary)
	action := domain.CommissionDelivery

	zoneExact := pctRule("zone-exact", "PP-North", domain.WithBaseSalary, action, 10, false)
	zoneAll := pctRule("zone-all", "PP-North", domain.AllSalaryTypes, action, 20, false)
	globalExact := pctRule("global-exact", "", domain.WithBaseSalary, action, 30, false)
	globalAll := pctRule("global-all", "", domain.AllSalaryTypes, action, 40, false)
	fallback := pctRule("fallback", "Other-Zone", domain.WithoutBaseSalary, action, 50, true)

	// Each removal exposes the next pass of the cascade.
	rules := []domain.CommissionRule{fallback, globalAll, globalExact, zoneAll, zoneExact}

	rule, ok := services.ResolveCommissionRule(emp, action, rules)
	require.True(t, ok)
	assert.Equal(t, "zone-exact", rule.RuleID)

	rule, ok = services.ResolveCommissionRule(emp, action, rules[:4])
	require.True(t, ok)
	assert.Equal(t, "zone-all", rule.RuleID)

	rule, ok = services.ResolveCommissionRule(emp, action, rules[:3])
	require.True(t, ok)
	assert.Equal(t, "global-exact", rule.RuleID)

	rule, ok = services.ResolveCommissionRule(emp, action, rules[:2])
	require.True(t, ok)
	assert.Equal(t, "global-all", rule.RuleID)

	rule, ok = services.ResolveCommissionRule(emp, action, rules[:1])
	require.True(t, ok)
	assert.Equal(t, "fallback", rule.RuleID)

	_, ok = services.ResolveCommissionRule(emp, action, nil)
	assert.False(t, ok)
}

func TestResolveCommissionRule_FiltersByAction(t *testing.T) {
	emp := driver("PP-North", domain.WithBaseSalary)
	rules := []domain.CommissionRule{
		pctRule("pickup-rule", "PP-North", domain.WithBaseSalary, domain.CommissionPickup, 10, false),
	}

	_, ok := services.ResolveCommissionRule(emp, domain.CommissionDelivery, rules)
	assert.False(t, ok)

	rule, ok := services.ResolveCommissionRule(emp, domain.CommissionPickup, rules)
	require.True(t, ok)
	assert.Equal(t, "pickup-rule", rule.RuleID)
}

func TestResolveCommissionRule_NonDriverNeverMatches(t *testing.T) {
	clerk := domain.Employee{EmployeeID: "emp-9", Name: "Back Office", IsDriver: false}
	rules := []domain.CommissionRule{
		pctRule("fallback", "", domain.AllSalaryTypes, domain.CommissionDelivery, 50, true),
	}

	_, ok := services.ResolveCommissionRule(clerk, domain.CommissionDelivery, rules)
	assert.False(t, ok)
}

func TestCommissionAmount_Percentage(t *testing.T) {
	emp := driver("PP-North", domain.WithBaseSalary)
	booking := domain.Booking{
		BookingID: "bkg-1",
		TotalFee:  decimal.NewFromInt(10),
	}
	rules := []domain.CommissionRule{
		pctRule("pct-70", "PP-North", domain.WithBaseSalary, domain.CommissionDelivery, 70, false),
	}

	got := services.CommissionAmount(emp, booking, domain.CommissionDelivery, rules, nil, domain.CurrencyUSD, decimal.Zero)
	assert.True(t, got.Equal(decimal.NewFromFloat(7)), "got %s", got)

	// An explicit fee basis overrides the booking's total fee.
	basis := decimal.NewFromInt(5)
	got = services.CommissionAmount(emp, booking, domain.CommissionDelivery, rules, &basis, domain.CurrencyUSD, decimal.Zero)
	assert.True(t, got.Equal(decimal.NewFromFloat(3.5)), "got %s", got)
}

func TestCommissionAmount_FixedDualCurrency(t *testing.T) {
	emp := driver("PP-North", domain.WithBaseSalary)
	booking := domain.Booking{BookingID: "bkg-1", TotalFee: decimal.NewFromInt(10)}
	rules := []domain.CommissionRule{{
		RuleID:           "fixed-dual",
		ZoneName:         "PP-North",
		CommissionFor:    domain.CommissionDelivery,
		DriverSalaryType: domain.WithBaseSalary,
		Type:             domain.CommissionFixedAmount,
		ValueUSD:         decimal.NewFromFloat(1.5),
		ValueKHR:         decimal.NewFromInt(6000),
	}}

	usd := services.CommissionAmount(emp, booking, domain.CommissionDelivery, rules, nil, domain.CurrencyUSD, decimal.Zero)
	assert.True(t, usd.Equal(decimal.NewFromFloat(1.5)), "got %s", usd)

	khr := services.CommissionAmount(emp, booking, domain.CommissionDelivery, rules, nil, domain.CurrencyKHR, decimal.Zero)
	assert.True(t, khr.Equal(decimal.NewFromInt(6000)), "got %s", khr)
}

func TestCommissionAmount_FixedLegacyConversion(t *testing.T) {
	emp := driver("PP-North", domain.WithBaseSalary)
	booking := domain.Booking{BookingID: "bkg-1", TotalFee: decimal.NewFromInt(10)}
	rules := []domain.CommissionRule{{
		RuleID:           "fixed-legacy",
		ZoneName:         "PP-North",
		CommissionFor:    domain.CommissionDelivery,
		DriverSalaryType: domain.WithBaseSalary,
		Type:             domain.CommissionFixedAmount,
		Value:            decimal.NewFromInt(2),
		CurrencyCode:     domain.CurrencyUSD,
	}}

	// Legacy value converted at the supplied market rate.
	khr := services.CommissionAmount(emp, booking, domain.CommissionDelivery, rules, nil, domain.CurrencyKHR, decimal.NewFromInt(4100))
	assert.True(t, khr.Equal(decimal.NewFromInt(8200)), "got %s", khr)

	// Same currency passes through without conversion.
	usd := services.CommissionAmount(emp, booking, domain.CommissionDelivery, rules, nil, domain.CurrencyUSD, decimal.NewFromInt(4100))
	assert.True(t, usd.Equal(decimal.NewFromInt(2)), "got %s", usd)
}

func TestCommissionAmount_NoRuleYieldsZero(t *testing.T) {
	emp := driver("PP-North", domain.WithBaseSalary)
	booking := domain.Booking{BookingID: "bkg-1", TotalFee: decimal.NewFromInt(10)}

	got := services.CommissionAmount(emp, booking, domain.CommissionDelivery, nil, nil, domain.CurrencyUSD, decimal.Zero)
	assert.True(t, got.IsZero(), "got %s", got)
}

func TestCommissionServiceQuote_NotADriver(t *testing.T) {
	mockRules := new(MockCommissionRuleRepository)
	mockEmployees := new(MockEmployeeRepository)
	mockBookings := new(MockBookingRepository)
	mockCurrencies := new(MockCurrencyRepository)
	svc := services.NewCommissionService(mockRules, mockEmployees, mockBookings, mockCurrencies)

	clerk := &domain.Employee{EmployeeID: "emp-9", Name: "Back Office", IsDriver: false}
	mockEmployees.On("FindEmployeeByID", mock.Anything, "emp-9").Return(clerk, nil)

	_, err := svc.Quote(context.Background(), "emp-9", "bkg-1", domain.CommissionDelivery, domain.CurrencyUSD)
	assert.ErrorIs(t, err, services.ErrNotADriver)
	mockEmployees.AssertExpectations(t)
	mockBookings.AssertNotCalled(t, "FindBookingByID", mock.Anything, mock.Anything)
}
