package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dsadvance/parcel_ledger_app/internal/apperrors"
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/dsadvance/parcel_ledger_app/internal/core/ports/services"
	"github.com/dsadvance/parcel_ledger_app/internal/utils/accounting"
)

var ErrNotADriver = errors.New("employee is not a driver")

// ResolveCommissionRule selects the rule that applies to a driver
// performing the given action. The cascade is evaluated in priority
// order, first match wins:
//
//  1. zone rule with the driver's exact salary classification
//  2. zone rule open to ALL salary classifications
//  3. zone-less rule with the exact salary classification
//  4. zone-less rule open to ALL
//  5. any rule for the action flagged as default
//
// A non-driver employee never matches.
func ResolveCommissionRule(emp domain.Employee, action domain.CommissionAction, rules []domain.CommissionRule) (domain.CommissionRule, bool) {
	if !emp.IsDriver || emp.Driver == nil {
		return domain.CommissionRule{}, false
	}
	zone := emp.Driver.ZoneName
	salaryType := emp.Driver.SalaryType

	passes := []func(r domain.CommissionRule) bool{
		func(r domain.CommissionRule) bool {
			return r.ZoneName != "" && r.ZoneName == zone && r.DriverSalaryType == salaryType
		},
		func(r domain.CommissionRule) bool {
			return r.ZoneName != "" && r.ZoneName == zone && r.DriverSalaryType == domain.AllSalaryTypes
		},
		func(r domain.CommissionRule) bool {
			return r.ZoneName == "" && r.DriverSalaryType == salaryType
		},
		func(r domain.CommissionRule) bool {
			return r.ZoneName == "" && r.DriverSalaryType == domain.AllSalaryTypes
		},
		func(r domain.CommissionRule) bool {
			return r.IsDefault
		},
	}

	for _, matches := range passes {
		for _, r := range rules {
			if r.CommissionFor != action {
				continue
			}
			if matches(r) {
				return r, true
			}
		}
	}
	return domain.CommissionRule{}, false
}

// CommissionAmount computes the monetary commission a driver earns for an
// action on a booking, expressed in targetCurrency.
//
// The basis is the caller-supplied per-item fee share when non-nil,
// otherwise the booking's total fee. Percentage rules yield
// Round2(basis*value/100) in the basis's own currency; no conversion is
// applied. Fixed-amount rules prefer the dual-currency values selected by
// targetCurrency and fall back to the legacy value/currency pair,
// converting at khrPerUSD when the rule's currency differs from the
// target. A zero khrPerUSD means the 4000 default.
func CommissionAmount(emp domain.Employee, booking domain.Booking, action domain.CommissionAction, rules []domain.CommissionRule, feeBasis *decimal.Decimal, targetCurrency string, khrPerUSD decimal.Decimal) decimal.Decimal {
	rule, ok := ResolveCommissionRule(emp, action, rules)
	if !ok {
		return decimal.Zero
	}
	if targetCurrency == "" {
		targetCurrency = domain.CurrencyUSD
	}

	basis := booking.TotalFee
	if feeBasis != nil {
		basis = *feeBasis
	}

	switch rule.Type {
	case domain.CommissionPercentage:
		return accounting.Round2(basis.Mul(rule.Value).Div(decimal.NewFromInt(100)))
	case domain.CommissionFixedAmount:
		if targetCurrency == domain.CurrencyKHR && !rule.ValueKHR.IsZero() {
			return accounting.Round2(rule.ValueKHR)
		}
		if targetCurrency == domain.CurrencyUSD && !rule.ValueUSD.IsZero() {
			return accounting.Round2(rule.ValueUSD)
		}
		ruleCurrency := rule.CurrencyCode
		if ruleCurrency == "" {
			ruleCurrency = domain.CurrencyUSD
		}
		return accounting.Round2(accounting.Convert(rule.Value, ruleCurrency, targetCurrency, khrPerUSD))
	}
	return decimal.Zero
}

// commissionService provides rule CRUD and commission quoting on top of
// the pure resolver.
type commissionService struct {
	BaseService
	ruleRepo     portsrepo.CommissionRuleRepository
	employeeRepo portsrepo.EmployeeRepository
	bookingRepo  portsrepo.BookingRepository
	currencyRepo portsrepo.CurrencyRepository
}

// NewCommissionService creates a new commission service.
func NewCommissionService(ruleRepo portsrepo.CommissionRuleRepository, employeeRepo portsrepo.EmployeeRepository, bookingRepo portsrepo.BookingRepository, currencyRepo portsrepo.CurrencyRepository) portssvc.CommissionSvcFacade {
	return &commissionService{
		ruleRepo:     ruleRepo,
		employeeRepo: employeeRepo,
		bookingRepo:  bookingRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.CommissionSvcFacade = (*commissionService)(nil)

// CreateRule persists a new commission rule.
func (s *commissionService) CreateRule(ctx context.Context, rule domain.CommissionRule, creatorUserID string) (*domain.CommissionRule, error) {
	if rule.CommissionFor != domain.CommissionPickup && rule.CommissionFor != domain.CommissionDelivery {
		return nil, fmt.Errorf("%w: commissionFor must be PICKUP or DELIVERY", apperrors.ErrValidation)
	}
	if rule.Type != domain.CommissionPercentage && rule.Type != domain.CommissionFixedAmount {
		return nil, fmt.Errorf("%w: rule type must be PERCENTAGE or FIXED_AMOUNT", apperrors.ErrValidation)
	}
	now := time.Now().UTC()
	rule.RuleID = uuid.NewString()
	rule.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	if err := s.ruleRepo.SaveRule(ctx, rule); err != nil {
		s.LogError(ctx, err, "Failed to save commission rule")
		return nil, fmt.Errorf("failed to save commission rule: %w", err)
	}
	s.LogInfo(ctx, "Commission rule created", slog.String("rule_id", rule.RuleID), slog.String("commission_for", string(rule.CommissionFor)))
	return &rule, nil
}

// ListRules returns all configured commission rules.
func (s *commissionService) ListRules(ctx context.Context) ([]domain.CommissionRule, error) {
	rules, err := s.ruleRepo.ListRules(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list commission rules")
		return nil, fmt.Errorf("failed to list commission rules: %w", err)
	}
	return rules, nil
}

// Quote computes the commission a driver would earn for an action on a
// booking, in the requested currency.
func (s *commissionService) Quote(ctx context.Context, employeeID, bookingID string, action domain.CommissionAction, targetCurrency string) (decimal.Decimal, error) {
	emp, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}
	if !emp.IsDriver || emp.Driver == nil {
		return decimal.Zero, ErrNotADriver
	}
	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find booking %s: %w", bookingID, err)
	}
	rules, err := s.ruleRepo.ListRules(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list commission rules: %w", err)
	}
	rate := s.marketRate(ctx)
	amount := CommissionAmount(*emp, *booking, action, rules, nil, targetCurrency, rate)
	s.LogDebug(ctx, "Commission quoted",
		slog.String("employee_id", employeeID),
		slog.String("booking_id", bookingID),
		slog.String("action", string(action)),
		slog.String("amount", amount.String()))
	return amount, nil
}

// marketRate reads the configured KHR rate, defaulting when absent.
func (s *commissionService) marketRate(ctx context.Context) decimal.Decimal {
	cur, err := s.currencyRepo.FindCurrencyByCode(ctx, domain.CurrencyKHR)
	if err != nil || cur == nil || cur.ExchangeRate.IsZero() {
		return accounting.DefaultKHRRate
	}
	return cur.ExchangeRate
}
