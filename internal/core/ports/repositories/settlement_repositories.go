package repositories

import (
	"context"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
)

// SettingsRepository reads and writes the single ledger-settings row
// holding the named account-role mappings.
type SettingsRepository interface {
	GetLedgerSettings(ctx context.Context) (*domain.LedgerSettings, error)
	SaveLedgerSettings(ctx context.Context, settings domain.LedgerSettings) error
}

// EmployeeRepository defines read operations over the employee directory.
type EmployeeRepository interface {
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}

// CommissionRuleRepository defines persistence for commission rules.
type CommissionRuleRepository interface {
	SaveRule(ctx context.Context, rule domain.CommissionRule) error
	ListRules(ctx context.Context) ([]domain.CommissionRule, error)
}

// BookingRepository defines read operations over booking snapshots.
type BookingRepository interface {
	FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error)
	FindBookingsByIDs(ctx context.Context, bookingIDs []string) ([]domain.Booking, error)
}
