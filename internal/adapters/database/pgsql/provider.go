package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every pgsql-backed repository over one
// shared connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:    NewAccountRepository(pool),
		JournalRepo:    NewJournalRepository(pool),
		CurrencyRepo:   NewCurrencyRepository(pool),
		SettingsRepo:   NewSettingsRepository(pool),
		EmployeeRepo:   NewEmployeeRepository(pool),
		CommissionRepo: NewCommissionRepository(pool),
		BookingRepo:    NewBookingRepository(pool),
		DocumentRepo:   NewDocumentRepository(pool),
	}
}
