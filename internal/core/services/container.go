package services

import (
	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/dsadvance/parcel_ledger_app/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository
// provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:    NewAccountService(repos.AccountRepo),
		Journal:    NewJournalService(repos.JournalRepo, repos.AccountRepo),
		Reporting:  NewReportingService(repos.AccountRepo, repos.JournalRepo, repos.SettingsRepo),
		Health:     NewHealthService(repos.AccountRepo, repos.JournalRepo, repos.DocumentRepo),
		Settlement: NewSettlementService(repos),
		Commission: NewCommissionService(repos.CommissionRepo, repos.EmployeeRepo, repos.BookingRepo, repos.CurrencyRepo),
		Currency:   NewCurrencyService(repos.CurrencyRepo),
		Settings:   NewSettingsService(repos.SettingsRepo, repos.AccountRepo),
	}
}
