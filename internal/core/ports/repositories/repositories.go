package repositories

// RepositoryProvider aggregates all repository implementations so they
// can be passed to the service container as one unit.
type RepositoryProvider struct {
	AccountRepo    AccountRepository
	JournalRepo    JournalRepository
	CurrencyRepo   CurrencyRepository
	SettingsRepo   SettingsRepository
	EmployeeRepo   EmployeeRepository
	CommissionRepo CommissionRuleRepository
	BookingRepo    BookingRepository
	DocumentRepo   DocumentRepository
}
