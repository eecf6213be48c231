package services

// ServiceContainer holds all services required by the handlers layer.
type ServiceContainer struct {
	Account    AccountSvcFacade
	Journal    JournalSvcFacade
	Reporting  ReportingSvcFacade
	Health     HealthSvcFacade
	Settlement SettlementSvcFacade
	Commission CommissionSvcFacade
	Currency   CurrencySvcFacade
	Settings   SettingsSvcFacade
}
