package services

import (
	"context"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettlementSvcFacade builds settlement previews and materializes them
// into posted journal entries.
type SettlementSvcFacade interface {
	Preview(ctx context.Context, req domain.SettlementRequest) (*domain.SettlementPreviewResult, error)
	CreateSettlementEntry(ctx context.Context, req domain.SettlementRequest, creatorUserID string) (*domain.JournalEntry, error)
}

// CommissionSvcFacade manages commission rules and quotes commission
// amounts.
type CommissionSvcFacade interface {
	CreateRule(ctx context.Context, rule domain.CommissionRule, creatorUserID string) (*domain.CommissionRule, error)
	ListRules(ctx context.Context) ([]domain.CommissionRule, error)
	Quote(ctx context.Context, employeeID, bookingID string, action domain.CommissionAction, targetCurrency string) (decimal.Decimal, error)
}

// CurrencySvcFacade manages the currency table.
type CurrencySvcFacade interface {
	CreateCurrency(ctx context.Context, currency domain.Currency, creatorUserID string) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// SettingsSvcFacade manages the named-account ledger settings.
type SettingsSvcFacade interface {
	GetLedgerSettings(ctx context.Context) (*domain.LedgerSettings, error)
	UpdateLedgerSettings(ctx context.Context, settings domain.LedgerSettings, userID string) (*domain.LedgerSettings, error)
}
