package repositories

import (
	"context"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
)

// CurrencyRepository defines persistence operations for the currency
// table and its configured exchange rates.
type CurrencyRepository interface {
	SaveCurrency(ctx context.Context, currency domain.Currency) error
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
