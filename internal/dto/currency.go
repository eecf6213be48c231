package dto

import (
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest defines the payload for registering a currency
// with its configured exchange rate against the base currency.
type CreateCurrencyRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	Symbol       string          `json:"symbol" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	IsBase       bool            `json:"isBase"`
}

// ToCurrency converts the request into a domain currency.
func (in CreateCurrencyRequest) ToCurrency() domain.Currency {
	return domain.Currency{
		CurrencyCode: in.CurrencyCode,
		Symbol:       in.Symbol,
		Name:         in.Name,
		ExchangeRate: in.ExchangeRate,
		IsBase:       in.IsBase,
	}
}
