package domain

import "github.com/shopspring/decimal"

const (
	CurrencyUSD = "USD"
	CurrencyKHR = "KHR"
)

// Currency represents a supported currency and its configured exchange
// rate against the base currency (units of this currency per one unit of
// base). Exactly one currency is flagged as base.
type Currency struct {
	CurrencyCode string          `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string          `json:"symbol"`       // e.g., "$"
	Name         string          `json:"name"`         // e.g., "US Dollar"
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	IsBase       bool            `json:"isBase"`
	AuditFields
}
