package accounting

import (
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the absolute epsilon under which two monetary sums
// are considered equal. Every balance comparison in the ledger uses it;
// exact equality is never required of summed amounts.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// residualThreshold is the cutoff under which a per-account aggregate is
// treated as zero when filtering report rows.
var residualThreshold = decimal.NewFromFloat(0.001)

// DefaultKHRRate is the fallback KHR-per-USD market rate used whenever the
// currency table has no configured rate.
var DefaultKHRRate = decimal.NewFromInt(4000)

// Round2 rounds a monetary amount to two decimal places, half away from
// zero. All monetary results in the ledger pass through it so independent
// computations of the same figure can never drift.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// WithinTolerance reports whether two sums agree within BalanceTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(BalanceTolerance)
}

// IsResidual reports whether an aggregate amount is small enough to be
// treated as zero for reporting purposes.
func IsResidual(d decimal.Decimal) bool {
	return d.Abs().LessThan(residualThreshold)
}

// Convert translates an amount between USD and KHR at the given
// KHR-per-USD rate, rounding to two decimal places. Amounts already in the
// target currency pass through unchanged (unrounded), preserving whatever
// precision the source carried.
func Convert(amount decimal.Decimal, fromCurrency, toCurrency string, khrPerUSD decimal.Decimal) decimal.Decimal {
	if fromCurrency == toCurrency || fromCurrency == "" {
		return amount
	}
	if khrPerUSD.IsZero() {
		khrPerUSD = DefaultKHRRate
	}
	if fromCurrency == domain.CurrencyUSD && toCurrency == domain.CurrencyKHR {
		return Round2(amount.Mul(khrPerUSD))
	}
	if fromCurrency == domain.CurrencyKHR && toCurrency == domain.CurrencyUSD {
		return Round2(amount.Div(khrPerUSD))
	}
	// Unknown pair: leave untouched rather than guess a rate.
	return amount
}
