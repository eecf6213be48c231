package accounting_test

import (
	"testing"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	"github.com/dsadvance/parcel_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"exact", "7.00", "7"},
		{"half up", "3.505", "3.51"},
		{"truncation", "3.504", "3.5"},
		{"percentage result", "7.0000", "7"},
		{"repeating division", "0.0125", "0.01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := decimal.RequireFromString(tc.in)
			assert.True(t, accounting.Round2(in).Equal(decimal.RequireFromString(tc.want)),
				"Round2(%s) = %s, want %s", tc.in, accounting.Round2(in), tc.want)
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	a := decimal.RequireFromString("100.00")
	assert.True(t, accounting.WithinTolerance(a, decimal.RequireFromString("100.009")))
	assert.True(t, accounting.WithinTolerance(a, decimal.RequireFromString("99.991")))
	assert.False(t, accounting.WithinTolerance(a, decimal.RequireFromString("100.01")))
	assert.False(t, accounting.WithinTolerance(a, decimal.RequireFromString("99.98")))
}

func TestConvert(t *testing.T) {
	rate := decimal.NewFromInt(4000)

	usd := decimal.RequireFromString("2.50")
	khr := accounting.Convert(usd, domain.CurrencyUSD, domain.CurrencyKHR, rate)
	assert.True(t, khr.Equal(decimal.NewFromInt(10000)), "got %s", khr)

	back := accounting.Convert(khr, domain.CurrencyKHR, domain.CurrencyUSD, rate)
	assert.True(t, back.Equal(usd), "got %s", back)

	// Same currency passes through untouched.
	same := accounting.Convert(usd, domain.CurrencyUSD, domain.CurrencyUSD, rate)
	assert.True(t, same.Equal(usd))

	// Zero rate falls back to the 4000 default.
	fallback := accounting.Convert(decimal.NewFromInt(1), domain.CurrencyUSD, domain.CurrencyKHR, decimal.Zero)
	assert.True(t, fallback.Equal(decimal.NewFromInt(4000)), "got %s", fallback)
}

func TestIsResidual(t *testing.T) {
	assert.True(t, accounting.IsResidual(decimal.RequireFromString("0.0005")))
	assert.True(t, accounting.IsResidual(decimal.RequireFromString("-0.0009")))
	assert.False(t, accounting.IsResidual(decimal.RequireFromString("0.001")))
	assert.False(t, accounting.IsResidual(decimal.RequireFromString("0.01")))
}
