package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dsadvance/parcel_ledger_app/internal/apperrors"
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	"github.com/dsadvance/parcel_ledger_app/internal/core/services"
)

func TestCreateCurrency_NormalizesCode(t *testing.T) {
	mockCurrencies := new(MockCurrencyRepository)
	svc := services.NewCurrencyService(mockCurrencies)

	mockCurrencies.On("FindCurrencyByCode", mock.Anything, "KHR").Return(nil, apperrors.ErrNotFound)
	mockCurrencies.On("SaveCurrency", mock.Anything, mock.AnythingOfType("domain.Currency")).Return(nil)

	created, err := svc.CreateCurrency(context.Background(), domain.Currency{
		CurrencyCode: " khr ",
		Name:         "Cambodian Riel",
		ExchangeRate: decimal.NewFromInt(4000),
	}, "user-1")

	require.NoError(t, err)
	assert.Equal(t, "KHR", created.CurrencyCode)
	mockCurrencies.AssertExpectations(t)
}

func TestCreateCurrency_RejectsBadInput(t *testing.T) {
	mockCurrencies := new(MockCurrencyRepository)
	svc := services.NewCurrencyService(mockCurrencies)

	_, err := svc.CreateCurrency(context.Background(), domain.Currency{
		CurrencyCode: "RIEL",
		ExchangeRate: decimal.NewFromInt(4000),
	}, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateCurrency(context.Background(), domain.Currency{
		CurrencyCode: "KHR",
		ExchangeRate: decimal.Zero,
	}, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// The base currency does not need a rate.
	mockCurrencies.On("FindCurrencyByCode", mock.Anything, "USD").Return(nil, apperrors.ErrNotFound)
	mockCurrencies.On("SaveCurrency", mock.Anything, mock.AnythingOfType("domain.Currency")).Return(nil)
	_, err = svc.CreateCurrency(context.Background(), domain.Currency{
		CurrencyCode: "USD",
		IsBase:       true,
	}, "user-1")
	assert.NoError(t, err)
}

func TestCreateCurrency_RejectsDuplicate(t *testing.T) {
	mockCurrencies := new(MockCurrencyRepository)
	svc := services.NewCurrencyService(mockCurrencies)

	existing := &domain.Currency{CurrencyCode: "KHR", ExchangeRate: decimal.NewFromInt(4000)}
	mockCurrencies.On("FindCurrencyByCode", mock.Anything, "KHR").Return(existing, nil)

	_, err := svc.CreateCurrency(context.Background(), domain.Currency{
		CurrencyCode: "KHR",
		ExchangeRate: decimal.NewFromInt(4100),
	}, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	mockCurrencies.AssertNotCalled(t, "SaveCurrency", mock.Anything, mock.Anything)
}
