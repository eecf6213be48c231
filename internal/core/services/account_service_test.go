package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dsadvance/parcel_ledger_app/internal/apperrors"
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	"github.com/dsadvance/parcel_ledger_app/internal/core/services"
	"github.com/dsadvance/parcel_ledger_app/internal/dto"
)

func TestCreateAccount(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	svc := services.NewAccountService(mockAccounts)

	mockAccounts.On("FindAccountByCode", mock.Anything, "1100").Return(nil, apperrors.ErrNotFound)
	mockAccounts.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.Account")).Return(nil)

	account, err := svc.CreateAccount(context.Background(), dto.CreateAccountRequest{
		Code:        "1100",
		Name:        "Cash",
		AccountType: domain.Asset,
	}, "user-1")

	require.NoError(t, err)
	assert.NotEmpty(t, account.AccountID)
	assert.Equal(t, "1100", account.Code)
	assert.True(t, account.IsActive)
	assert.Equal(t, "user-1", account.CreatedBy)
	mockAccounts.AssertExpectations(t)
}

func TestCreateAccount_RejectsDuplicateCode(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	svc := services.NewAccountService(mockAccounts)

	existing := &domain.Account{AccountID: "acc-1", Code: "1100", Name: "Cash"}
	mockAccounts.On("FindAccountByCode", mock.Anything, "1100").Return(existing, nil)

	_, err := svc.CreateAccount(context.Background(), dto.CreateAccountRequest{
		Code:        "1100",
		Name:        "Cash again",
		AccountType: domain.Asset,
	}, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	mockAccounts.AssertNotCalled(t, "SaveAccount", mock.Anything, mock.Anything)
}

func TestBulkUpsertAccounts_ResolvesParentsByCode(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	svc := services.NewAccountService(mockAccounts)

	mockAccounts.On("ListAccounts", mock.Anything).Return([]domain.Account{}, nil)

	var upserted []domain.Account
	mockAccounts.On("UpsertAccountsByCode", mock.Anything, mock.AnythingOfType("[]domain.Account")).
		Run(func(args mock.Arguments) { upserted = args.Get(1).([]domain.Account) }).
		Return(nil)

	req := dto.BulkUpsertAccountsRequest{Accounts: []dto.CreateAccountRequest{
		{Code: "1000", Name: "Assets", AccountType: domain.Asset, IsHeader: true},
		{Code: "1100", Name: "Cash", AccountType: domain.Asset, ParentAccountID: "1000"},
	}}

	result, err := svc.BulkUpsertAccounts(context.Background(), req, "user-1")
	require.NoError(t, err)
	require.Len(t, result, 2)

	// The child's parent reference by batch code resolves to the parent's
	// generated AccountID.
	require.Len(t, upserted, 2)
	assert.Equal(t, upserted[0].AccountID, upserted[1].ParentAccountID)
	assert.NotEqual(t, "1000", upserted[1].ParentAccountID)
}

func TestBulkUpsertAccounts_PreservesExistingIdentity(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	svc := services.NewAccountService(mockAccounts)

	existing := domain.Account{
		AccountID:   "acc-cash",
		Code:        "1100",
		Name:        "Cash",
		AccountType: domain.Asset,
		AuditFields: domain.AuditFields{CreatedBy: "importer"},
	}
	mockAccounts.On("ListAccounts", mock.Anything).Return([]domain.Account{existing}, nil)
	mockAccounts.On("UpsertAccountsByCode", mock.Anything, mock.AnythingOfType("[]domain.Account")).Return(nil)

	req := dto.BulkUpsertAccountsRequest{Accounts: []dto.CreateAccountRequest{
		{Code: "1100", Name: "Cash on Hand", AccountType: domain.Asset},
	}}

	result, err := svc.BulkUpsertAccounts(context.Background(), req, "user-2")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "acc-cash", result[0].AccountID)
	assert.Equal(t, "Cash on Hand", result[0].Name)
	assert.Equal(t, "importer", result[0].CreatedBy)
	assert.Equal(t, "user-2", result[0].LastUpdatedBy)
}

func TestBulkUpsertAccounts_RejectsCycles(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	svc := services.NewAccountService(mockAccounts)

	mockAccounts.On("ListAccounts", mock.Anything).Return([]domain.Account{}, nil)

	req := dto.BulkUpsertAccountsRequest{Accounts: []dto.CreateAccountRequest{
		{Code: "1000", Name: "A", AccountType: domain.Asset, ParentAccountID: "2000"},
		{Code: "2000", Name: "B", AccountType: domain.Asset, ParentAccountID: "1000"},
	}}

	_, err := svc.BulkUpsertAccounts(context.Background(), req, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "cycle")
	mockAccounts.AssertNotCalled(t, "UpsertAccountsByCode", mock.Anything, mock.Anything)
}

func TestBulkUpsertAccounts_RejectsDuplicateCodesInBatch(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	svc := services.NewAccountService(mockAccounts)

	mockAccounts.On("ListAccounts", mock.Anything).Return([]domain.Account{}, nil)

	req := dto.BulkUpsertAccountsRequest{Accounts: []dto.CreateAccountRequest{
		{Code: "1100", Name: "Cash", AccountType: domain.Asset},
		{Code: "1100", Name: "Cash again", AccountType: domain.Asset},
	}}

	_, err := svc.BulkUpsertAccounts(context.Background(), req, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "appears twice")
}
