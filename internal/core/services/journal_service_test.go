package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dsadvance/parcel_ledger_app/internal/apperrors"
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	"github.com/dsadvance/parcel_ledger_app/internal/core/services"
	"github.com/dsadvance/parcel_ledger_app/internal/dto"
)

func journalRequest(asDraft bool, lines ...dto.JournalEntryLineInput) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		Date:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Description:  "Manual adjustment",
		CurrencyCode: domain.CurrencyUSD,
		AsDraft:      asDraft,
		Lines:        lines,
	}
}

func debitInput(accountID string, amount int64) dto.JournalEntryLineInput {
	return dto.JournalEntryLineInput{AccountID: accountID, Debit: decimal.NewFromInt(amount), Credit: decimal.Zero}
}

func creditInput(accountID string, amount int64) dto.JournalEntryLineInput {
	return dto.JournalEntryLineInput{AccountID: accountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(amount)}
}

func knownAccount(mockAccounts *MockAccountRepository, accountID string) {
	mockAccounts.On("FindAccountByID", mock.Anything, accountID).
		Return(&domain.Account{AccountID: accountID, IsActive: true}, nil)
}

func TestCreateJournalEntry_PostsBalancedEntry(t *testing.T) {
	mockJournals := new(MockJournalRepository)
	mockAccounts := new(MockAccountRepository)
	svc := services.NewJournalService(mockJournals, mockAccounts)

	knownAccount(mockAccounts, "acc-cash")
	knownAccount(mockAccounts, "acc-revenue")
	mockJournals.On("SaveJournalEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry")).Return(nil)

	entry, err := svc.CreateJournalEntry(context.Background(),
		journalRequest(false, debitInput("acc-cash", 100), creditInput("acc-revenue", 100)), "user-1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPosted, entry.Status)
	assert.Equal(t, "user-1", entry.CreatedBy)
	assert.True(t, entry.ExchangeRate.Equal(decimal.NewFromInt(1)))
	mockJournals.AssertExpectations(t)
}

func TestCreateJournalEntry_RejectsUnbalanced(t *testing.T) {
	mockJournals := new(MockJournalRepository)
	mockAccounts := new(MockAccountRepository)
	svc := services.NewJournalService(mockJournals, mockAccounts)

	knownAccount(mockAccounts, "acc-cash")
	knownAccount(mockAccounts, "acc-revenue")

	_, err := svc.CreateJournalEntry(context.Background(),
		journalRequest(false, debitInput("acc-cash", 100), creditInput("acc-revenue", 90)), "user-1")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockJournals.AssertNotCalled(t, "SaveJournalEntry", mock.Anything, mock.Anything)
}

func TestCreateJournalEntry_UnbalancedDraftIsAllowed(t *testing.T) {
	mockJournals := new(MockJournalRepository)
	mockAccounts := new(MockAccountRepository)
	svc := services.NewJournalService(mockJournals, mockAccounts)

	knownAccount(mockAccounts, "acc-cash")
	knownAccount(mockAccounts, "acc-revenue")
	mockJournals.On("SaveJournalEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry")).Return(nil)

	entry, err := svc.CreateJournalEntry(context.Background(),
		journalRequest(true, debitInput("acc-cash", 100), creditInput("acc-revenue", 90)), "user-1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, entry.Status)
}

func TestCreateJournalEntry_RejectsTooFewLines(t *testing.T) {
	mockJournals := new(MockJournalRepository)
	mockAccounts := new(MockAccountRepository)
	svc := services.NewJournalService(mockJournals, mockAccounts)

	_, err := svc.CreateJournalEntry(context.Background(),
		journalRequest(false, debitInput("acc-cash", 100)), "user-1")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "at least two lines")
}

func TestCreateJournalEntry_RejectsLineWithDebitAndCredit(t *testing.T) {
	mockJournals := new(MockJournalRepository)
	mockAccounts := new(MockAccountRepository)
	svc := services.NewJournalService(mockJournals, mockAccounts)

	both := dto.JournalEntryLineInput{
		AccountID: "acc-cash",
		Debit:     decimal.NewFromInt(50),
		Credit:    decimal.NewFromInt(50),
	}
	_, err := svc.CreateJournalEntry(context.Background(),
		journalRequest(false, both, creditInput("acc-revenue", 50)), "user-1")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "not both")
}

func TestCreateJournalEntry_RejectsUnknownAccount(t *testing.T) {
	mockJournals := new(MockJournalRepository)
	mockAccounts := new(MockAccountRepository)
	svc := services.NewJournalService(mockJournals, mockAccounts)

	mockAccounts.On("FindAccountByID", mock.Anything, "acc-gone").Return(nil, apperrors.ErrNotFound)

	_, err := svc.CreateJournalEntry(context.Background(),
		journalRequest(false, debitInput("acc-gone", 100), creditInput("acc-revenue", 100)), "user-1")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "unknown account")
}

func pendingEntry(journalID, createdBy string) *domain.JournalEntry {
	return &domain.JournalEntry{
		JournalID:    journalID,
		Date:         time.Now(),
		CurrencyCode: domain.CurrencyUSD,
		ExchangeRate: decimal.NewFromInt(1),
		Status:       domain.StatusPendingApproval,
		Lines: []domain.JournalEntryLine{
			{AccountID: "acc-cash", Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
			{AccountID: "acc-revenue", Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
		},
		AuditFields: domain.AuditFields{CreatedBy: createdBy},
	}
}

func TestSubmitJournalEntry(t *testing.T) {
	mockJournals := new(MockJournalRepository)
	mockAccounts := new(MockAccountRepository)
	svc := services.NewJournalService(mockJournals, mockAccounts)

	draft := pendingEntry("je-1", "maker")
	draft.Status = domain.StatusDraft
	mockJournals.On("FindJournalEntryByID", mock.Anything, "je-1").Return(draft, nil)
	mockJournals.On("UpdateJournalStatus", mock.Anything, "je-1", domain.StatusPendingApproval, "", "", "maker", mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.SubmitJournalEntry(context.Background(), "je-1", "maker")
	require.NoError(t, err)
	mockJournals.AssertExpectations(t)
}

func TestSubmitJournalEntry_RejectsNonDraft(t *testing.T) {
	mockJournals := new(MockJournalRepository)
	mockAccounts := new(MockAccountRepository)
	svc := services.NewJournalService(mockJournals, mockAccounts)

	mockJournals.On("FindJournalEntryByID", mock.Anything, "je-1").Return(pendingEntry("je-1", "maker"), nil)

	err := svc.SubmitJournalEntry(context.Background(), "je-1", "maker")
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestSubmitJournalEntry_RejectsUnbalancedDraft(t *testing.T) {
	mockJournals := new(MockJournalRepository)
	mockAccounts := new(MockAccountRepository)
	svc := services.NewJournalService(mockJournals, mockAccounts)

	draft := pendingEntry("je-1", "maker")
	draft.Status = domain.StatusDraft
	draft.Lines[1].Credit = decimal.NewFromInt(90)
	mockJournals.On("FindJournalEntryByID", mock.Anything, "je-1").Return(draft, nil)

	err := svc.SubmitJournalEntry(context.Background(), "je-1", "maker")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockJournals.AssertNotCalled(t, "UpdateJournalStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveJournalEntry(t *testing.T) {
	mockJournals := new(MockJournalRepository)
	mockAccounts := new(MockAccountRepository)
	svc := services.NewJournalService(mockJournals, mockAccounts)

	mockJournals.On("FindJournalEntryByID", mock.Anything, "je-1").Return(pendingEntry("je-1", "maker"), nil)
	mockJournals.On("UpdateJournalStatus", mock.Anything, "je-1", domain.StatusPosted, "checker", "", "checker", mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.ApproveJournalEntry(context.Background(), "je-1", "checker")
	require.NoError(t, err)
	mockJournals.AssertExpectations(t)
}

func TestApproveJournalEntry_ForbidsSelfApproval(t *testing.T) {
	mockJournals := new(MockJournalRepository)
	mockAccounts := new(MockAccountRepository)
	svc := services.NewJournalService(mockJournals, mockAccounts)

	mockJournals.On("FindJournalEntryByID", mock.Anything, "je-1").Return(pendingEntry("je-1", "maker"), nil)

	err := svc.ApproveJournalEntry(context.Background(), "je-1", "maker")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockJournals.AssertNotCalled(t, "UpdateJournalStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveJournalEntry_RejectsNonPending(t *testing.T) {
	mockJournals := new(MockJournalRepository)
	mockAccounts := new(MockAccountRepository)
	svc := services.NewJournalService(mockJournals, mockAccounts)

	posted := pendingEntry("je-1", "maker")
	posted.Status = domain.StatusPosted
	mockJournals.On("FindJournalEntryByID", mock.Anything, "je-1").Return(posted, nil)

	err := svc.ApproveJournalEntry(context.Background(), "je-1", "checker")
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestRejectJournalEntry(t *testing.T) {
	mockJournals := new(MockJournalRepository)
	mockAccounts := new(MockAccountRepository)
	svc := services.NewJournalService(mockJournals, mockAccounts)

	mockJournals.On("FindJournalEntryByID", mock.Anything, "je-1").Return(pendingEntry("je-1", "maker"), nil)
	mockJournals.On("UpdateJournalStatus", mock.Anything, "je-1", domain.StatusRejected, "", "wrong account", "checker", mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.RejectJournalEntry(context.Background(), "je-1", "checker", "wrong account")
	require.NoError(t, err)
	mockJournals.AssertExpectations(t)
}
