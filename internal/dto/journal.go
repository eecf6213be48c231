package dto

import (
	"time"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryLineInput is one debit-or-credit posting in a create
// request.
type JournalEntryLineInput struct {
	AccountID        string          `json:"accountID" binding:"required"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Description      string          `json:"description"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	OriginalCurrency string          `json:"originalCurrency"`
	OriginalRate     decimal.Decimal `json:"originalRate"`
}

// CreateJournalEntryRequest defines the payload for creating a journal
// entry directly (outside the settlement flow).
type CreateJournalEntryRequest struct {
	Date         time.Time               `json:"date" binding:"required"`
	Description  string                  `json:"description" binding:"required"`
	Reference    string                  `json:"reference"`
	BranchID     string                  `json:"branchID"`
	CurrencyCode string                  `json:"currencyCode" binding:"required,len=3"`
	ExchangeRate decimal.Decimal         `json:"exchangeRate"`
	AsDraft      bool                    `json:"asDraft"`
	Lines        []JournalEntryLineInput `json:"lines" binding:"required,min=2,dive"`
}

// RejectJournalEntryRequest carries the checker's rejection reason.
type RejectJournalEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// JournalEntryLineResponse mirrors one persisted line.
type JournalEntryLineResponse struct {
	AccountID        string          `json:"accountID"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Description      string          `json:"description,omitempty"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	OriginalCurrency string          `json:"originalCurrency,omitempty"`
	OriginalRate     decimal.Decimal `json:"originalRate"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	JournalID      string                     `json:"journalID"`
	Date           time.Time                  `json:"date"`
	Description    string                     `json:"description"`
	Reference      string                     `json:"reference,omitempty"`
	BranchID       string                     `json:"branchID,omitempty"`
	CurrencyCode   string                     `json:"currencyCode"`
	ExchangeRate   decimal.Decimal            `json:"exchangeRate"`
	Status         domain.JournalStatus       `json:"status"`
	IsClosingEntry bool                       `json:"isClosingEntry"`
	Lines          []JournalEntryLineResponse `json:"lines"`
	CreatedAt      time.Time                  `json:"createdAt"`
	CreatedBy      string                     `json:"createdBy"`
	ApprovedBy     string                     `json:"approvedBy,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry.
func ToJournalEntryResponse(j *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalEntryLineResponse, len(j.Lines))
	for i, l := range j.Lines {
		lines[i] = JournalEntryLineResponse{
			AccountID:        l.AccountID,
			Debit:            l.Debit,
			Credit:           l.Credit,
			Description:      l.Description,
			OriginalAmount:   l.OriginalAmount,
			OriginalCurrency: l.OriginalCurrency,
			OriginalRate:     l.OriginalRate,
		}
	}
	return JournalEntryResponse{
		JournalID:      j.JournalID,
		Date:           j.Date,
		Description:    j.Description,
		Reference:      j.Reference,
		BranchID:       j.BranchID,
		CurrencyCode:   j.CurrencyCode,
		ExchangeRate:   j.ExchangeRate,
		Status:         j.Status,
		IsClosingEntry: j.IsClosingEntry,
		Lines:          lines,
		CreatedAt:      j.CreatedAt,
		CreatedBy:      j.CreatedBy,
		ApprovedBy:     j.ApprovedBy,
	}
}

// ToJournalEntryResponses converts a slice of domain.JournalEntry.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}
