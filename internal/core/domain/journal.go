package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry in the
// maker/checker workflow.
type JournalStatus string

const (
	StatusDraft           JournalStatus = "DRAFT"
	StatusPendingApproval JournalStatus = "PENDING_APPROVAL"
	StatusApproved        JournalStatus = "APPROVED"
	StatusRejected        JournalStatus = "REJECTED"
	StatusPosted          JournalStatus = "POSTED"
)

// JournalEntry represents a single, dated financial event composed of
// debit/credit lines. Balance (sum of debits == sum of credits within a
// 0.01 tolerance) is a soft invariant: it is checked by validation and the
// health scan, not enforced at construction.
type JournalEntry struct {
	JournalID       string             `json:"journalID"` // Primary Key (e.g., UUID)
	Date            time.Time          `json:"date"`
	Description     string             `json:"description"`
	Reference       string             `json:"reference"`
	BranchID        string             `json:"branchID"`
	CurrencyCode    string             `json:"currencyCode"` // Presentation currency
	ExchangeRate    decimal.Decimal    `json:"exchangeRate"`
	Lines           []JournalEntryLine `json:"lines"`
	Status          JournalStatus      `json:"status"`
	IsClosingEntry  bool               `json:"isClosingEntry"`
	ApprovedBy      string             `json:"approvedBy,omitempty"`
	RejectionReason string             `json:"rejectionReason,omitempty"`
	AuditFields
}

// JournalEntryLine is one debit-or-credit posting within an entry. Both
// amount fields always exist; conventional usage sets exactly one of them.
// The Original* triple preserves the pre-base-currency amount for the
// multi-currency audit trail.
type JournalEntryLine struct {
	AccountID        string          `json:"accountID"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Description      string          `json:"description,omitempty"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	OriginalCurrency string          `json:"originalCurrency,omitempty"`
	OriginalRate     decimal.Decimal `json:"originalRate"`
}

// TotalDebit sums the debit side of all lines.
func (j JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (j JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// IncludedInReports reports whether the entry contributes to ledgers and
// balances. Drafts, pending and rejected entries are excluded.
func (j JournalEntry) IncludedInReports() bool {
	switch j.Status {
	case StatusDraft, StatusPendingApproval, StatusRejected:
		return false
	}
	return true
}
