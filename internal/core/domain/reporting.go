package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one per-account aggregate in a trial balance. Parent
// rows include the rolled-up sums of their entire subtree, so callers
// summing totals must restrict themselves to Depth == 0 rows; summing all
// non-header rows double-counts wherever a parent is not a header.
type TrialBalanceRow struct {
	AccountID       string          `json:"accountID"`
	AccountCode     string          `json:"accountCode"`
	AccountName     string          `json:"accountName"`
	AccountType     AccountType     `json:"accountType"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	IsHeader        bool            `json:"isHeader"`
	ParentAccountID string          `json:"parentAccountID,omitempty"`
	Depth           int             `json:"depth"`
}

// GeneralLedgerLine is one posting against one account, carrying the
// running signed balance (debit positive). DisplayedBalance is what the
// caller renders; it may invert the sign for credit-normal account types.
type GeneralLedgerLine struct {
	JournalID        string          `json:"journalID"`
	Date             time.Time       `json:"date"`
	Description      string          `json:"description"`
	Reference        string          `json:"reference"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Balance          decimal.Decimal `json:"balance"`
	DisplayedBalance decimal.Decimal `json:"displayedBalance"`
}
