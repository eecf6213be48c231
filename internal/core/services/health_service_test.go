package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	"github.com/dsadvance/parcel_ledger_app/internal/core/services"
)

func issueCodes(issues []domain.HealthIssue) map[domain.IssueCode]int {
	counts := make(map[domain.IssueCode]int)
	for _, issue := range issues {
		counts[issue.Code]++
	}
	return counts
}

func TestScanLedger_CleanLedgerHasNoIssues(t *testing.T) {
	now := time.Now()
	accounts := testChart()
	entries := []domain.JournalEntry{
		postedEntry("je-1", now, "", debitLine("acc-cash", 100), creditLine("acc-revenue", 100)),
	}

	issues := services.ScanLedger(entries, accounts, nil, nil, now)
	assert.Empty(t, issues)
}

func TestScanLedger_DuplicateAccountCodes(t *testing.T) {
	now := time.Now()
	accounts := []domain.Account{
		account("acc-1", "1100", "Cash", domain.Asset, false, ""),
		account("acc-2", "1100", "Cash (old)", domain.Asset, false, ""),
	}

	issues := services.ScanLedger(nil, accounts, nil, nil, now)
	counts := issueCodes(issues)
	assert.Equal(t, 1, counts[domain.IssueDuplicateCOA])
	assert.Equal(t, domain.SeverityWarning, issues[0].Severity)
	assert.Equal(t, "1100", issues[0].EntityID)
}

func TestScanLedger_UnpostedDocuments(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	invoices := []domain.Invoice{
		{InvoiceID: "inv-1", Number: "INV-001", Status: domain.DocumentDraft, IssueDate: yesterday},
		{InvoiceID: "inv-2", Number: "INV-002", Status: domain.DocumentDraft, IssueDate: tomorrow},
		{InvoiceID: "inv-3", Number: "INV-003", Status: domain.DocumentPosted, IssueDate: yesterday},
	}
	bills := []domain.Bill{
		{BillID: "bill-1", Number: "BILL-001", Status: domain.DocumentDraft, IssueDate: yesterday},
	}

	issues := services.ScanLedger(nil, nil, invoices, bills, now)
	counts := issueCodes(issues)
	// A future-dated draft and a posted document are both fine.
	assert.Equal(t, 2, counts[domain.IssueUnpostedDoc])
}

func TestScanLedger_UnbalancedAndEmptyEntries(t *testing.T) {
	now := time.Now()
	accounts := testChart()

	unbalanced := postedEntry("je-bad", now, "", debitLine("acc-cash", 100), creditLine("acc-revenue", 90))
	empty := domain.JournalEntry{JournalID: "je-empty", Date: now, Status: domain.StatusPosted}

	issues := services.ScanLedger([]domain.JournalEntry{unbalanced, empty}, accounts, nil, nil, now)
	counts := issueCodes(issues)
	assert.Equal(t, 1, counts[domain.IssueUnbalanced])
	assert.Equal(t, 1, counts[domain.IssueEmpty])

	for _, issue := range issues {
		if issue.Code == domain.IssueUnbalanced {
			assert.Equal(t, domain.SeverityCritical, issue.Severity)
			assert.Equal(t, "je-bad", issue.EntityID)
		}
	}
}

func TestScanLedger_OrphanedAccountReferences(t *testing.T) {
	now := time.Now()
	accounts := testChart()
	entry := postedEntry("je-1", now, "", debitLine("acc-gone", 100), creditLine("acc-revenue", 100))

	issues := services.ScanLedger([]domain.JournalEntry{entry}, accounts, nil, nil, now)
	counts := issueCodes(issues)
	assert.Equal(t, 1, counts[domain.IssueOrphanedAccount])

	// A tolerance-size rounding difference does not count as unbalanced.
	rounding := postedEntry("je-round", now, "",
		domain.JournalEntryLine{AccountID: "acc-cash", Debit: decimal.NewFromFloat(10.005), Credit: decimal.Zero},
		domain.JournalEntryLine{AccountID: "acc-revenue", Debit: decimal.Zero, Credit: decimal.NewFromInt(10)})
	issues = services.ScanLedger([]domain.JournalEntry{rounding}, accounts, nil, nil, now)
	assert.Zero(t, issueCodes(issues)[domain.IssueUnbalanced])
}
