package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/dsadvance/parcel_ledger_app/internal/core/ports/services"
	"github.com/dsadvance/parcel_ledger_app/internal/utils/accounting"
)

// ScanLedger runs the read-only integrity checks over the ledger:
// duplicate account codes, unposted source documents, unbalanced and
// empty journal entries, and lines referencing unknown accounts. Nothing
// is repaired; each finding becomes one issue.
func ScanLedger(entries []domain.JournalEntry, accounts []domain.Account, invoices []domain.Invoice, bills []domain.Bill, now time.Time) []domain.HealthIssue {
	var issues []domain.HealthIssue

	// Duplicate account codes.
	codeCount := make(map[string][]string)
	for _, acc := range accounts {
		codeCount[acc.Code] = append(codeCount[acc.Code], acc.AccountID)
	}
	for code, ids := range codeCount {
		if len(ids) > 1 {
			issues = append(issues, domain.HealthIssue{
				Code:        domain.IssueDuplicateCOA,
				Severity:    domain.SeverityWarning,
				EntityID:    code,
				Description: fmt.Sprintf("%d accounts share code %q", len(ids), code),
			})
		}
	}

	// Draft documents dated on or before today.
	for _, inv := range invoices {
		if inv.Status == domain.DocumentDraft && !inv.IssueDate.After(now) {
			issues = append(issues, domain.HealthIssue{
				Code:        domain.IssueUnpostedDoc,
				Severity:    domain.SeverityWarning,
				EntityID:    inv.InvoiceID,
				Description: fmt.Sprintf("invoice %s is still a draft dated %s", inv.Number, inv.IssueDate.Format("2006-01-02")),
			})
		}
	}
	for _, bill := range bills {
		if bill.Status == domain.DocumentDraft && !bill.IssueDate.After(now) {
			issues = append(issues, domain.HealthIssue{
				Code:        domain.IssueUnpostedDoc,
				Severity:    domain.SeverityWarning,
				EntityID:    bill.BillID,
				Description: fmt.Sprintf("bill %s is still a draft dated %s", bill.Number, bill.IssueDate.Format("2006-01-02")),
			})
		}
	}

	byID := domain.AccountsByID(accounts)
	for _, entry := range entries {
		if len(entry.Lines) == 0 {
			issues = append(issues, domain.HealthIssue{
				Code:        domain.IssueEmpty,
				Severity:    domain.SeverityWarning,
				EntityID:    entry.JournalID,
				Description: "journal entry has no lines",
			})
			continue
		}

		totalDebit := entry.TotalDebit()
		totalCredit := entry.TotalCredit()
		if !accounting.WithinTolerance(totalDebit, totalCredit) {
			issues = append(issues, domain.HealthIssue{
				Code:     domain.IssueUnbalanced,
				Severity: domain.SeverityCritical,
				EntityID: entry.JournalID,
				Description: fmt.Sprintf("journal entry is unbalanced: debits %s, credits %s",
					totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
			})
		}

		for _, line := range entry.Lines {
			if _, ok := byID[line.AccountID]; !ok {
				issues = append(issues, domain.HealthIssue{
					Code:        domain.IssueOrphanedAccount,
					Severity:    domain.SeverityCritical,
					EntityID:    entry.JournalID,
					Description: fmt.Sprintf("line references unknown account %s", line.AccountID),
				})
			}
		}
	}

	return issues
}

// healthService loads the ledger and runs the scan.
type healthService struct {
	BaseService
	accountRepo  portsrepo.AccountRepository
	journalRepo  portsrepo.JournalRepository
	documentRepo portsrepo.DocumentRepository
}

// NewHealthService creates a new health-scan service.
func NewHealthService(accountRepo portsrepo.AccountRepository, journalRepo portsrepo.JournalRepository, documentRepo portsrepo.DocumentRepository) portssvc.HealthSvcFacade {
	return &healthService{
		accountRepo:  accountRepo,
		journalRepo:  journalRepo,
		documentRepo: documentRepo,
	}
}

var _ portssvc.HealthSvcFacade = (*healthService)(nil)

// Scan runs the ledger integrity scan over the full data set.
func (s *healthService) Scan(ctx context.Context) ([]domain.HealthIssue, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for health scan")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	entries, err := s.journalRepo.ListJournalEntries(ctx, portsrepo.JournalFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries for health scan")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	invoices, err := s.documentRepo.ListInvoices(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices for health scan")
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	bills, err := s.documentRepo.ListBills(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bills for health scan")
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	issues := ScanLedger(entries, accounts, invoices, bills, time.Now().UTC())
	s.LogInfo(ctx, "Ledger health scan completed", slog.Int("issue_count", len(issues)))
	return issues, nil
}
