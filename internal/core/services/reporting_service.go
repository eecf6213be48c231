package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dsadvance/parcel_ledger_app/internal/apperrors"
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/dsadvance/parcel_ledger_app/internal/core/ports/services"
)

// reportingService loads ledger data and delegates to the pure
// aggregation functions.
type reportingService struct {
	BaseService
	accountRepo  portsrepo.AccountRepository
	journalRepo  portsrepo.JournalRepository
	settingsRepo portsrepo.SettingsRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(accountRepo portsrepo.AccountRepository, journalRepo portsrepo.JournalRepository, settingsRepo portsrepo.SettingsRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		accountRepo:  accountRepo,
		journalRepo:  journalRepo,
		settingsRepo: settingsRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) loadLedger(ctx context.Context, branchID string) ([]domain.Account, []domain.JournalEntry, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	entries, err := s.journalRepo.ListJournalEntries(ctx, portsrepo.JournalFilter{BranchID: branchID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return accounts, entries, nil
}

// TrialBalance generates the rolled-up trial balance, optionally filtered
// by branch.
func (s *reportingService) TrialBalance(ctx context.Context, branchID string) ([]domain.TrialBalanceRow, error) {
	accounts, entries, err := s.loadLedger(ctx, branchID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger for trial balance", slog.String("branch_id", branchID))
		return nil, err
	}
	rows := GenerateTrialBalance(accounts, entries, branchID)
	s.LogInfo(ctx, "Trial balance generated",
		slog.String("branch_id", branchID),
		slog.Int("row_count", len(rows)))
	return rows, nil
}

// GeneralLedger generates the running-balance ledger for one account.
// DisplayedBalance is inverted for credit-normal account types.
func (s *reportingService) GeneralLedger(ctx context.Context, accountID string) ([]domain.GeneralLedgerLine, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find account for general ledger", slog.String("account_id", accountID))
		return nil, err
	}
	entries, err := s.journalRepo.ListJournalEntries(ctx, portsrepo.JournalFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries for general ledger", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	lines := GenerateGeneralLedger(accountID, entries)
	switch account.AccountType {
	case domain.Liability, domain.Equity, domain.Revenue:
		for i := range lines {
			lines[i].DisplayedBalance = lines[i].Balance.Neg()
		}
	}
	s.LogDebug(ctx, "General ledger generated",
		slog.String("account_id", accountID),
		slog.Int("line_count", len(lines)))
	return lines, nil
}

// NetIncome computes net income from depth-0 trial balance rows.
func (s *reportingService) NetIncome(ctx context.Context, branchID string) (decimal.Decimal, error) {
	accounts, entries, err := s.loadLedger(ctx, branchID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger for net income", slog.String("branch_id", branchID))
		return decimal.Zero, err
	}
	return CalculateNetIncome(accounts, entries, branchID), nil
}

// ClosePeriod generates and persists the period-closing entry, zeroing
// P&L balances into retained earnings. Returns ErrNotFound when the
// period holds nothing to close.
func (s *reportingService) ClosePeriod(ctx context.Context, start, end time.Time, branchID, userID string) (*domain.JournalEntry, error) {
	settings, err := s.settingsRepo.GetLedgerSettings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger settings for period close")
		return nil, fmt.Errorf("failed to load ledger settings: %w", err)
	}
	if settings.RetainedEarningsAccountID == "" {
		return nil, fmt.Errorf("%w: retained earnings account is not configured", apperrors.ErrValidation)
	}

	accounts, entries, err := s.loadLedger(ctx, branchID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger for period close", slog.String("branch_id", branchID))
		return nil, err
	}

	entry := GeneratePeriodClosingEntry(start, end, accounts, entries, settings.RetainedEarningsAccountID, branchID)
	if entry == nil {
		return nil, fmt.Errorf("%w: no revenue or expense balances to close in period", apperrors.ErrNotFound)
	}

	now := time.Now().UTC()
	entry.JournalID = uuid.NewString()
	entry.Reference = "CLOSE-" + end.Format("20060102")
	entry.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	if err := s.journalRepo.SaveJournalEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to persist period closing entry", slog.String("journal_id", entry.JournalID))
		return nil, fmt.Errorf("failed to persist closing entry: %w", err)
	}

	s.LogInfo(ctx, "Period closed",
		slog.String("journal_id", entry.JournalID),
		slog.String("start", start.Format(time.RFC3339)),
		slog.String("end", end.Format(time.RFC3339)),
		slog.Int("line_count", len(entry.Lines)))
	return entry, nil
}
