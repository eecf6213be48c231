package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dsadvance/parcel_ledger_app/internal/apperrors"
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/dsadvance/parcel_ledger_app/internal/core/ports/services"
	"github.com/dsadvance/parcel_ledger_app/internal/dto"
	"github.com/dsadvance/parcel_ledger_app/internal/utils/accounting"
)

var (
	ErrJournalUnbalanced    = errors.New("journal entry debits and credits do not balance")
	ErrJournalMinEntries    = errors.New("journal entry requires at least two lines")
	ErrJournalLineAmbiguous = errors.New("journal line must carry a debit or a credit, not both")
	ErrSelfApproval         = errors.New("a journal entry cannot be approved by its creator")
	ErrInvalidTransition    = errors.New("journal entry status does not allow this transition")
)

// journalService manages journal entries and the maker/checker workflow.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository) portssvc.JournalSvcFacade {
	return &journalService{journalRepo: journalRepo, accountRepo: accountRepo}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournalEntry validates and persists a manually entered journal
// entry. Drafts skip the balance check until submission.
func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrJournalMinEntries.Error())
	}

	lines := make([]domain.JournalEntryLine, 0, len(req.Lines))
	for i, in := range req.Lines {
		if in.Debit.IsPositive() && in.Credit.IsPositive() {
			return nil, fmt.Errorf("%w: line %d: %s", apperrors.ErrValidation, i+1, ErrJournalLineAmbiguous.Error())
		}
		if in.Debit.IsNegative() || in.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d: amounts must not be negative", apperrors.ErrValidation, i+1)
		}
		if _, err := s.accountRepo.FindAccountByID(ctx, in.AccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: line %d: unknown account %s", apperrors.ErrValidation, i+1, in.AccountID)
			}
			return nil, fmt.Errorf("failed to check account %s: %w", in.AccountID, err)
		}
		lines = append(lines, domain.JournalEntryLine{
			AccountID:        in.AccountID,
			Debit:            in.Debit,
			Credit:           in.Credit,
			Description:      in.Description,
			OriginalAmount:   in.OriginalAmount,
			OriginalCurrency: in.OriginalCurrency,
			OriginalRate:     in.OriginalRate,
		})
	}

	status := domain.StatusPosted
	if req.AsDraft {
		status = domain.StatusDraft
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		JournalID:    uuid.NewString(),
		Date:         req.Date,
		Description:  req.Description,
		Reference:    req.Reference,
		BranchID:     req.BranchID,
		CurrencyCode: req.CurrencyCode,
		ExchangeRate: req.ExchangeRate,
		Lines:        lines,
		Status:       status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if entry.ExchangeRate.IsZero() {
		entry.ExchangeRate = decimal.NewFromInt(1)
	}

	if status != domain.StatusDraft {
		if err := validateBalance(entry); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry")
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	s.LogInfo(ctx, "Journal entry created",
		slog.String("journal_id", entry.JournalID), slog.String("status", string(entry.Status)))
	return &entry, nil
}

func validateBalance(entry domain.JournalEntry) error {
	debit := entry.TotalDebit()
	credit := entry.TotalCredit()
	if !accounting.WithinTolerance(debit, credit) {
		return fmt.Errorf("%w: debit %s vs credit %s", ErrJournalUnbalanced, debit.StringFixed(2), credit.StringFixed(2))
	}
	return nil
}

// GetJournalEntryByID retrieves one journal entry with its lines.
func (s *journalService) GetJournalEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalEntryByID(ctx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", journalID, err)
	}
	return entry, nil
}

// ListJournalEntries returns entries matching the filter.
func (s *journalService) ListJournalEntries(ctx context.Context, filter portsrepo.JournalFilter) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.ListJournalEntries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

// SubmitJournalEntry moves a draft into PENDING_APPROVAL. The entry must
// balance before it can leave draft.
func (s *journalService) SubmitJournalEntry(ctx context.Context, journalID, userID string) error {
	entry, err := s.GetJournalEntryByID(ctx, journalID)
	if err != nil {
		return err
	}
	if entry.Status != domain.StatusDraft {
		return fmt.Errorf("%w: cannot submit a %s entry", ErrInvalidTransition, entry.Status)
	}
	if err := validateBalance(*entry); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return s.journalRepo.UpdateJournalStatus(ctx, journalID, domain.StatusPendingApproval, "", "", userID, time.Now().UTC())
}

// ApproveJournalEntry posts a pending entry. The approver must not be
// the creator.
func (s *journalService) ApproveJournalEntry(ctx context.Context, journalID, approverUserID string) error {
	entry, err := s.GetJournalEntryByID(ctx, journalID)
	if err != nil {
		return err
	}
	if entry.Status != domain.StatusPendingApproval {
		return fmt.Errorf("%w: cannot approve a %s entry", ErrInvalidTransition, entry.Status)
	}
	if entry.CreatedBy == approverUserID {
		return fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrSelfApproval.Error())
	}
	if err := s.journalRepo.UpdateJournalStatus(ctx, journalID, domain.StatusPosted, approverUserID, "", approverUserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to approve journal entry", slog.String("journal_id", journalID))
		return fmt.Errorf("failed to approve journal entry: %w", err)
	}
	s.LogInfo(ctx, "Journal entry approved", slog.String("journal_id", journalID))
	return nil
}

// RejectJournalEntry rejects a pending entry with a reason.
func (s *journalService) RejectJournalEntry(ctx context.Context, journalID, approverUserID, reason string) error {
	entry, err := s.GetJournalEntryByID(ctx, journalID)
	if err != nil {
		return err
	}
	if entry.Status != domain.StatusPendingApproval {
		return fmt.Errorf("%w: cannot reject a %s entry", ErrInvalidTransition, entry.Status)
	}
	if entry.CreatedBy == approverUserID {
		return fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrSelfApproval.Error())
	}
	return s.journalRepo.UpdateJournalStatus(ctx, journalID, domain.StatusRejected, "", reason, approverUserID, time.Now().UTC())
}
