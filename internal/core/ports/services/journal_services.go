package services

import (
	"context"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
	"github.com/dsadvance/parcel_ledger_app/internal/dto"
)

// JournalSvcFacade defines the service operations over journal entries,
// including the maker/checker status transitions.
type JournalSvcFacade interface {
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	GetJournalEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)
	ListJournalEntries(ctx context.Context, filter portsrepo.JournalFilter) ([]domain.JournalEntry, error)
	SubmitJournalEntry(ctx context.Context, journalID, userID string) error
	ApproveJournalEntry(ctx context.Context, journalID, approverUserID string) error
	RejectJournalEntry(ctx context.Context, journalID, approverUserID, reason string) error
}
