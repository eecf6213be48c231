package repositories

import (
	"context"
	"time"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
)

// JournalFilter narrows journal listing. Zero values mean "no filter".
type JournalFilter struct {
	BranchID string
	Status   domain.JournalStatus
	From     time.Time
	To       time.Time
}

// JournalRepository defines persistence operations for journal entries.
// SaveJournalEntry writes the entry and its lines atomically.
type JournalRepository interface {
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error
	FindJournalEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)
	ListJournalEntries(ctx context.Context, filter JournalFilter) ([]domain.JournalEntry, error)
	UpdateJournalStatus(ctx context.Context, journalID string, status domain.JournalStatus, approvedBy, rejectionReason, updatedBy string, updatedAt time.Time) error
}
