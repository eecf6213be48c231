package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dsadvance/parcel_ledger_app/internal/apperrors"
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
)

type journalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates a new repository for journal entry data.
func NewJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &journalRepository{pool: pool}
}

// SaveJournalEntry saves an entry and its lines within one DB
// transaction.
func (r *journalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	entryQuery := `
		INSERT INTO journal_entries (journal_id, entry_date, description, reference, branch_id, currency_code, exchange_rate, status, is_closing_entry, approved_by, rejection_reason, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.JournalID,
		entry.Date,
		entry.Description,
		entry.Reference,
		entry.BranchID,
		entry.CurrencyCode,
		entry.ExchangeRate,
		entry.Status,
		entry.IsClosingEntry,
		entry.ApprovedBy,
		entry.RejectionReason,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.JournalID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (journal_id, line_no, account_id, debit, credit, description, original_amount, original_currency, original_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for i, line := range entry.Lines {
		batch.Queue(lineQuery,
			entry.JournalID,
			i+1,
			line.AccountID,
			line.Debit,
			line.Credit,
			line.Description,
			line.OriginalAmount,
			line.OriginalCurrency,
			line.OriginalRate,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute line batch for journal %s: %w", entry.JournalID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit journal %s: %w", entry.JournalID, err)
	}
	return nil
}

const journalColumns = `journal_id, entry_date, description, reference, branch_id, currency_code, exchange_rate, status, is_closing_entry, approved_by, rejection_reason, created_at, created_by, last_updated_at, last_updated_by`

// FindJournalEntryByID retrieves an entry and its lines.
func (r *journalRepository) FindJournalEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE journal_id = $1;`
	var entry domain.JournalEntry
	err := r.pool.QueryRow(ctx, query, journalID).Scan(
		&entry.JournalID,
		&entry.Date,
		&entry.Description,
		&entry.Reference,
		&entry.BranchID,
		&entry.CurrencyCode,
		&entry.ExchangeRate,
		&entry.Status,
		&entry.IsClosingEntry,
		&entry.ApprovedBy,
		&entry.RejectionReason,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", journalID, err)
	}

	lines, err := r.findLines(ctx, journalID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

func (r *journalRepository) findLines(ctx context.Context, journalID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT account_id, debit, credit, description, original_amount, original_currency, original_rate
		FROM journal_entry_lines
		WHERE journal_id = $1
		ORDER BY line_no;
	`
	rows, err := r.pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	lines := []domain.JournalEntryLine{}
	for rows.Next() {
		var line domain.JournalEntryLine
		if err := rows.Scan(
			&line.AccountID,
			&line.Debit,
			&line.Credit,
			&line.Description,
			&line.OriginalAmount,
			&line.OriginalCurrency,
			&line.OriginalRate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line for journal %s: %w", journalID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lines for journal %s: %w", journalID, err)
	}
	return lines, nil
}

// ListJournalEntries returns entries matching the filter, lines included,
// ordered by entry date.
func (r *journalRepository) ListJournalEntries(ctx context.Context, filter portsrepo.JournalFilter) ([]domain.JournalEntry, error) {
	var conditions []string
	var args []any
	if filter.BranchID != "" {
		args = append(args, filter.BranchID)
		conditions = append(conditions, fmt.Sprintf("branch_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conditions = append(conditions, fmt.Sprintf("entry_date >= $%d", len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conditions = append(conditions, fmt.Sprintf("entry_date <= $%d", len(args)))
	}

	query := `SELECT ` + journalColumns + ` FROM journal_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY entry_date, journal_id;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		var entry domain.JournalEntry
		if err := rows.Scan(
			&entry.JournalID,
			&entry.Date,
			&entry.Description,
			&entry.Reference,
			&entry.BranchID,
			&entry.CurrencyCode,
			&entry.ExchangeRate,
			&entry.Status,
			&entry.IsClosingEntry,
			&entry.ApprovedBy,
			&entry.RejectionReason,
			&entry.CreatedAt,
			&entry.CreatedBy,
			&entry.LastUpdatedAt,
			&entry.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	for i := range entries {
		lines, err := r.findLines(ctx, entries[i].JournalID)
		if err != nil {
			return nil, err
		}
		entries[i].Lines = lines
	}
	return entries, nil
}

// UpdateJournalStatus transitions an entry's workflow status.
func (r *journalRepository) UpdateJournalStatus(ctx context.Context, journalID string, status domain.JournalStatus, approvedBy, rejectionReason, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, approved_by = $3, rejection_reason = $4, last_updated_by = $5, last_updated_at = $6
		WHERE journal_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, journalID, status, approvedBy, rejectionReason, updatedBy, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update status for journal %s: %w", journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
