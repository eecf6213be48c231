package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
)

type documentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new read-side repository over source
// documents.
func NewDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepository {
	return &documentRepository{pool: pool}
}

// ListInvoices returns all invoices.
func (r *documentRepository) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	query := `
		SELECT invoice_id, number, status, issue_date, created_at, created_by, last_updated_at, last_updated_by
		FROM invoices ORDER BY issue_date;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		var inv domain.Invoice
		if err := rows.Scan(
			&inv.InvoiceID,
			&inv.Number,
			&inv.Status,
			&inv.IssueDate,
			&inv.CreatedAt,
			&inv.CreatedBy,
			&inv.LastUpdatedAt,
			&inv.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

// ListBills returns all bills.
func (r *documentRepository) ListBills(ctx context.Context) ([]domain.Bill, error) {
	query := `
		SELECT bill_id, number, status, issue_date, created_at, created_by, last_updated_at, last_updated_by
		FROM bills ORDER BY issue_date;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	bills := []domain.Bill{}
	for rows.Next() {
		var bill domain.Bill
		if err := rows.Scan(
			&bill.BillID,
			&bill.Number,
			&bill.Status,
			&bill.IssueDate,
			&bill.CreatedAt,
			&bill.CreatedBy,
			&bill.LastUpdatedAt,
			&bill.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bill row: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill rows: %w", err)
	}
	return bills, nil
}
