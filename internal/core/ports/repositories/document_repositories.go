package repositories

import (
	"context"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
)

// DocumentRepository defines read operations over the source documents
// (invoices, bills) the health scan inspects for unposted drafts.
type DocumentRepository interface {
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	ListBills(ctx context.Context) ([]domain.Bill, error)
}
