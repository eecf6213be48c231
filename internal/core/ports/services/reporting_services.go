package services

import (
	"context"
	"time"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingSvcFacade defines the aggregation reports computed from the
// ledger.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, branchID string) ([]domain.TrialBalanceRow, error)
	GeneralLedger(ctx context.Context, accountID string) ([]domain.GeneralLedgerLine, error)
	NetIncome(ctx context.Context, branchID string) (decimal.Decimal, error)
	ClosePeriod(ctx context.Context, start, end time.Time, branchID, userID string) (*domain.JournalEntry, error)
}

// HealthSvcFacade runs the read-only ledger integrity scan.
type HealthSvcFacade interface {
	Scan(ctx context.Context) ([]domain.HealthIssue, error)
}
