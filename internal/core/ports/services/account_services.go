package services

import (
	"context"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	"github.com/dsadvance/parcel_ledger_app/internal/dto"
)

// AccountSvcFacade defines the service operations over the chart of
// accounts.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	BulkUpsertAccounts(ctx context.Context, req dto.BulkUpsertAccountsRequest, creatorUserID string) ([]domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}
