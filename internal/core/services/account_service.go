package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dsadvance/parcel_ledger_app/internal/apperrors"
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/dsadvance/parcel_ledger_app/internal/core/ports/services"
	"github.com/dsadvance/parcel_ledger_app/internal/dto"
)

var ErrAccountCycle = errors.New("account hierarchy contains a cycle")

// accountService manages the chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a single account. The code must be unique.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	existing, err := s.accountRepo.FindAccountByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code %s: %w", req.Code, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, req.Code)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		SubType:         req.SubType,
		CurrencyCode:    req.CurrencyCode,
		IsHeader:        req.IsHeader,
		ParentAccountID: req.ParentAccountID,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// BulkUpsertAccounts imports a chart of accounts, upserting by code. A
// parent may be named by the AccountID of an existing account or by the
// Code of an account in the same batch. The merged hierarchy is checked
// for cycles before anything is written; a cycle is a hard validation
// error raised here at import time, never at query time.
func (s *accountService) BulkUpsertAccounts(ctx context.Context, req dto.BulkUpsertAccountsRequest, creatorUserID string) ([]domain.Account, error) {
	existing, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	existingByCode := make(map[string]domain.Account, len(existing))
	for _, acc := range existing {
		existingByCode[acc.Code] = acc
	}

	now := time.Now().UTC()
	incoming := make([]domain.Account, 0, len(req.Accounts))
	incomingIDByCode := make(map[string]string, len(req.Accounts))
	for _, in := range req.Accounts {
		if _, dup := incomingIDByCode[in.Code]; dup {
			return nil, fmt.Errorf("%w: code %s appears twice in the import", apperrors.ErrValidation, in.Code)
		}
		acc := domain.Account{
			Code:            in.Code,
			Name:            in.Name,
			AccountType:     in.AccountType,
			SubType:         in.SubType,
			CurrencyCode:    in.CurrencyCode,
			IsHeader:        in.IsHeader,
			ParentAccountID: in.ParentAccountID,
			IsActive:        true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		if prev, ok := existingByCode[in.Code]; ok {
			acc.AccountID = prev.AccountID
			acc.CreatedAt = prev.CreatedAt
			acc.CreatedBy = prev.CreatedBy
		} else {
			acc.AccountID = uuid.NewString()
		}
		incomingIDByCode[acc.Code] = acc.AccountID
		incoming = append(incoming, acc)
	}

	// Resolve batch-local parent references given as codes.
	for i := range incoming {
		parent := incoming[i].ParentAccountID
		if parent == "" {
			continue
		}
		if id, ok := incomingIDByCode[parent]; ok {
			incoming[i].ParentAccountID = id
		} else if prev, ok := existingByCode[parent]; ok {
			incoming[i].ParentAccountID = prev.AccountID
		}
	}

	// Validate the merged hierarchy before writing anything.
	merged := make(map[string]domain.Account, len(existing)+len(incoming))
	for _, acc := range existing {
		merged[acc.AccountID] = acc
	}
	for _, acc := range incoming {
		merged[acc.AccountID] = acc
	}
	if err := detectAccountCycles(merged); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := s.accountRepo.UpsertAccountsByCode(ctx, incoming); err != nil {
		s.LogError(ctx, err, "Failed to upsert accounts", slog.Int("count", len(incoming)))
		return nil, fmt.Errorf("failed to upsert accounts: %w", err)
	}
	s.LogInfo(ctx, "Accounts imported", slog.Int("count", len(incoming)))
	return incoming, nil
}

// detectAccountCycles walks every account's parent chain with a visited
// set. A self-reference terminates the walk harmlessly; any longer loop
// is an error.
func detectAccountCycles(byID map[string]domain.Account) error {
	for id := range byID {
		visited := map[string]bool{}
		current := id
		for {
			acc, ok := byID[current]
			if !ok || acc.ParentAccountID == "" || acc.ParentAccountID == current {
				break
			}
			if visited[acc.ParentAccountID] {
				return fmt.Errorf("%w: via account %s", ErrAccountCycle, byID[id].Code)
			}
			visited[current] = true
			current = acc.ParentAccountID
		}
	}
	return nil
}

// GetAccountByID retrieves one account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts returns the full chart of accounts.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
