package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dsadvance/parcel_ledger_app/internal/apperrors"
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
)

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new repository for chart-of-accounts data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `account_id, code, name, account_type, sub_type, currency_code, is_header, parent_account_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

// SaveAccount inserts a new account.
func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query, accountArgs(account)...)
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

// UpsertAccountsByCode writes a batch of accounts keyed on code, inside
// one DB transaction so a partial import never lands.
func (r *accountRepository) UpsertAccountsByCode(ctx context.Context, accounts []domain.Account) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			account_type = EXCLUDED.account_type,
			sub_type = EXCLUDED.sub_type,
			currency_code = EXCLUDED.currency_code,
			is_header = EXCLUDED.is_header,
			parent_account_id = EXCLUDED.parent_account_id,
			is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	batch := &pgx.Batch{}
	for _, account := range accounts {
		batch.Queue(query, accountArgs(account)...)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute account upsert batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit account upsert: %w", err)
	}
	return nil
}

func accountArgs(account domain.Account) []any {
	var parentID *string
	if account.ParentAccountID != "" {
		parentID = &account.ParentAccountID
	}
	return []any{
		account.AccountID,
		account.Code,
		account.Name,
		account.AccountType,
		account.SubType,
		account.CurrencyCode,
		account.IsHeader,
		parentID,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	}
}

// FindAccountByID retrieves an account by its ID.
func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return r.scanOne(ctx, query, accountID)
}

// FindAccountByCode retrieves an account by its stable code.
func (r *accountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`
	return r.scanOne(ctx, query, code)
}

func (r *accountRepository) scanOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var acc domain.Account
	var parentID *string
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&acc.AccountID,
		&acc.Code,
		&acc.Name,
		&acc.AccountType,
		&acc.SubType,
		&acc.CurrencyCode,
		&acc.IsHeader,
		&parentID,
		&acc.IsActive,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if parentID != nil {
		acc.ParentAccountID = *parentID
	}
	return &acc, nil
}

// ListAccounts returns the full chart of accounts ordered by code.
func (r *accountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var acc domain.Account
		var parentID *string
		if err := rows.Scan(
			&acc.AccountID,
			&acc.Code,
			&acc.Name,
			&acc.AccountType,
			&acc.SubType,
			&acc.CurrencyCode,
			&acc.IsHeader,
			&parentID,
			&acc.IsActive,
			&acc.CreatedAt,
			&acc.CreatedBy,
			&acc.LastUpdatedAt,
			&acc.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		if parentID != nil {
			acc.ParentAccountID = *parentID
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}
