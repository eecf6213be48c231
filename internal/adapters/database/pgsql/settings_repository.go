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

type settingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new repository for the single
// ledger-settings row.
func NewSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepository {
	return &settingsRepository{pool: pool}
}

const settingsColumns = `driver_wallet_usd_account_id, driver_wallet_khr_account_id, customer_wallet_usd_account_id, customer_wallet_khr_account_id, default_wallet_account_id, delivery_revenue_account_id, commission_expense_account_id, retained_earnings_account_id, default_bank_account_id, created_at, created_by, last_updated_at, last_updated_by`

// GetLedgerSettings reads the settings row. The table holds at most one
// row, keyed on a constant id.
func (r *settingsRepository) GetLedgerSettings(ctx context.Context) (*domain.LedgerSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM ledger_settings WHERE settings_id = 1;`
	var s domain.LedgerSettings
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.DriverWalletUSDAccountID,
		&s.DriverWalletKHRAccountID,
		&s.CustomerWalletUSDAccountID,
		&s.CustomerWalletKHRAccountID,
		&s.DefaultWalletAccountID,
		&s.DeliveryRevenueAccountID,
		&s.CommissionExpenseAccountID,
		&s.RetainedEarningsAccountID,
		&s.DefaultBankAccountID,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load ledger settings: %w", err)
	}
	return &s, nil
}

// SaveLedgerSettings writes the settings row, creating it on first use.
func (r *settingsRepository) SaveLedgerSettings(ctx context.Context, s domain.LedgerSettings) error {
	query := `
		INSERT INTO ledger_settings (settings_id, ` + settingsColumns + `)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (settings_id) DO UPDATE SET
			driver_wallet_usd_account_id = EXCLUDED.driver_wallet_usd_account_id,
			driver_wallet_khr_account_id = EXCLUDED.driver_wallet_khr_account_id,
			customer_wallet_usd_account_id = EXCLUDED.customer_wallet_usd_account_id,
			customer_wallet_khr_account_id = EXCLUDED.customer_wallet_khr_account_id,
			default_wallet_account_id = EXCLUDED.default_wallet_account_id,
			delivery_revenue_account_id = EXCLUDED.delivery_revenue_account_id,
			commission_expense_account_id = EXCLUDED.commission_expense_account_id,
			retained_earnings_account_id = EXCLUDED.retained_earnings_account_id,
			default_bank_account_id = EXCLUDED.default_bank_account_id,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		s.DriverWalletUSDAccountID,
		s.DriverWalletKHRAccountID,
		s.CustomerWalletUSDAccountID,
		s.CustomerWalletKHRAccountID,
		s.DefaultWalletAccountID,
		s.DeliveryRevenueAccountID,
		s.CommissionExpenseAccountID,
		s.RetainedEarningsAccountID,
		s.DefaultBankAccountID,
		s.CreatedAt,
		s.CreatedBy,
		s.LastUpdatedAt,
		s.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger settings: %w", err)
	}
	return nil
}
