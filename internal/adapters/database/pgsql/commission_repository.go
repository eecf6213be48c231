package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
)

type commissionRepository struct {
	pool *pgxpool.Pool
}

// NewCommissionRepository creates a new repository for commission rules.
func NewCommissionRepository(pool *pgxpool.Pool) portsrepo.CommissionRuleRepository {
	return &commissionRepository{pool: pool}
}

const ruleColumns = `rule_id, zone_name, commission_for, driver_salary_type, rule_type, value, value_usd, value_khr, currency_code, is_default, created_at, created_by, last_updated_at, last_updated_by`

// SaveRule upserts one commission rule.
func (r *commissionRepository) SaveRule(ctx context.Context, rule domain.CommissionRule) error {
	query := `
		INSERT INTO commission_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (rule_id) DO UPDATE SET
			zone_name = EXCLUDED.zone_name,
			commission_for = EXCLUDED.commission_for,
			driver_salary_type = EXCLUDED.driver_salary_type,
			rule_type = EXCLUDED.rule_type,
			value = EXCLUDED.value,
			value_usd = EXCLUDED.value_usd,
			value_khr = EXCLUDED.value_khr,
			currency_code = EXCLUDED.currency_code,
			is_default = EXCLUDED.is_default,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		rule.RuleID,
		rule.ZoneName,
		rule.CommissionFor,
		rule.DriverSalaryType,
		rule.Type,
		rule.Value,
		rule.ValueUSD,
		rule.ValueKHR,
		rule.CurrencyCode,
		rule.IsDefault,
		rule.CreatedAt,
		rule.CreatedBy,
		rule.LastUpdatedAt,
		rule.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save commission rule %s: %w", rule.RuleID, err)
	}
	return nil
}

// ListRules returns all commission rules.
func (r *commissionRepository) ListRules(ctx context.Context) ([]domain.CommissionRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM commission_rules ORDER BY created_at;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query commission rules: %w", err)
	}
	defer rows.Close()

	rules := []domain.CommissionRule{}
	for rows.Next() {
		var rule domain.CommissionRule
		if err := rows.Scan(
			&rule.RuleID,
			&rule.ZoneName,
			&rule.CommissionFor,
			&rule.DriverSalaryType,
			&rule.Type,
			&rule.Value,
			&rule.ValueUSD,
			&rule.ValueKHR,
			&rule.CurrencyCode,
			&rule.IsDefault,
			&rule.CreatedAt,
			&rule.CreatedBy,
			&rule.LastUpdatedAt,
			&rule.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan commission rule row: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating commission rule rows: %w", err)
	}
	return rules, nil
}
