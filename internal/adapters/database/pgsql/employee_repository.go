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

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository creates a new read-side repository over the
// employee directory.
func NewEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `employee_id, name, is_driver, zone_name, salary_type, wallet_account_id, created_at, created_by, last_updated_at, last_updated_by`

// FindEmployeeByID retrieves an employee by ID.
func (r *employeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1;`
	emp, err := scanEmployee(r.pool.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}
	return emp, nil
}

// ListEmployees returns all employees.
func (r *employeeRepository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY name;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, *emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", err)
	}
	return employees, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var emp domain.Employee
	var zoneName, salaryType, walletAccountID *string
	if err := row.Scan(
		&emp.EmployeeID,
		&emp.Name,
		&emp.IsDriver,
		&zoneName,
		&salaryType,
		&walletAccountID,
		&emp.CreatedAt,
		&emp.CreatedBy,
		&emp.LastUpdatedAt,
		&emp.LastUpdatedBy,
	); err != nil {
		return nil, err
	}
	if emp.IsDriver {
		profile := &domain.DriverProfile{}
		if zoneName != nil {
			profile.ZoneName = *zoneName
		}
		if salaryType != nil {
			profile.SalaryType = domain.DriverSalaryType(*salaryType)
		}
		if walletAccountID != nil {
			profile.WalletAccountID = *walletAccountID
		}
		emp.Driver = profile
	}
	return &emp, nil
}
