package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/carenotes/internal/domain"
)

// EmployeeFilter captures HR listing parameters.
type EmployeeFilter struct {
	ContractType *domain.ContractType
	Limit        int
	Offset       int
}

// EmployeeRepository encapsulates HR profile persistence.
type EmployeeRepository interface {
	Create(ctx context.Context, profile *domain.EmployeeProfile) error
	Update(ctx context.Context, profile *domain.EmployeeProfile) error
	GetByID(ctx context.Context, id string) (*domain.EmployeeProfile, error)
	GetByStaffID(ctx context.Context, staffID string) (*domain.EmployeeProfile, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.EmployeeProfile, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) Create(ctx context.Context, profile *domain.EmployeeProfile) error {
	const query = `
        INSERT INTO employee_profiles (staff_id, job_title, contract_type, contracted_hours,
            dbs_checked_at, annual_leave_days)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		profile.StaffID,
		profile.JobTitle,
		profile.ContractType,
		profile.ContractedHours,
		profile.DBSCheckedAt,
		profile.AnnualLeaveDays,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, profile *domain.EmployeeProfile) error {
	const query = `
        UPDATE employee_profiles SET job_title=$1, contract_type=$2, contracted_hours=$3,
            dbs_checked_at=$4, annual_leave_days=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		profile.JobTitle,
		profile.ContractType,
		profile.ContractedHours,
		profile.DBSCheckedAt,
		profile.AnnualLeaveDays,
		profile.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.EmployeeProfile, error) {
	const query = `
        SELECT id, staff_id, job_title, contract_type, contracted_hours, dbs_checked_at,
               annual_leave_days, created_at, updated_at
        FROM employee_profiles WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *employeeRepository) GetByStaffID(ctx context.Context, staffID string) (*domain.EmployeeProfile, error) {
	const query = `
        SELECT id, staff_id, job_title, contract_type, contracted_hours, dbs_checked_at,
               annual_leave_days, created_at, updated_at
        FROM employee_profiles WHERE staff_id=$1`
	return r.fetchSingle(ctx, query, staffID)
}

func (r *employeeRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.EmployeeProfile, error) {
	var profile domain.EmployeeProfile
	if err := scanEmployee(r.pool.QueryRow(ctx, query, arg), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.EmployeeProfile, error) {
	base := `SELECT id, staff_id, job_title, contract_type, contracted_hours, dbs_checked_at,
               annual_leave_days, created_at, updated_at
             FROM employee_profiles`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ContractType != nil {
		args = append(args, *filter.ContractType)
		clauses = append(clauses, fmt.Sprintf("contract_type=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at ASC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EmployeeProfile
	for rows.Next() {
		var profile domain.EmployeeProfile
		if err := scanEmployee(rows, &profile); err != nil {
			return nil, err
		}
		result = append(result, profile)
	}
	return result, rows.Err()
}

func scanEmployee(row pgx.Row, profile *domain.EmployeeProfile) error {
	return row.Scan(
		&profile.ID,
		&profile.StaffID,
		&profile.JobTitle,
		&profile.ContractType,
		&profile.ContractedHours,
		&profile.DBSCheckedAt,
		&profile.AnnualLeaveDays,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
}
