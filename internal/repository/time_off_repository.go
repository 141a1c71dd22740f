package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/carenotes/internal/domain"
)

// TimeOffRepository encapsulates leave request persistence.
type TimeOffRepository interface {
	Create(ctx context.Context, request *domain.TimeOffRequest) error
	Update(ctx context.Context, request *domain.TimeOffRequest) error
	GetByID(ctx context.Context, id string) (*domain.TimeOffRequest, error)
	ListByEmployee(ctx context.Context, employeeID string, limit, offset int) ([]domain.TimeOffRequest, error)
	ListOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]domain.TimeOffRequest, error)
}

type timeOffRepository struct {
	pool *pgxpool.Pool
}

// NewTimeOffRepository instantiates repository.
func NewTimeOffRepository(pool *pgxpool.Pool) TimeOffRepository {
	return &timeOffRepository{pool: pool}
}

func (r *timeOffRepository) Create(ctx context.Context, request *domain.TimeOffRequest) error {
	const query = `
        INSERT INTO time_off_requests (employee_id, request_type, start_date, end_date, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		request.EmployeeID,
		request.Type,
		request.StartDate,
		request.EndDate,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *timeOffRepository) Update(ctx context.Context, request *domain.TimeOffRequest) error {
	const query = `
        UPDATE time_off_requests SET status=$1, decided_by=$2, decision_note=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		request.Status,
		request.DecidedBy,
		request.DecisionNote,
		request.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *timeOffRepository) GetByID(ctx context.Context, id string) (*domain.TimeOffRequest, error) {
	const query = `
        SELECT id, employee_id, request_type, start_date, end_date, status, decided_by,
               decision_note, created_at, updated_at
        FROM time_off_requests WHERE id=$1`
	var request domain.TimeOffRequest
	if err := scanTimeOff(r.pool.QueryRow(ctx, query, id), &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *timeOffRepository) ListByEmployee(ctx context.Context, employeeID string, limit, offset int) ([]domain.TimeOffRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, employee_id, request_type, start_date, end_date, status, decided_by,
               decision_note, created_at, updated_at
        FROM time_off_requests WHERE employee_id=$1 ORDER BY start_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTimeOff(rows)
}

// ListOverlapping returns non-denied requests intersecting the given range.
func (r *timeOffRepository) ListOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]domain.TimeOffRequest, error) {
	const query = `
        SELECT id, employee_id, request_type, start_date, end_date, status, decided_by,
               decision_note, created_at, updated_at
        FROM time_off_requests
        WHERE employee_id=$1 AND status <> $2 AND start_date <= $3 AND end_date >= $4`
	rows, err := r.pool.Query(ctx, query, employeeID, domain.TimeOffStatusDenied, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTimeOff(rows)
}

func collectTimeOff(rows pgx.Rows) ([]domain.TimeOffRequest, error) {
	var result []domain.TimeOffRequest
	for rows.Next() {
		var request domain.TimeOffRequest
		if err := scanTimeOff(rows, &request); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}

func scanTimeOff(row pgx.Row, request *domain.TimeOffRequest) error {
	return row.Scan(
		&request.ID,
		&request.EmployeeID,
		&request.Type,
		&request.StartDate,
		&request.EndDate,
		&request.Status,
		&request.DecidedBy,
		&request.DecisionNote,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
}
