package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/carenotes/internal/domain"
)

// ShiftSwapFilter captures swap listing parameters.
type ShiftSwapFilter struct {
	EmployeeID *string
	Statuses   []domain.ShiftSwapStatus
	Limit      int
	Offset     int
}

// ShiftSwapRepository encapsulates shift swap persistence.
type ShiftSwapRepository interface {
	Create(ctx context.Context, swap *domain.ShiftSwap) error
	Update(ctx context.Context, swap *domain.ShiftSwap) error
	GetByID(ctx context.Context, id string) (*domain.ShiftSwap, error)
	List(ctx context.Context, filter ShiftSwapFilter) ([]domain.ShiftSwap, error)
}

type shiftSwapRepository struct {
	pool *pgxpool.Pool
}

// NewShiftSwapRepository instantiates repository.
func NewShiftSwapRepository(pool *pgxpool.Pool) ShiftSwapRepository {
	return &shiftSwapRepository{pool: pool}
}

func (r *shiftSwapRepository) Create(ctx context.Context, swap *domain.ShiftSwap) error {
	const query = `
        INSERT INTO shift_swaps (requesting_employee, accepting_employee, shift_date, shift_label, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		swap.RequestingEmployee,
		swap.AcceptingEmployee,
		swap.ShiftDate,
		swap.Shift,
		swap.Status,
	).Scan(&swap.ID, &swap.CreatedAt, &swap.UpdatedAt)
}

func (r *shiftSwapRepository) Update(ctx context.Context, swap *domain.ShiftSwap) error {
	const query = `
        UPDATE shift_swaps SET status=$1, decided_by=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query,
		swap.Status,
		swap.DecidedBy,
		swap.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *shiftSwapRepository) GetByID(ctx context.Context, id string) (*domain.ShiftSwap, error) {
	const query = `
        SELECT id, requesting_employee, accepting_employee, shift_date, shift_label, status,
               decided_by, created_at, updated_at
        FROM shift_swaps WHERE id=$1`
	var swap domain.ShiftSwap
	if err := scanShiftSwap(r.pool.QueryRow(ctx, query, id), &swap); err != nil {
		return nil, err
	}
	return &swap, nil
}

func (r *shiftSwapRepository) List(ctx context.Context, filter ShiftSwapFilter) ([]domain.ShiftSwap, error) {
	base := `SELECT id, requesting_employee, accepting_employee, shift_date, shift_label, status,
               decided_by, created_at, updated_at
             FROM shift_swaps`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(requesting_employee=%s OR accepting_employee=%s)", placeholder, placeholder))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY shift_date DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ShiftSwap
	for rows.Next() {
		var swap domain.ShiftSwap
		if err := scanShiftSwap(rows, &swap); err != nil {
			return nil, err
		}
		result = append(result, swap)
	}
	return result, rows.Err()
}

func scanShiftSwap(row pgx.Row, swap *domain.ShiftSwap) error {
	return row.Scan(
		&swap.ID,
		&swap.RequestingEmployee,
		&swap.AcceptingEmployee,
		&swap.ShiftDate,
		&swap.Shift,
		&swap.Status,
		&swap.DecidedBy,
		&swap.CreatedAt,
		&swap.UpdatedAt,
	)
}
