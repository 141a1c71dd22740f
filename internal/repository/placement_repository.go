package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/carenotes/internal/domain"
)

// PlacementFilter captures placement listing parameters.
type PlacementFilter struct {
	ChildID        *string
	OrganizationID *string
	Statuses       []domain.PlacementStatus
	Limit          int
	Offset         int
}

// PlacementRepository encapsulates placement persistence.
type PlacementRepository interface {
	Create(ctx context.Context, placement *domain.Placement) error
	Update(ctx context.Context, placement *domain.Placement) error
	GetByID(ctx context.Context, id string) (*domain.Placement, error)
	GetOpenByChild(ctx context.Context, childID string) (*domain.Placement, error)
	List(ctx context.Context, filter PlacementFilter) ([]domain.Placement, error)
}

type placementRepository struct {
	pool *pgxpool.Pool
}

// NewPlacementRepository instantiates repository.
func NewPlacementRepository(pool *pgxpool.Pool) PlacementRepository {
	return &placementRepository{pool: pool}
}

const placementColumns = `id, reference_key, child_id, organization_id, status, placement_type,
               start_date, expected_end_date, actual_end_date, end_reason,
               base_weekly_fee_pence, created_at, updated_at`

func (r *placementRepository) Create(ctx context.Context, placement *domain.Placement) error {
	const query = `
        INSERT INTO placements (reference_key, child_id, organization_id, status, placement_type,
            start_date, expected_end_date, base_weekly_fee_pence)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		placement.ReferenceKey,
		placement.ChildID,
		placement.OrganizationID,
		placement.Status,
		placement.Type,
		placement.StartDate,
		placement.ExpectedEndDate,
		placement.BaseWeeklyFeePence,
	).Scan(&placement.ID, &placement.CreatedAt, &placement.UpdatedAt)
}

func (r *placementRepository) Update(ctx context.Context, placement *domain.Placement) error {
	const query = `
        UPDATE placements SET status=$1, expected_end_date=$2, actual_end_date=$3, end_reason=$4,
            base_weekly_fee_pence=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		placement.Status,
		placement.ExpectedEndDate,
		placement.ActualEndDate,
		placement.EndReason,
		placement.BaseWeeklyFeePence,
		placement.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *placementRepository) GetByID(ctx context.Context, id string) (*domain.Placement, error) {
	query := fmt.Sprintf(`SELECT %s FROM placements WHERE id=$1`, placementColumns)
	var placement domain.Placement
	if err := scanPlacement(r.pool.QueryRow(ctx, query, id), &placement); err != nil {
		return nil, err
	}
	return &placement, nil
}

// GetOpenByChild returns the child's placement in a non-terminal status.
func (r *placementRepository) GetOpenByChild(ctx context.Context, childID string) (*domain.Placement, error) {
	query := fmt.Sprintf(`SELECT %s FROM placements WHERE child_id=$1 AND status IN ($2,$3)`,
		placementColumns)
	var placement domain.Placement
	if err := scanPlacement(r.pool.QueryRow(ctx, query, childID,
		domain.PlacementStatusPendingArrival, domain.PlacementStatusActive), &placement); err != nil {
		return nil, err
	}
	return &placement, nil
}

func (r *placementRepository) List(ctx context.Context, filter PlacementFilter) ([]domain.Placement, error) {
	base := fmt.Sprintf(`SELECT %s FROM placements`, placementColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ChildID != nil {
		args = append(args, *filter.ChildID)
		clauses = append(clauses, fmt.Sprintf("child_id=$%d", len(args)))
	}
	if filter.OrganizationID != nil {
		args = append(args, *filter.OrganizationID)
		clauses = append(clauses, fmt.Sprintf("organization_id=$%d", len(args)))
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

	query := fmt.Sprintf(`%s WHERE %s ORDER BY start_date DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Placement
	for rows.Next() {
		var placement domain.Placement
		if err := scanPlacement(rows, &placement); err != nil {
			return nil, err
		}
		result = append(result, placement)
	}
	return result, rows.Err()
}

func scanPlacement(row pgx.Row, placement *domain.Placement) error {
	return row.Scan(
		&placement.ID,
		&placement.ReferenceKey,
		&placement.ChildID,
		&placement.OrganizationID,
		&placement.Status,
		&placement.Type,
		&placement.StartDate,
		&placement.ExpectedEndDate,
		&placement.ActualEndDate,
		&placement.EndReason,
		&placement.BaseWeeklyFeePence,
		&placement.CreatedAt,
		&placement.UpdatedAt,
	)
}
