package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/carenotes/internal/domain"
)

// PlacementRequestFilter captures listing parameters.
type PlacementRequestFilter struct {
	ChildID  *string
	Statuses []domain.RequestStatus
	Limit    int
	Offset   int
}

// PlacementRequestRepository encapsulates placement request persistence.
type PlacementRequestRepository interface {
	Create(ctx context.Context, request *domain.PlacementRequest) error
	Update(ctx context.Context, request *domain.PlacementRequest) error
	GetByID(ctx context.Context, id string) (*domain.PlacementRequest, error)
	List(ctx context.Context, filter PlacementRequestFilter) ([]domain.PlacementRequest, error)
}

type placementRequestRepository struct {
	pool *pgxpool.Pool
}

// NewPlacementRequestRepository instantiates repository.
func NewPlacementRequestRepository(pool *pgxpool.Pool) PlacementRequestRepository {
	return &placementRequestRepository{pool: pool}
}

const requestColumns = `id, child_id, requested_type, urgency, preferred_locality,
               max_weekly_fee_pence, required_specialisms, notes, status, created_at, updated_at`

func (r *placementRequestRepository) Create(ctx context.Context, request *domain.PlacementRequest) error {
	const query = `
        INSERT INTO placement_requests (child_id, requested_type, urgency, preferred_locality,
            max_weekly_fee_pence, required_specialisms, notes, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		request.ChildID,
		request.RequestedType,
		request.Urgency,
		request.PreferredLocality,
		request.MaxWeeklyFeePence,
		request.RequiredSpecialisms,
		request.Notes,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *placementRequestRepository) Update(ctx context.Context, request *domain.PlacementRequest) error {
	const query = `
        UPDATE placement_requests SET requested_type=$1, urgency=$2, preferred_locality=$3,
            max_weekly_fee_pence=$4, required_specialisms=$5, notes=$6, status=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		request.RequestedType,
		request.Urgency,
		request.PreferredLocality,
		request.MaxWeeklyFeePence,
		request.RequiredSpecialisms,
		request.Notes,
		request.Status,
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

func (r *placementRequestRepository) GetByID(ctx context.Context, id string) (*domain.PlacementRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM placement_requests WHERE id=$1`, requestColumns)
	var request domain.PlacementRequest
	if err := scanPlacementRequest(r.pool.QueryRow(ctx, query, id), &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *placementRequestRepository) List(ctx context.Context, filter PlacementRequestFilter) ([]domain.PlacementRequest, error) {
	base := fmt.Sprintf(`SELECT %s FROM placement_requests`, requestColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ChildID != nil {
		args = append(args, *filter.ChildID)
		clauses = append(clauses, fmt.Sprintf("child_id=$%d", len(args)))
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

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PlacementRequest
	for rows.Next() {
		var request domain.PlacementRequest
		if err := scanPlacementRequest(rows, &request); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}

func scanPlacementRequest(row pgx.Row, request *domain.PlacementRequest) error {
	return row.Scan(
		&request.ID,
		&request.ChildID,
		&request.RequestedType,
		&request.Urgency,
		&request.PreferredLocality,
		&request.MaxWeeklyFeePence,
		&request.RequiredSpecialisms,
		&request.Notes,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
}
