package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/carenotes/internal/domain"
)

// PlacementFeeRepository stores additional placement charges.
type PlacementFeeRepository interface {
	Create(ctx context.Context, fee *domain.PlacementFee) error
	ListByPlacement(ctx context.Context, placementID string) ([]domain.PlacementFee, error)
}

type placementFeeRepository struct {
	pool *pgxpool.Pool
}

// NewPlacementFeeRepository instantiates repository.
func NewPlacementFeeRepository(pool *pgxpool.Pool) PlacementFeeRepository {
	return &placementFeeRepository{pool: pool}
}

func (r *placementFeeRepository) Create(ctx context.Context, fee *domain.PlacementFee) error {
	const query = `
        INSERT INTO placement_fees (placement_id, fee_type, label, amount_pence)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		fee.PlacementID,
		fee.FeeType,
		fee.Label,
		fee.AmountPence,
	).Scan(&fee.ID, &fee.CreatedAt)
}

func (r *placementFeeRepository) ListByPlacement(ctx context.Context, placementID string) ([]domain.PlacementFee, error) {
	const query = `
        SELECT id, placement_id, fee_type, label, amount_pence, created_at
        FROM placement_fees WHERE placement_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, placementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PlacementFee
	for rows.Next() {
		var fee domain.PlacementFee
		if err := rows.Scan(
			&fee.ID,
			&fee.PlacementID,
			&fee.FeeType,
			&fee.Label,
			&fee.AmountPence,
			&fee.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, fee)
	}
	return result, rows.Err()
}
