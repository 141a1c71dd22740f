package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/carenotes/internal/domain"
)

// PlacementReviewRepository stores statutory placement reviews.
type PlacementReviewRepository interface {
	Create(ctx context.Context, review *domain.PlacementReview) error
	Update(ctx context.Context, review *domain.PlacementReview) error
	GetByID(ctx context.Context, id string) (*domain.PlacementReview, error)
	ListByPlacement(ctx context.Context, placementID string) ([]domain.PlacementReview, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.PlacementReview, error)
}

type placementReviewRepository struct {
	pool *pgxpool.Pool
}

// NewPlacementReviewRepository instantiates repository.
func NewPlacementReviewRepository(pool *pgxpool.Pool) PlacementReviewRepository {
	return &placementReviewRepository{pool: pool}
}

func (r *placementReviewRepository) Create(ctx context.Context, review *domain.PlacementReview) error {
	const query = `
        INSERT INTO placement_reviews (placement_id, review_type, due_date)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		review.PlacementID,
		review.ReviewType,
		review.DueDate,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
}

func (r *placementReviewRepository) Update(ctx context.Context, review *domain.PlacementReview) error {
	const query = `
        UPDATE placement_reviews SET due_date=$1, completed_at=$2, outcome_notes=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		review.DueDate,
		review.CompletedAt,
		review.OutcomeNotes,
		review.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *placementReviewRepository) GetByID(ctx context.Context, id string) (*domain.PlacementReview, error) {
	const query = `
        SELECT id, placement_id, review_type, due_date, completed_at, outcome_notes, created_at, updated_at
        FROM placement_reviews WHERE id=$1`
	var review domain.PlacementReview
	if err := scanReview(r.pool.QueryRow(ctx, query, id), &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *placementReviewRepository) ListByPlacement(ctx context.Context, placementID string) ([]domain.PlacementReview, error) {
	const query = `
        SELECT id, placement_id, review_type, due_date, completed_at, outcome_notes, created_at, updated_at
        FROM placement_reviews WHERE placement_id=$1 ORDER BY due_date ASC`
	rows, err := r.pool.Query(ctx, query, placementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReviews(rows)
}

func (r *placementReviewRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.PlacementReview, error) {
	const query = `
        SELECT id, placement_id, review_type, due_date, completed_at, outcome_notes, created_at, updated_at
        FROM placement_reviews WHERE completed_at IS NULL AND due_date < $1 ORDER BY due_date ASC`
	rows, err := r.pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReviews(rows)
}

func collectReviews(rows pgx.Rows) ([]domain.PlacementReview, error) {
	var result []domain.PlacementReview
	for rows.Next() {
		var review domain.PlacementReview
		if err := scanReview(rows, &review); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	return result, rows.Err()
}

func scanReview(row pgx.Row, review *domain.PlacementReview) error {
	return row.Scan(
		&review.ID,
		&review.PlacementID,
		&review.ReviewType,
		&review.DueDate,
		&review.CompletedAt,
		&review.OutcomeNotes,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
}
