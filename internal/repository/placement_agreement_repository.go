package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/carenotes/internal/domain"
)

// PlacementAgreementRepository stores placement agreements.
type PlacementAgreementRepository interface {
	Create(ctx context.Context, agreement *domain.PlacementAgreement) error
	Update(ctx context.Context, agreement *domain.PlacementAgreement) error
	GetByID(ctx context.Context, id string) (*domain.PlacementAgreement, error)
	ListByPlacement(ctx context.Context, placementID string) ([]domain.PlacementAgreement, error)
}

type placementAgreementRepository struct {
	pool *pgxpool.Pool
}

// NewPlacementAgreementRepository instantiates repository.
func NewPlacementAgreementRepository(pool *pgxpool.Pool) PlacementAgreementRepository {
	return &placementAgreementRepository{pool: pool}
}

func (r *placementAgreementRepository) Create(ctx context.Context, agreement *domain.PlacementAgreement) error {
	const query = `
        INSERT INTO placement_agreements (placement_id, agreement_type, status)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		agreement.PlacementID,
		agreement.AgreementType,
		agreement.Status,
	).Scan(&agreement.ID, &agreement.CreatedAt, &agreement.UpdatedAt)
}

func (r *placementAgreementRepository) Update(ctx context.Context, agreement *domain.PlacementAgreement) error {
	const query = `
        UPDATE placement_agreements SET status=$1, signed_by_authority=$2, authority_signed_at=$3,
            signed_by_provider=$4, provider_signed_at=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		agreement.Status,
		agreement.SignedByAuthority,
		agreement.AuthoritySignedAt,
		agreement.SignedByProvider,
		agreement.ProviderSignedAt,
		agreement.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *placementAgreementRepository) GetByID(ctx context.Context, id string) (*domain.PlacementAgreement, error) {
	const query = `
        SELECT id, placement_id, agreement_type, status, signed_by_authority, authority_signed_at,
               signed_by_provider, provider_signed_at, created_at, updated_at
        FROM placement_agreements WHERE id=$1`
	var agreement domain.PlacementAgreement
	if err := scanAgreement(r.pool.QueryRow(ctx, query, id), &agreement); err != nil {
		return nil, err
	}
	return &agreement, nil
}

func (r *placementAgreementRepository) ListByPlacement(ctx context.Context, placementID string) ([]domain.PlacementAgreement, error) {
	const query = `
        SELECT id, placement_id, agreement_type, status, signed_by_authority, authority_signed_at,
               signed_by_provider, provider_signed_at, created_at, updated_at
        FROM placement_agreements WHERE placement_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, placementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PlacementAgreement
	for rows.Next() {
		var agreement domain.PlacementAgreement
		if err := scanAgreement(rows, &agreement); err != nil {
			return nil, err
		}
		result = append(result, agreement)
	}
	return result, rows.Err()
}

func scanAgreement(row pgx.Row, agreement *domain.PlacementAgreement) error {
	return row.Scan(
		&agreement.ID,
		&agreement.PlacementID,
		&agreement.AgreementType,
		&agreement.Status,
		&agreement.SignedByAuthority,
		&agreement.AuthoritySignedAt,
		&agreement.SignedByProvider,
		&agreement.ProviderSignedAt,
		&agreement.CreatedAt,
		&agreement.UpdatedAt,
	)
}
