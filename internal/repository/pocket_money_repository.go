package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/carenotes/internal/domain"
)

// PocketMoneyRepository encapsulates pocket money disbursement persistence.
type PocketMoneyRepository interface {
	Create(ctx context.Context, disbursement *domain.PocketMoneyDisbursement) error
	GetByChildWeek(ctx context.Context, childID string, week, year int) (*domain.PocketMoneyDisbursement, error)
	ListByChildYear(ctx context.Context, childID string, year int) ([]domain.PocketMoneyDisbursement, error)
}

type pocketMoneyRepository struct {
	pool *pgxpool.Pool
}

// NewPocketMoneyRepository instantiates repository.
func NewPocketMoneyRepository(pool *pgxpool.Pool) PocketMoneyRepository {
	return &pocketMoneyRepository{pool: pool}
}

func (r *pocketMoneyRepository) Create(ctx context.Context, d *domain.PocketMoneyDisbursement) error {
	const query = `
        INSERT INTO pocket_money_disbursements (child_id, week_number, year, amount_pence, method, disbursed_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		d.ChildID,
		d.WeekNumber,
		d.Year,
		d.AmountPence,
		d.Method,
		d.DisbursedBy,
	).Scan(&d.ID, &d.CreatedAt)
}

func (r *pocketMoneyRepository) GetByChildWeek(ctx context.Context, childID string, week, year int) (*domain.PocketMoneyDisbursement, error) {
	const query = `
        SELECT id, child_id, week_number, year, amount_pence, method, disbursed_by, created_at
        FROM pocket_money_disbursements WHERE child_id=$1 AND week_number=$2 AND year=$3`
	var d domain.PocketMoneyDisbursement
	if err := scanDisbursement(r.pool.QueryRow(ctx, query, childID, week, year), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *pocketMoneyRepository) ListByChildYear(ctx context.Context, childID string, year int) ([]domain.PocketMoneyDisbursement, error) {
	const query = `
        SELECT id, child_id, week_number, year, amount_pence, method, disbursed_by, created_at
        FROM pocket_money_disbursements WHERE child_id=$1 AND year=$2 ORDER BY week_number ASC`
	rows, err := r.pool.Query(ctx, query, childID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PocketMoneyDisbursement
	for rows.Next() {
		var d domain.PocketMoneyDisbursement
		if err := scanDisbursement(rows, &d); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func scanDisbursement(row pgx.Row, d *domain.PocketMoneyDisbursement) error {
	return row.Scan(
		&d.ID,
		&d.ChildID,
		&d.WeekNumber,
		&d.Year,
		&d.AmountPence,
		&d.Method,
		&d.DisbursedBy,
		&d.CreatedAt,
	)
}
