package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/carenotes/internal/domain"
)

// MedicationRepository encapsulates medication record persistence.
type MedicationRepository interface {
	Create(ctx context.Context, record *domain.MedicationRecord) error
	Update(ctx context.Context, record *domain.MedicationRecord) error
	GetByID(ctx context.Context, id string) (*domain.MedicationRecord, error)
	ListByChild(ctx context.Context, childID string, activeOnly bool) ([]domain.MedicationRecord, error)
}

type medicationRepository struct {
	pool *pgxpool.Pool
}

// NewMedicationRepository instantiates repository.
func NewMedicationRepository(pool *pgxpool.Pool) MedicationRepository {
	return &medicationRepository{pool: pool}
}

func (r *medicationRepository) Create(ctx context.Context, record *domain.MedicationRecord) error {
	const query = `
        INSERT INTO medication_records (child_id, dmd_code, name, dose, route, frequency,
            prescriber, start_date, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		record.ChildID,
		record.DMDCode,
		record.Name,
		record.Dose,
		record.Route,
		record.Frequency,
		record.Prescriber,
		record.StartDate,
		record.Status,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

func (r *medicationRepository) Update(ctx context.Context, record *domain.MedicationRecord) error {
	const query = `
        UPDATE medication_records SET dose=$1, route=$2, frequency=$3, end_date=$4, status=$5,
            updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		record.Dose,
		record.Route,
		record.Frequency,
		record.EndDate,
		record.Status,
		record.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *medicationRepository) GetByID(ctx context.Context, id string) (*domain.MedicationRecord, error) {
	const query = `
        SELECT id, child_id, dmd_code, name, dose, route, frequency, prescriber, start_date,
               end_date, status, created_at, updated_at
        FROM medication_records WHERE id=$1`
	var record domain.MedicationRecord
	if err := scanMedication(r.pool.QueryRow(ctx, query, id), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *medicationRepository) ListByChild(ctx context.Context, childID string, activeOnly bool) ([]domain.MedicationRecord, error) {
	base := `SELECT id, child_id, dmd_code, name, dose, route, frequency, prescriber, start_date,
               end_date, status, created_at, updated_at
             FROM medication_records`
	clauses := []string{"child_id=$1"}
	args := []any{childID}

	if activeOnly {
		args = append(args, domain.MedicationStatusActive)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY start_date DESC`,
		base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MedicationRecord
	for rows.Next() {
		var record domain.MedicationRecord
		if err := scanMedication(rows, &record); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

func scanMedication(row pgx.Row, record *domain.MedicationRecord) error {
	return row.Scan(
		&record.ID,
		&record.ChildID,
		&record.DMDCode,
		&record.Name,
		&record.Dose,
		&record.Route,
		&record.Frequency,
		&record.Prescriber,
		&record.StartDate,
		&record.EndDate,
		&record.Status,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
}
