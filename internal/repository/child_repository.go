package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/carenotes/internal/domain"
)

// ChildFilter captures child listing parameters.
type ChildFilter struct {
	Status         *domain.ChildStatus
	LocalAuthority *string
	SearchTerm     *string
	Limit          int
	Offset         int
}

// ChildRepository encapsulates child profile persistence.
type ChildRepository interface {
	Create(ctx context.Context, child *domain.Child) error
	Update(ctx context.Context, child *domain.Child) error
	GetByID(ctx context.Context, id string) (*domain.Child, error)
	GetByReference(ctx context.Context, reference string) (*domain.Child, error)
	List(ctx context.Context, filter ChildFilter) ([]domain.Child, error)
}

type childRepository struct {
	pool *pgxpool.Pool
}

// NewChildRepository instantiates repository.
func NewChildRepository(pool *pgxpool.Pool) ChildRepository {
	return &childRepository{pool: pool}
}

const childColumns = `id, reference_code, first_name, last_name, date_of_birth, gender,
               legal_status, status, local_authority, iro_name, cultural_needs, religious_needs,
               medical_needs, behavioral_risk, sen_support, wheelchair_user, created_at, updated_at`

func (r *childRepository) Create(ctx context.Context, child *domain.Child) error {
	const query = `
        INSERT INTO children (reference_code, first_name, last_name, date_of_birth, gender,
            legal_status, status, local_authority, iro_name, cultural_needs, religious_needs,
            medical_needs, behavioral_risk, sen_support, wheelchair_user)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		child.ReferenceCode,
		child.FirstName,
		child.LastName,
		child.DateOfBirth,
		child.Gender,
		child.LegalStatus,
		child.Status,
		child.LocalAuthority,
		child.IROName,
		child.CulturalNeeds,
		child.ReligiousNeeds,
		child.MedicalNeeds,
		child.BehavioralRisk,
		child.SENSupport,
		child.WheelchairUser,
	).Scan(&child.ID, &child.CreatedAt, &child.UpdatedAt)
}

func (r *childRepository) Update(ctx context.Context, child *domain.Child) error {
	const query = `
        UPDATE children SET first_name=$1, last_name=$2, date_of_birth=$3, gender=$4,
            legal_status=$5, status=$6, local_authority=$7, iro_name=$8, cultural_needs=$9,
            religious_needs=$10, medical_needs=$11, behavioral_risk=$12, sen_support=$13,
            wheelchair_user=$14, updated_at=NOW()
        WHERE id=$15`
	cmd, err := r.pool.Exec(ctx, query,
		child.FirstName,
		child.LastName,
		child.DateOfBirth,
		child.Gender,
		child.LegalStatus,
		child.Status,
		child.LocalAuthority,
		child.IROName,
		child.CulturalNeeds,
		child.ReligiousNeeds,
		child.MedicalNeeds,
		child.BehavioralRisk,
		child.SENSupport,
		child.WheelchairUser,
		child.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *childRepository) GetByID(ctx context.Context, id string) (*domain.Child, error) {
	query := fmt.Sprintf(`SELECT %s FROM children WHERE id=$1`, childColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *childRepository) GetByReference(ctx context.Context, reference string) (*domain.Child, error) {
	query := fmt.Sprintf(`SELECT %s FROM children WHERE reference_code=$1`, childColumns)
	return r.fetchSingle(ctx, query, reference)
}

func (r *childRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Child, error) {
	var child domain.Child
	if err := scanChild(r.pool.QueryRow(ctx, query, arg), &child); err != nil {
		return nil, err
	}
	return &child, nil
}

func (r *childRepository) List(ctx context.Context, filter ChildFilter) ([]domain.Child, error) {
	base := fmt.Sprintf(`SELECT %s FROM children`, childColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.LocalAuthority != nil {
		args = append(args, *filter.LocalAuthority)
		clauses = append(clauses, fmt.Sprintf("local_authority=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(first_name) LIKE %s OR LOWER(last_name) LIKE %s OR LOWER(reference_code) LIKE %s)", placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY last_name ASC, first_name ASC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Child
	for rows.Next() {
		var child domain.Child
		if err := scanChild(rows, &child); err != nil {
			return nil, err
		}
		result = append(result, child)
	}
	return result, rows.Err()
}

func scanChild(row pgx.Row, child *domain.Child) error {
	return row.Scan(
		&child.ID,
		&child.ReferenceCode,
		&child.FirstName,
		&child.LastName,
		&child.DateOfBirth,
		&child.Gender,
		&child.LegalStatus,
		&child.Status,
		&child.LocalAuthority,
		&child.IROName,
		&child.CulturalNeeds,
		&child.ReligiousNeeds,
		&child.MedicalNeeds,
		&child.BehavioralRisk,
		&child.SENSupport,
		&child.WheelchairUser,
		&child.CreatedAt,
		&child.UpdatedAt,
	)
}
