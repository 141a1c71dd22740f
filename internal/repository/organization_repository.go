package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/carenotes/internal/domain"
)

// OrganizationFilter captures listing parameters.
type OrganizationFilter struct {
	Type        *domain.OrganizationType
	Active      *bool
	Locality    *string
	HasFreeBeds bool
	Limit       int
	Offset      int
}

// OrganizationRepository encapsulates care organization persistence.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.CareOrganization) error
	Update(ctx context.Context, org *domain.CareOrganization) error
	GetByID(ctx context.Context, id string) (*domain.CareOrganization, error)
	List(ctx context.Context, filter OrganizationFilter) ([]domain.CareOrganization, error)
}

type organizationRepository struct {
	pool *pgxpool.Pool
}

// NewOrganizationRepository instantiates repository.
func NewOrganizationRepository(pool *pgxpool.Pool) OrganizationRepository {
	return &organizationRepository{pool: pool}
}

const orgColumns = `id, name, org_type, registered_capacity, current_occupancy, min_age, max_age,
               gender_intake, specialisms, cultural_capabilities, religious_capabilities,
               medical_capability, behavioral_capability, education_on_site, sen_support,
               wheelchair_accessible, base_weekly_fee_pence, locality, postcode, ofsted_rating,
               active_flag, created_at, updated_at`

func (r *organizationRepository) Create(ctx context.Context, org *domain.CareOrganization) error {
	const query = `
        INSERT INTO care_organizations (name, org_type, registered_capacity, current_occupancy,
            min_age, max_age, gender_intake, specialisms, cultural_capabilities,
            religious_capabilities, medical_capability, behavioral_capability, education_on_site,
            sen_support, wheelchair_accessible, base_weekly_fee_pence, locality, postcode,
            ofsted_rating, active_flag)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		org.Name,
		org.Type,
		org.RegisteredCapacity,
		org.CurrentOccupancy,
		org.MinAge,
		org.MaxAge,
		org.GenderIntake,
		org.Specialisms,
		org.CulturalCapabilities,
		org.ReligiousCapabilities,
		org.MedicalCapability,
		org.BehavioralCapability,
		org.EducationOnSite,
		org.SENSupport,
		org.WheelchairAccessible,
		org.BaseWeeklyFeePence,
		org.Locality,
		org.Postcode,
		org.OfstedRating,
		org.Active,
	).Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
}

func (r *organizationRepository) Update(ctx context.Context, org *domain.CareOrganization) error {
	const query = `
        UPDATE care_organizations SET name=$1, org_type=$2, registered_capacity=$3,
            current_occupancy=$4, min_age=$5, max_age=$6, gender_intake=$7, specialisms=$8,
            cultural_capabilities=$9, religious_capabilities=$10, medical_capability=$11,
            behavioral_capability=$12, education_on_site=$13, sen_support=$14,
            wheelchair_accessible=$15, base_weekly_fee_pence=$16, locality=$17, postcode=$18,
            ofsted_rating=$19, active_flag=$20, updated_at=NOW()
        WHERE id=$21`
	cmd, err := r.pool.Exec(ctx, query,
		org.Name,
		org.Type,
		org.RegisteredCapacity,
		org.CurrentOccupancy,
		org.MinAge,
		org.MaxAge,
		org.GenderIntake,
		org.Specialisms,
		org.CulturalCapabilities,
		org.ReligiousCapabilities,
		org.MedicalCapability,
		org.BehavioralCapability,
		org.EducationOnSite,
		org.SENSupport,
		org.WheelchairAccessible,
		org.BaseWeeklyFeePence,
		org.Locality,
		org.Postcode,
		org.OfstedRating,
		org.Active,
		org.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*domain.CareOrganization, error) {
	query := fmt.Sprintf(`SELECT %s FROM care_organizations WHERE id=$1`, orgColumns)
	var org domain.CareOrganization
	if err := scanOrganization(r.pool.QueryRow(ctx, query, id), &org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) List(ctx context.Context, filter OrganizationFilter) ([]domain.CareOrganization, error) {
	base := fmt.Sprintf(`SELECT %s FROM care_organizations`, orgColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("org_type=$%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("active_flag=$%d", len(args)))
	}
	if filter.Locality != nil {
		args = append(args, *filter.Locality)
		clauses = append(clauses, fmt.Sprintf("locality=$%d", len(args)))
	}
	if filter.HasFreeBeds {
		clauses = append(clauses, "current_occupancy < registered_capacity")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY name ASC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CareOrganization
	for rows.Next() {
		var org domain.CareOrganization
		if err := scanOrganization(rows, &org); err != nil {
			return nil, err
		}
		result = append(result, org)
	}
	return result, rows.Err()
}

func scanOrganization(row pgx.Row, org *domain.CareOrganization) error {
	return row.Scan(
		&org.ID,
		&org.Name,
		&org.Type,
		&org.RegisteredCapacity,
		&org.CurrentOccupancy,
		&org.MinAge,
		&org.MaxAge,
		&org.GenderIntake,
		&org.Specialisms,
		&org.CulturalCapabilities,
		&org.ReligiousCapabilities,
		&org.MedicalCapability,
		&org.BehavioralCapability,
		&org.EducationOnSite,
		&org.SENSupport,
		&org.WheelchairAccessible,
		&org.BaseWeeklyFeePence,
		&org.Locality,
		&org.Postcode,
		&org.OfstedRating,
		&org.Active,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
}
