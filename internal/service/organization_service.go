package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/carenotes/internal/cache"
	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/repository"
	apperrors "github.com/spec-kit/carenotes/pkg/util"
)

// OrganizationService manages care provider records. Every write flushes the
// match cache, since any attribute change can alter scoring.
type OrganizationService struct {
	orgs    repository.OrganizationRepository
	matches *cache.MatchCache
	logger  *zap.Logger
}

// OrganizationInput describes a full provider payload for create and update.
type OrganizationInput struct {
	Name                  string
	Type                  domain.OrganizationType
	RegisteredCapacity    int
	CurrentOccupancy      int
	MinAge                int
	MaxAge                int
	GenderIntake          domain.GenderIntake
	Specialisms           []string
	CulturalCapabilities  []string
	ReligiousCapabilities []string
	MedicalCapability     domain.MedicalNeedsLevel
	BehavioralCapability  domain.BehavioralRisk
	EducationOnSite       bool
	SENSupport            bool
	WheelchairAccessible  bool
	BaseWeeklyFeePence    int64
	Locality              string
	Postcode              string
	OfstedRating          string
	Active                bool
}

// NewOrganizationService constructs the service.
func NewOrganizationService(orgs repository.OrganizationRepository, matches *cache.MatchCache, logger *zap.Logger) *OrganizationService {
	return &OrganizationService{orgs: orgs, matches: matches, logger: logger}
}

// CreateOrganization registers a provider.
func (s *OrganizationService) CreateOrganization(ctx context.Context, input OrganizationInput) (*domain.CareOrganization, error) {
	if err := validateOrganizationInput(input); err != nil {
		return nil, err
	}
	org := organizationFromInput(input)
	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.flushMatches(ctx)
	return org, nil
}

// UpdateOrganization replaces a provider's attributes.
func (s *OrganizationService) UpdateOrganization(ctx context.Context, orgID string, input OrganizationInput) (*domain.CareOrganization, error) {
	if err := validateOrganizationInput(input); err != nil {
		return nil, err
	}
	existing, err := s.GetOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	org := organizationFromInput(input)
	org.ID = existing.ID
	if err := s.orgs.Update(ctx, org); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.flushMatches(ctx)
	return org, nil
}

// DeactivateOrganization takes a provider out of matching without deleting
// its history.
func (s *OrganizationService) DeactivateOrganization(ctx context.Context, orgID string) (*domain.CareOrganization, error) {
	org, err := s.GetOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if !org.Active {
		return nil, apperrors.NewConflict("organization already inactive", nil)
	}
	org.Active = false
	if err := s.orgs.Update(ctx, org); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.flushMatches(ctx)
	return org, nil
}

// GetOrganization fetches one provider.
func (s *OrganizationService) GetOrganization(ctx context.Context, orgID string) (*domain.CareOrganization, error) {
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("organization", map[string]any{"organization_id": orgID})
		}
		return nil, apperrors.MapError(err)
	}
	return org, nil
}

// ListOrganizations returns providers matching the filter.
func (s *OrganizationService) ListOrganizations(ctx context.Context, filter repository.OrganizationFilter) ([]domain.CareOrganization, error) {
	orgs, err := s.orgs.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return orgs, nil
}

func (s *OrganizationService) flushMatches(ctx context.Context) {
	if err := s.matches.InvalidateAll(ctx); err != nil {
		s.logger.Warn("match cache flush failed", zap.Error(err))
	}
}

func validateOrganizationInput(input OrganizationInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	if input.RegisteredCapacity <= 0 {
		return apperrors.NewValidationError("registered capacity must be positive", nil)
	}
	if input.CurrentOccupancy < 0 || input.CurrentOccupancy > input.RegisteredCapacity {
		return apperrors.NewValidationError("occupancy must be between zero and registered capacity", nil)
	}
	if input.MinAge < 0 || input.MaxAge < input.MinAge {
		return apperrors.NewValidationError("age range invalid", nil)
	}
	if input.BaseWeeklyFeePence < 0 {
		return apperrors.NewValidationError("base weekly fee must not be negative", nil)
	}
	return nil
}

func organizationFromInput(input OrganizationInput) *domain.CareOrganization {
	org := &domain.CareOrganization{
		Name:                  strings.TrimSpace(input.Name),
		Type:                  input.Type,
		RegisteredCapacity:    input.RegisteredCapacity,
		CurrentOccupancy:      input.CurrentOccupancy,
		MinAge:                input.MinAge,
		MaxAge:                input.MaxAge,
		GenderIntake:          input.GenderIntake,
		Specialisms:           input.Specialisms,
		CulturalCapabilities:  input.CulturalCapabilities,
		ReligiousCapabilities: input.ReligiousCapabilities,
		MedicalCapability:     input.MedicalCapability,
		BehavioralCapability:  input.BehavioralCapability,
		EducationOnSite:       input.EducationOnSite,
		SENSupport:            input.SENSupport,
		WheelchairAccessible:  input.WheelchairAccessible,
		BaseWeeklyFeePence:    input.BaseWeeklyFeePence,
		Locality:              strings.TrimSpace(input.Locality),
		Postcode:              strings.TrimSpace(input.Postcode),
		OfstedRating:          strings.TrimSpace(input.OfstedRating),
		Active:                input.Active,
	}
	if org.GenderIntake == "" {
		org.GenderIntake = domain.GenderIntakeMixed
	}
	if org.MedicalCapability == "" {
		org.MedicalCapability = domain.MedicalNeedsNone
	}
	if org.BehavioralCapability == "" {
		org.BehavioralCapability = domain.BehavioralRiskLow
	}
	return org
}
