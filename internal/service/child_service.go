package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/repository"
	apperrors "github.com/spec-kit/carenotes/pkg/util"
)

// ChildService manages child profiles.
type ChildService struct {
	children repository.ChildRepository
}

// ChildCreateInput describes profile creation payload.
type ChildCreateInput struct {
	FirstName      string
	LastName       string
	DateOfBirth    time.Time
	Gender         domain.Gender
	LegalStatus    domain.LegalStatus
	LocalAuthority string
	IROName        string
	CulturalNeeds  []string
	ReligiousNeeds []string
	MedicalNeeds   domain.MedicalNeedsLevel
	BehavioralRisk domain.BehavioralRisk
	SENSupport     bool
	WheelchairUser bool
}

// ChildUpdateInput carries optional profile updates.
type ChildUpdateInput struct {
	FirstName      *string
	LastName       *string
	LegalStatus    *domain.LegalStatus
	Status         *domain.ChildStatus
	LocalAuthority *string
	IROName        *string
	CulturalNeeds  []string
	ReligiousNeeds []string
	MedicalNeeds   *domain.MedicalNeedsLevel
	BehavioralRisk *domain.BehavioralRisk
	SENSupport     *bool
	WheelchairUser *bool
}

// NewChildService constructs the service.
func NewChildService(children repository.ChildRepository) *ChildService {
	return &ChildService{children: children}
}

// CreateChild registers a child profile in REFERRED status with a generated
// reference code.
func (s *ChildService) CreateChild(ctx context.Context, input ChildCreateInput) (*domain.Child, error) {
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, apperrors.NewValidationError("first and last name required", nil)
	}
	if input.DateOfBirth.IsZero() || input.DateOfBirth.After(time.Now()) {
		return nil, apperrors.NewValidationError("date of birth must be in the past", nil)
	}
	if strings.TrimSpace(input.LocalAuthority) == "" {
		return nil, apperrors.NewValidationError("local authority required", nil)
	}

	child := &domain.Child{
		ReferenceCode:  generateChildReference(),
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		DateOfBirth:    input.DateOfBirth,
		Gender:         input.Gender,
		LegalStatus:    input.LegalStatus,
		Status:         domain.ChildStatusReferred,
		LocalAuthority: strings.TrimSpace(input.LocalAuthority),
		IROName:        strings.TrimSpace(input.IROName),
		CulturalNeeds:  input.CulturalNeeds,
		ReligiousNeeds: input.ReligiousNeeds,
		MedicalNeeds:   input.MedicalNeeds,
		BehavioralRisk: input.BehavioralRisk,
		SENSupport:     input.SENSupport,
		WheelchairUser: input.WheelchairUser,
	}
	if child.MedicalNeeds == "" {
		child.MedicalNeeds = domain.MedicalNeedsNone
	}
	if child.BehavioralRisk == "" {
		child.BehavioralRisk = domain.BehavioralRiskLow
	}
	if err := s.children.Create(ctx, child); err != nil {
		return nil, apperrors.MapError(err)
	}
	return child, nil
}

// UpdateChild applies a partial profile update.
func (s *ChildService) UpdateChild(ctx context.Context, childID string, input ChildUpdateInput) (*domain.Child, error) {
	child, err := s.GetChild(ctx, childID)
	if err != nil {
		return nil, err
	}
	if input.FirstName != nil {
		child.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		child.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.LegalStatus != nil {
		child.LegalStatus = *input.LegalStatus
	}
	if input.Status != nil {
		child.Status = *input.Status
	}
	if input.LocalAuthority != nil {
		child.LocalAuthority = strings.TrimSpace(*input.LocalAuthority)
	}
	if input.IROName != nil {
		child.IROName = strings.TrimSpace(*input.IROName)
	}
	if input.CulturalNeeds != nil {
		child.CulturalNeeds = input.CulturalNeeds
	}
	if input.ReligiousNeeds != nil {
		child.ReligiousNeeds = input.ReligiousNeeds
	}
	if input.MedicalNeeds != nil {
		child.MedicalNeeds = *input.MedicalNeeds
	}
	if input.BehavioralRisk != nil {
		child.BehavioralRisk = *input.BehavioralRisk
	}
	if input.SENSupport != nil {
		child.SENSupport = *input.SENSupport
	}
	if input.WheelchairUser != nil {
		child.WheelchairUser = *input.WheelchairUser
	}
	if err := s.children.Update(ctx, child); err != nil {
		return nil, apperrors.MapError(err)
	}
	return child, nil
}

// GetChild fetches one profile by id.
func (s *ChildService) GetChild(ctx context.Context, childID string) (*domain.Child, error) {
	child, err := s.children.GetByID(ctx, childID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("child", map[string]any{"child_id": childID})
		}
		return nil, apperrors.MapError(err)
	}
	return child, nil
}

// GetChildByReference fetches one profile by reference code.
func (s *ChildService) GetChildByReference(ctx context.Context, reference string) (*domain.Child, error) {
	child, err := s.children.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("child", map[string]any{"reference": reference})
		}
		return nil, apperrors.MapError(err)
	}
	return child, nil
}

// ListChildren returns profiles matching the filter.
func (s *ChildService) ListChildren(ctx context.Context, filter repository.ChildFilter) ([]domain.Child, error) {
	children, err := s.children.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return children, nil
}

func generateChildReference() string {
	return fmt.Sprintf("CH-%s", strings.ToUpper(uuid.NewString()[:8]))
}
