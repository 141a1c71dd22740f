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
	"github.com/spec-kit/carenotes/internal/events"
	"github.com/spec-kit/carenotes/internal/repository"
	apperrors "github.com/spec-kit/carenotes/pkg/util"
)

// PlacementService coordinates the placement lifecycle, fees, reviews and
// agreements.
type PlacementService struct {
	placements repository.PlacementRepository
	fees       repository.PlacementFeeRepository
	reviews    repository.PlacementReviewRepository
	agreements repository.PlacementAgreementRepository
	requests   repository.PlacementRequestRepository
	children   repository.ChildRepository
	orgs       repository.OrganizationRepository
	dispatcher events.Dispatcher
}

// PlacementDependencies bundles repositories for the placement service.
type PlacementDependencies struct {
	PlacementRepo repository.PlacementRepository
	FeeRepo       repository.PlacementFeeRepository
	ReviewRepo    repository.PlacementReviewRepository
	AgreementRepo repository.PlacementAgreementRepository
	RequestRepo   repository.PlacementRequestRepository
	ChildRepo     repository.ChildRepository
	OrgRepo       repository.OrganizationRepository
	Dispatcher    events.Dispatcher
}

// PlacementCreateInput describes placement creation payload.
type PlacementCreateInput struct {
	ChildID         string
	OrganizationID  string
	RequestID       *string
	Type            domain.PlacementType
	StartDate       time.Time
	ExpectedEndDate *time.Time
}

// NewPlacementService constructs the service.
func NewPlacementService(deps PlacementDependencies) *PlacementService {
	return &PlacementService{
		placements: deps.PlacementRepo,
		fees:       deps.FeeRepo,
		reviews:    deps.ReviewRepo,
		agreements: deps.AgreementRepo,
		requests:   deps.RequestRepo,
		children:   deps.ChildRepo,
		orgs:       deps.OrgRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreatePlacement places a child with an organization in PENDING_ARRIVAL
// status and schedules the initial statutory review. At most one open
// placement may exist per child.
func (s *PlacementService) CreatePlacement(ctx context.Context, actorID string, input PlacementCreateInput) (*domain.Placement, error) {
	child, err := s.children.GetByID(ctx, input.ChildID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("child", map[string]any{"child_id": input.ChildID})
		}
		return nil, apperrors.MapError(err)
	}
	org, err := s.orgs.GetByID(ctx, input.OrganizationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("organization", map[string]any{"organization_id": input.OrganizationID})
		}
		return nil, apperrors.MapError(err)
	}
	if !org.Active {
		return nil, apperrors.NewConflict("organization inactive", map[string]any{"organization_id": org.ID})
	}
	if org.FreeBeds() <= 0 {
		return nil, apperrors.NewConflict("organization at full capacity", map[string]any{"organization_id": org.ID})
	}

	if existing, err := s.placements.GetOpenByChild(ctx, child.ID); err == nil && existing != nil {
		return nil, apperrors.NewConflict("child already has an open placement", map[string]any{
			"placement_id": existing.ID,
		})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	placement := &domain.Placement{
		ReferenceKey:       generatePlacementKey(),
		ChildID:            child.ID,
		OrganizationID:     org.ID,
		Status:             domain.PlacementStatusPendingArrival,
		Type:               input.Type,
		StartDate:          input.StartDate,
		ExpectedEndDate:    input.ExpectedEndDate,
		BaseWeeklyFeePence: org.BaseWeeklyFeePence,
	}
	if placement.Type == "" {
		placement.Type = domain.PlacementTypePlanned
	}
	if placement.StartDate.IsZero() {
		placement.StartDate = time.Now()
	}

	if err := s.placements.Create(ctx, placement); err != nil {
		return nil, apperrors.MapError(err)
	}

	initial := &domain.PlacementReview{
		PlacementID: placement.ID,
		ReviewType:  domain.ReviewTypeInitial,
		DueDate:     placement.StartDate.AddDate(0, 0, domain.InitialReviewAfterDays),
	}
	if err := s.reviews.Create(ctx, initial); err != nil {
		return nil, apperrors.MapError(err)
	}

	if input.RequestID != nil {
		if request, err := s.requests.GetByID(ctx, *input.RequestID); err == nil {
			request.Status = domain.RequestStatusMatched
			if err := s.requests.Update(ctx, request); err != nil {
				return nil, apperrors.MapError(err)
			}
		}
	}

	child.Status = domain.ChildStatusPlaced
	if err := s.children.Update(ctx, child); err != nil {
		return nil, apperrors.MapError(err)
	}

	org.CurrentOccupancy++
	if err := s.orgs.Update(ctx, org); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actorID, events.EventPlacementCreated, placement.ID, events.PlacementCreatedPayload{
		ChildID:        placement.ChildID,
		OrganizationID: placement.OrganizationID,
		Type:           placement.Type,
		Status:         placement.Status,
	})
	return placement, nil
}

// ConfirmArrival moves a placement from PENDING_ARRIVAL to ACTIVE.
func (s *PlacementService) ConfirmArrival(ctx context.Context, actorID, placementID string) (*domain.Placement, error) {
	placement, err := s.getPlacement(ctx, placementID)
	if err != nil {
		return nil, err
	}
	if placement.Status != domain.PlacementStatusPendingArrival {
		return nil, apperrors.NewConflict("placement not awaiting arrival", map[string]any{
			"status": placement.Status,
		})
	}
	old := placement.Status
	placement.Status = domain.PlacementStatusActive
	if err := s.placements.Update(ctx, placement); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, actorID, events.EventPlacementStatusChanged, placement.ID, events.PlacementStatusChangedPayload{
		OldStatus: old,
		NewStatus: placement.Status,
	})
	return placement, nil
}

// EndPlacement terminates an ACTIVE placement. A planned ending records
// ENDED; an emergency ending records BREAKDOWN and requires a reason.
func (s *PlacementService) EndPlacement(ctx context.Context, actorID, placementID, reason string, emergency bool) (*domain.Placement, error) {
	placement, err := s.getPlacement(ctx, placementID)
	if err != nil {
		return nil, err
	}
	if placement.Status != domain.PlacementStatusActive {
		return nil, apperrors.NewConflict("placement not active", map[string]any{
			"status": placement.Status,
		})
	}
	reason = strings.TrimSpace(reason)
	if emergency && reason == "" {
		return nil, apperrors.NewValidationError("reason required for emergency ending", nil)
	}

	old := placement.Status
	now := time.Now()
	placement.ActualEndDate = &now
	if emergency {
		placement.Status = domain.PlacementStatusBreakdown
	} else {
		placement.Status = domain.PlacementStatusEnded
	}
	if reason != "" {
		placement.EndReason = &reason
	}
	if err := s.placements.Update(ctx, placement); err != nil {
		return nil, apperrors.MapError(err)
	}

	if child, err := s.children.GetByID(ctx, placement.ChildID); err == nil {
		child.Status = domain.ChildStatusLookedAfter
		if err := s.children.Update(ctx, child); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	if org, err := s.orgs.GetByID(ctx, placement.OrganizationID); err == nil {
		if org.CurrentOccupancy > 0 {
			org.CurrentOccupancy--
		}
		if err := s.orgs.Update(ctx, org); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	s.publish(ctx, actorID, events.EventPlacementStatusChanged, placement.ID, events.PlacementStatusChangedPayload{
		OldStatus: old,
		NewStatus: placement.Status,
		Reason:    reason,
	})
	return placement, nil
}

// GetPlacement fetches one placement.
func (s *PlacementService) GetPlacement(ctx context.Context, placementID string) (*domain.Placement, error) {
	return s.getPlacement(ctx, placementID)
}

// ListPlacements returns placements matching the filter.
func (s *PlacementService) ListPlacements(ctx context.Context, filter repository.PlacementFilter) ([]domain.Placement, error) {
	placements, err := s.placements.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return placements, nil
}

// AddFee attaches an additional charge to a placement.
func (s *PlacementService) AddFee(ctx context.Context, placementID string, feeType domain.FeeType, label string, amountPence int64) (*domain.PlacementFee, error) {
	placement, err := s.getPlacement(ctx, placementID)
	if err != nil {
		return nil, err
	}
	if placement.IsTerminal() {
		return nil, apperrors.NewConflict("placement already ended", map[string]any{"status": placement.Status})
	}
	if amountPence <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", nil)
	}
	if feeType != domain.FeeTypeWeekly && feeType != domain.FeeTypeOneOff {
		return nil, apperrors.NewValidationError("invalid fee type", nil)
	}
	fee := &domain.PlacementFee{
		PlacementID: placement.ID,
		FeeType:     feeType,
		Label:       strings.TrimSpace(label),
		AmountPence: amountPence,
	}
	if err := s.fees.Create(ctx, fee); err != nil {
		return nil, apperrors.MapError(err)
	}
	return fee, nil
}

// WeeklyCost computes the base fee plus all WEEKLY tagged fees.
func (s *PlacementService) WeeklyCost(ctx context.Context, placementID string) (int64, error) {
	placement, err := s.getPlacement(ctx, placementID)
	if err != nil {
		return 0, err
	}
	fees, err := s.fees.ListByPlacement(ctx, placement.ID)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return domain.WeeklyCostPence(placement, fees), nil
}

// CompleteReview marks a review done and schedules the next statutory one
// while the placement remains open.
func (s *PlacementService) CompleteReview(ctx context.Context, reviewID, outcomeNotes string) (*domain.PlacementReview, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("placement review", map[string]any{"review_id": reviewID})
		}
		return nil, apperrors.MapError(err)
	}
	if review.CompletedAt != nil {
		return nil, apperrors.NewConflict("review already completed", nil)
	}
	now := time.Now()
	review.CompletedAt = &now
	if notes := strings.TrimSpace(outcomeNotes); notes != "" {
		review.OutcomeNotes = &notes
	}
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, apperrors.MapError(err)
	}

	placement, err := s.getPlacement(ctx, review.PlacementID)
	if err != nil {
		return nil, err
	}
	if !placement.IsTerminal() {
		next := &domain.PlacementReview{
			PlacementID: placement.ID,
			ReviewType:  domain.ReviewTypeStatutory,
			DueDate:     now.AddDate(0, 0, domain.SubsequentReviewAfterDays),
		}
		if err := s.reviews.Create(ctx, next); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	return review, nil
}

// ScheduleReview adds an ad hoc review, typically EMERGENCY.
func (s *PlacementService) ScheduleReview(ctx context.Context, placementID string, reviewType domain.ReviewType, dueDate time.Time) (*domain.PlacementReview, error) {
	placement, err := s.getPlacement(ctx, placementID)
	if err != nil {
		return nil, err
	}
	if placement.IsTerminal() {
		return nil, apperrors.NewConflict("placement already ended", map[string]any{"status": placement.Status})
	}
	review := &domain.PlacementReview{
		PlacementID: placement.ID,
		ReviewType:  reviewType,
		DueDate:     dueDate,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, apperrors.MapError(err)
	}
	return review, nil
}

// ListReviews returns reviews for a placement.
func (s *PlacementService) ListReviews(ctx context.Context, placementID string) ([]domain.PlacementReview, error) {
	reviews, err := s.reviews.ListByPlacement(ctx, placementID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reviews, nil
}

// ListOverdueReviews returns all incomplete reviews past their due date.
func (s *PlacementService) ListOverdueReviews(ctx context.Context) ([]domain.PlacementReview, error) {
	reviews, err := s.reviews.ListOverdue(ctx, time.Now())
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reviews, nil
}

// CreateAgreement opens a DRAFT agreement for a placement.
func (s *PlacementService) CreateAgreement(ctx context.Context, placementID, agreementType string) (*domain.PlacementAgreement, error) {
	placement, err := s.getPlacement(ctx, placementID)
	if err != nil {
		return nil, err
	}
	agreement := &domain.PlacementAgreement{
		PlacementID:   placement.ID,
		AgreementType: strings.TrimSpace(agreementType),
		Status:        domain.AgreementStatusDraft,
	}
	if agreement.AgreementType == "" {
		return nil, apperrors.NewValidationError("agreement type required", nil)
	}
	if err := s.agreements.Create(ctx, agreement); err != nil {
		return nil, apperrors.MapError(err)
	}
	return agreement, nil
}

// SignAgreement records a signature from the authority or the provider and
// advances the agreement status.
func (s *PlacementService) SignAgreement(ctx context.Context, agreementID string, byAuthority bool) (*domain.PlacementAgreement, error) {
	agreement, err := s.agreements.GetByID(ctx, agreementID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("placement agreement", map[string]any{"agreement_id": agreementID})
		}
		return nil, apperrors.MapError(err)
	}
	now := time.Now()
	if byAuthority {
		if agreement.SignedByAuthority {
			return nil, apperrors.NewConflict("authority already signed", nil)
		}
		agreement.SignedByAuthority = true
		agreement.AuthoritySignedAt = &now
	} else {
		if agreement.SignedByProvider {
			return nil, apperrors.NewConflict("provider already signed", nil)
		}
		agreement.SignedByProvider = true
		agreement.ProviderSignedAt = &now
	}
	if agreement.SignedByAuthority && agreement.SignedByProvider {
		agreement.Status = domain.AgreementStatusComplete
	} else {
		agreement.Status = domain.AgreementStatusPartiallySigned
	}
	if err := s.agreements.Update(ctx, agreement); err != nil {
		return nil, apperrors.MapError(err)
	}
	return agreement, nil
}

// ListAgreements returns agreements for a placement.
func (s *PlacementService) ListAgreements(ctx context.Context, placementID string) ([]domain.PlacementAgreement, error) {
	agreements, err := s.agreements.ListByPlacement(ctx, placementID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return agreements, nil
}

func (s *PlacementService) getPlacement(ctx context.Context, placementID string) (*domain.Placement, error) {
	placement, err := s.placements.GetByID(ctx, placementID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("placement", map[string]any{"placement_id": placementID})
		}
		return nil, apperrors.MapError(err)
	}
	return placement, nil
}

func (s *PlacementService) publish(ctx context.Context, actorID string, eventType events.EventType, subjectID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	actor := events.Actor{System: true}
	if actorID != "" {
		actor = events.Actor{StaffID: &actorID}
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func generatePlacementKey() string {
	return fmt.Sprintf("PL-%s", strings.ToUpper(uuid.NewString()[:8]))
}
