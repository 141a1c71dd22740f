package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/carenotes/internal/cache"
	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/events"
	"github.com/spec-kit/carenotes/internal/observability"
	"github.com/spec-kit/carenotes/internal/repository"
	apperrors "github.com/spec-kit/carenotes/pkg/util"
)

// Sub-score caps. The raw total normalizes against their sum.
const (
	capCapacity          = 20.0
	capLocation          = 10.0
	capSpecialisms       = 15.0
	capAge               = 10.0
	capGender            = 5.0
	capCulturalReligious = 10.0
	capMedical           = 10.0
	capBehavioral        = 10.0
	capEducation         = 5.0
	capAccessibility     = 5.0
)

const maxRawTotal = capCapacity + capLocation + capSpecialisms + capAge +
	capGender + capCulturalReligious + capMedical + capBehavioral +
	capEducation + capAccessibility

// stubDistanceKm is the constant distance estimate used until a geocoding
// provider is integrated. Postcode pairs are not resolved yet.
const stubDistanceKm = 50.0

// MatchingService ranks candidate organizations for a placement request.
type MatchingService struct {
	requests   repository.PlacementRequestRepository
	children   repository.ChildRepository
	orgs       repository.OrganizationRepository
	matches    *cache.MatchCache
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// MatchingDependencies bundles requirements for the matching service.
type MatchingDependencies struct {
	RequestRepo repository.PlacementRequestRepository
	ChildRepo   repository.ChildRepository
	OrgRepo     repository.OrganizationRepository
	MatchCache  *cache.MatchCache
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// NewMatchingService constructs the service.
func NewMatchingService(deps MatchingDependencies) *MatchingService {
	return &MatchingService{
		requests:   deps.RequestRepo,
		children:   deps.ChildRepo,
		orgs:       deps.OrgRepo,
		matches:    deps.MatchCache,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// PlacementRequestInput describes a matching request payload.
type PlacementRequestInput struct {
	ChildID             string
	RequestedType       domain.PlacementType
	Urgency             domain.RequestUrgency
	PreferredLocality   string
	MaxWeeklyFeePence   *int64
	RequiredSpecialisms []string
	Notes               string
}

// CreateRequest opens a placement request for a child.
func (s *MatchingService) CreateRequest(ctx context.Context, input PlacementRequestInput) (*domain.PlacementRequest, error) {
	if _, err := s.children.GetByID(ctx, input.ChildID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("child", map[string]any{"child_id": input.ChildID})
		}
		return nil, apperrors.MapError(err)
	}
	if input.MaxWeeklyFeePence != nil && *input.MaxWeeklyFeePence <= 0 {
		return nil, apperrors.NewValidationError("max weekly fee must be positive", nil)
	}
	request := &domain.PlacementRequest{
		ChildID:             input.ChildID,
		RequestedType:       input.RequestedType,
		Urgency:             input.Urgency,
		PreferredLocality:   input.PreferredLocality,
		MaxWeeklyFeePence:   input.MaxWeeklyFeePence,
		RequiredSpecialisms: input.RequiredSpecialisms,
		Notes:               input.Notes,
		Status:              domain.RequestStatusOpen,
	}
	if request.RequestedType == "" {
		request.RequestedType = domain.PlacementTypePlanned
	}
	if request.Urgency == "" {
		request.Urgency = domain.UrgencyStandard
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	return request, nil
}

// GetRequest fetches one placement request.
func (s *MatchingService) GetRequest(ctx context.Context, requestID string) (*domain.PlacementRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("placement request", map[string]any{"request_id": requestID})
		}
		return nil, apperrors.MapError(err)
	}
	return request, nil
}

// ListRequests returns requests matching the filter.
func (s *MatchingService) ListRequests(ctx context.Context, filter repository.PlacementRequestFilter) ([]domain.PlacementRequest, error) {
	requests, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// CloseRequest marks a request CLOSED and drops its cached ranking.
func (s *MatchingService) CloseRequest(ctx context.Context, requestID string) (*domain.PlacementRequest, error) {
	request, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status == domain.RequestStatusClosed {
		return nil, apperrors.NewConflict("request already closed", nil)
	}
	request.Status = domain.RequestStatusClosed
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.matches.Invalidate(ctx, request.ID); err != nil {
		s.logger.Warn("match cache invalidate failed", zap.Error(err))
	}
	return request, nil
}

// FindSuitablePlacements scores every active candidate organization against
// the request's child and returns them ordered by descending percentage.
func (s *MatchingService) FindSuitablePlacements(ctx context.Context, requestID string) ([]domain.MatchScore, error) {
	if cached, err := s.matches.Get(ctx, requestID); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("match cache read failed", zap.Error(err))
	}

	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("placement request", map[string]any{"request_id": requestID})
		}
		return nil, apperrors.MapError(err)
	}
	child, err := s.children.GetByID(ctx, request.ChildID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("child", map[string]any{"child_id": request.ChildID})
		}
		return nil, apperrors.MapError(err)
	}

	active := true
	orgs, err := s.orgs.List(ctx, repository.OrganizationFilter{Active: &active, Limit: 1000})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	scores := make([]domain.MatchScore, 0, len(orgs))
	for i := range orgs {
		org := &orgs[i]
		if request.MaxWeeklyFeePence != nil && org.BaseWeeklyFeePence > *request.MaxWeeklyFeePence {
			continue
		}
		scores = append(scores, scoreOrganization(child, request, org))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Percentage > scores[j].Percentage
	})

	s.metrics.RecordMatchRun()
	if err := s.matches.Set(ctx, requestID, scores); err != nil {
		s.logger.Warn("match cache write failed", zap.Error(err))
	}

	s.publishMatched(ctx, request.ID, scores)
	return scores, nil
}

func scoreOrganization(child *domain.Child, request *domain.PlacementRequest, org *domain.CareOrganization) domain.MatchScore {
	score := domain.MatchScore{
		OrganizationID:   org.ID,
		OrganizationName: org.Name,
	}
	hardUnsuitable := false

	// Capacity: a full organization always scores zero here.
	switch free := org.FreeBeds(); {
	case free <= 0:
		score.Scores.Capacity = 0
		score.Concerns = append(score.Concerns, "no beds available")
	case free == 1:
		score.Scores.Capacity = capCapacity * 0.6
		score.Recommendations = append(score.Recommendations, "one bed available")
	default:
		score.Scores.Capacity = capCapacity
		score.Recommendations = append(score.Recommendations, fmt.Sprintf("%d beds available", free))
	}

	// Location: constant estimate until geocoding is integrated.
	score.Scores.Location = locationScore(stubDistanceKm)
	if request.PreferredLocality != "" && org.Locality == request.PreferredLocality {
		score.Recommendations = append(score.Recommendations, "within preferred locality")
	}

	// Specialisms required by the request.
	if len(request.RequiredSpecialisms) == 0 {
		score.Scores.Specialisms = capSpecialisms
	} else {
		covered := countCovered(request.RequiredSpecialisms, org.Specialisms)
		score.Scores.Specialisms = capSpecialisms * float64(covered) / float64(len(request.RequiredSpecialisms))
		if covered < len(request.RequiredSpecialisms) {
			score.Concerns = append(score.Concerns, "missing required specialisms")
		} else {
			score.Recommendations = append(score.Recommendations, "all required specialisms covered")
		}
	}

	// Age: out of range disqualifies the organization outright.
	age := child.Age()
	if age >= org.MinAge && age <= org.MaxAge {
		score.Scores.AgeAppropriate = capAge
	} else {
		score.Scores.AgeAppropriate = 0
		hardUnsuitable = true
		score.Concerns = append(score.Concerns,
			fmt.Sprintf("child age %d outside registered range %d-%d", age, org.MinAge, org.MaxAge))
	}

	// Gender intake.
	if org.AcceptsGender(child.Gender) {
		score.Scores.Gender = capGender
	} else {
		score.Concerns = append(score.Concerns, "gender intake policy does not match")
	}

	// Cultural and religious needs combined.
	needs := append(append([]string{}, child.CulturalNeeds...), child.ReligiousNeeds...)
	if len(needs) == 0 {
		score.Scores.CulturalReligious = capCulturalReligious
	} else {
		caps := append(append([]string{}, org.CulturalCapabilities...), org.ReligiousCapabilities...)
		covered := countCovered(needs, caps)
		score.Scores.CulturalReligious = capCulturalReligious * float64(covered) / float64(len(needs))
		if covered < len(needs) {
			score.Concerns = append(score.Concerns, "cultural or religious needs not fully supported")
		}
	}

	// Medical capability tier versus required level.
	score.Scores.Medical = tierScore(medicalTier(org.MedicalCapability), medicalTier(child.MedicalNeeds), capMedical, 0.4)
	if score.Scores.Medical == 0 && child.MedicalNeeds != domain.MedicalNeedsNone {
		score.Concerns = append(score.Concerns, "medical capability below required level")
	}

	// Behavioral support tier versus risk level.
	score.Scores.Behavioral = tierScore(behavioralTier(org.BehavioralCapability), behavioralTier(child.BehavioralRisk), capBehavioral, 0.5)
	if score.Scores.Behavioral == 0 {
		score.Concerns = append(score.Concerns, "behavioral support below risk level")
	}

	// Educational support.
	switch {
	case child.SENSupport && org.SENSupport:
		score.Scores.Education = capEducation
		score.Recommendations = append(score.Recommendations, "SEN support available")
	case child.SENSupport && !org.SENSupport:
		score.Scores.Education = 0
		score.Concerns = append(score.Concerns, "no SEN support")
	case org.EducationOnSite:
		score.Scores.Education = capEducation
	default:
		score.Scores.Education = capEducation * 0.6
	}

	// Accessibility.
	if child.WheelchairUser && !org.WheelchairAccessible {
		score.Scores.Accessibility = 0
		score.Concerns = append(score.Concerns, "not wheelchair accessible")
	} else {
		score.Scores.Accessibility = capAccessibility
	}

	score.RawTotal = score.Scores.Total()
	score.Percentage = score.RawTotal / maxRawTotal * 100
	if hardUnsuitable {
		score.Suitability = domain.SuitabilityUnsuitable
	} else {
		score.Suitability = domain.SuitabilityForPercentage(score.Percentage)
	}
	return score
}

func locationScore(distanceKm float64) float64 {
	switch {
	case distanceKm <= 10:
		return capLocation
	case distanceKm <= 25:
		return capLocation * 0.75
	case distanceKm <= 50:
		return capLocation * 0.5
	case distanceKm <= 100:
		return capLocation * 0.25
	default:
		return 0
	}
}

// tierScore awards full marks when capability meets or exceeds the
// requirement, a partial award one tier below, and zero otherwise.
func tierScore(capability, required int, full, partial float64) float64 {
	switch {
	case capability >= required:
		return full
	case capability == required-1:
		return full * partial
	default:
		return 0
	}
}

func medicalTier(level domain.MedicalNeedsLevel) int {
	switch level {
	case domain.MedicalNeedsBasic:
		return 1
	case domain.MedicalNeedsNursing:
		return 2
	case domain.MedicalNeedsComplex:
		return 3
	default:
		return 0
	}
}

func behavioralTier(level domain.BehavioralRisk) int {
	switch level {
	case domain.BehavioralRiskMedium:
		return 1
	case domain.BehavioralRiskHigh:
		return 2
	default:
		return 0
	}
}

func countCovered(required, available []string) int {
	availableSet := make(map[string]struct{}, len(available))
	for _, item := range available {
		availableSet[item] = struct{}{}
	}
	covered := 0
	for _, item := range required {
		if _, ok := availableSet[item]; ok {
			covered++
		}
	}
	return covered
}

func (s *MatchingService) publishMatched(ctx context.Context, requestID string, scores []domain.MatchScore) {
	if s.dispatcher == nil {
		return
	}
	payload := events.PlacementMatchedPayload{
		RequestID:      requestID,
		CandidateCount: len(scores),
	}
	if len(scores) > 0 {
		payload.TopPercentage = scores[0].Percentage
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPlacementMatched,
		SubjectID: requestID,
		Actor:     events.Actor{System: true},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
