package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/carenotes/internal/api/dto"
	"github.com/spec-kit/carenotes/internal/auth"
	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/repository"
	"github.com/spec-kit/carenotes/internal/service"
	apperrors "github.com/spec-kit/carenotes/pkg/util"
)

// PlacementsHandler manages placement lifecycle endpoints.
type PlacementsHandler struct {
	service *service.PlacementService
}

// NewPlacementsHandler constructs handler.
func NewPlacementsHandler(placementService *service.PlacementService) *PlacementsHandler {
	return &PlacementsHandler{service: placementService}
}

// CreatePlacement POST /placements.
func (h *PlacementsHandler) CreatePlacement(c *fiber.Ctx) error {
	var req dto.CreatePlacementRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ChildID == "" || req.OrganizationID == "" {
		return apperrors.NewValidationError("child_id and organization_id required", nil)
	}
	placement, err := h.service.CreatePlacement(c.Context(), actorID(c), service.PlacementCreateInput{
		ChildID:         req.ChildID,
		OrganizationID:  req.OrganizationID,
		RequestID:       req.RequestID,
		Type:            req.Type,
		StartDate:       req.StartDate,
		ExpectedEndDate: req.ExpectedEndDate,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": placementResponse(placement)})
}

// ConfirmArrival POST /placements/:id/confirm-arrival.
func (h *PlacementsHandler) ConfirmArrival(c *fiber.Ctx) error {
	placement, err := h.service.ConfirmArrival(c.Context(), actorID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": placementResponse(placement)})
}

// EndPlacement POST /placements/:id/end.
func (h *PlacementsHandler) EndPlacement(c *fiber.Ctx) error {
	var req dto.EndPlacementRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	placement, err := h.service.EndPlacement(c.Context(), actorID(c), c.Params("id"), req.Reason, req.Emergency)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": placementResponse(placement)})
}

// GetPlacement GET /placements/:id.
func (h *PlacementsHandler) GetPlacement(c *fiber.Ctx) error {
	placement, err := h.service.GetPlacement(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": placementResponse(placement)})
}

// ListPlacements GET /placements.
func (h *PlacementsHandler) ListPlacements(c *fiber.Ctx) error {
	filter := repository.PlacementFilter{
		Limit:  queryInt(c, "limit", 20),
		Offset: queryInt(c, "offset", 0),
	}
	if childID := c.Query("child_id"); childID != "" {
		filter.ChildID = &childID
	}
	if orgID := c.Query("organization_id"); orgID != "" {
		filter.OrganizationID = &orgID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.PlacementStatus(strings.TrimSpace(part)))
		}
	}
	placements, err := h.service.ListPlacements(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.PlacementResponse, 0, len(placements))
	for i := range placements {
		items = append(items, placementResponse(&placements[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddFee POST /placements/:id/fees.
func (h *PlacementsHandler) AddFee(c *fiber.Ctx) error {
	var req dto.AddFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	fee, err := h.service.AddFee(c.Context(), c.Params("id"), req.FeeType, req.Label, req.AmountPence)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": feeResponse(fee)})
}

// WeeklyCost GET /placements/:id/weekly-cost.
func (h *PlacementsHandler) WeeklyCost(c *fiber.Ctx) error {
	cost, err := h.service.WeeklyCost(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.WeeklyCostResponse{
		PlacementID:     c.Params("id"),
		WeeklyCostPence: cost,
	}})
}

// ScheduleReview POST /placements/:id/reviews.
func (h *PlacementsHandler) ScheduleReview(c *fiber.Ctx) error {
	var req dto.ScheduleReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	review, err := h.service.ScheduleReview(c.Context(), c.Params("id"), req.ReviewType, req.DueDate)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": reviewResponse(review)})
}

// ListReviews GET /placements/:id/reviews.
func (h *PlacementsHandler) ListReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListReviews(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, reviewResponse(&reviews[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CompleteReview POST /reviews/:id/complete.
func (h *PlacementsHandler) CompleteReview(c *fiber.Ctx) error {
	var req dto.CompleteReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	review, err := h.service.CompleteReview(c.Context(), c.Params("id"), req.OutcomeNotes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reviewResponse(review)})
}

// ListOverdueReviews GET /reviews/overdue.
func (h *PlacementsHandler) ListOverdueReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListOverdueReviews(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, reviewResponse(&reviews[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateAgreement POST /placements/:id/agreements.
func (h *PlacementsHandler) CreateAgreement(c *fiber.Ctx) error {
	var req dto.CreateAgreementRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	agreement, err := h.service.CreateAgreement(c.Context(), c.Params("id"), req.AgreementType)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": agreementResponse(agreement)})
}

// SignAgreement POST /agreements/:id/sign.
func (h *PlacementsHandler) SignAgreement(c *fiber.Ctx) error {
	var req dto.SignAgreementRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	agreement, err := h.service.SignAgreement(c.Context(), c.Params("id"), req.ByAuthority)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": agreementResponse(agreement)})
}

// ListAgreements GET /placements/:id/agreements.
func (h *PlacementsHandler) ListAgreements(c *fiber.Ctx) error {
	agreements, err := h.service.ListAgreements(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.AgreementResponse, 0, len(agreements))
	for i := range agreements {
		items = append(items, agreementResponse(&agreements[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func placementResponse(p *domain.Placement) dto.PlacementResponse {
	return dto.PlacementResponse{
		ID:                 p.ID,
		ReferenceKey:       p.ReferenceKey,
		ChildID:            p.ChildID,
		OrganizationID:     p.OrganizationID,
		Status:             p.Status,
		Type:               p.Type,
		StartDate:          p.StartDate,
		ExpectedEndDate:    p.ExpectedEndDate,
		ActualEndDate:      p.ActualEndDate,
		EndReason:          p.EndReason,
		BaseWeeklyFeePence: p.BaseWeeklyFeePence,
		DurationDays:       p.DurationDays(),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func feeResponse(f *domain.PlacementFee) dto.PlacementFeeResponse {
	return dto.PlacementFeeResponse{
		ID:          f.ID,
		PlacementID: f.PlacementID,
		FeeType:     f.FeeType,
		Label:       f.Label,
		AmountPence: f.AmountPence,
		CreatedAt:   f.CreatedAt,
	}
}

func reviewResponse(r *domain.PlacementReview) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:           r.ID,
		PlacementID:  r.PlacementID,
		ReviewType:   r.ReviewType,
		DueDate:      r.DueDate,
		CompletedAt:  r.CompletedAt,
		OutcomeNotes: r.OutcomeNotes,
		Overdue:      r.IsOverdue(time.Now()),
	}
}

func agreementResponse(a *domain.PlacementAgreement) dto.AgreementResponse {
	return dto.AgreementResponse{
		ID:                a.ID,
		PlacementID:       a.PlacementID,
		AgreementType:     a.AgreementType,
		Status:            a.Status,
		SignedByAuthority: a.SignedByAuthority,
		AuthoritySignedAt: a.AuthoritySignedAt,
		SignedByProvider:  a.SignedByProvider,
		ProviderSignedAt:  a.ProviderSignedAt,
	}
}

func actorID(c *fiber.Ctx) string {
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Staff != nil {
		return principal.Staff.ID
	}
	return ""
}
