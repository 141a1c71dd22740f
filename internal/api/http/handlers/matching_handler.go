package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/carenotes/internal/api/dto"
	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/repository"
	"github.com/spec-kit/carenotes/internal/service"
	apperrors "github.com/spec-kit/carenotes/pkg/util"
)

// MatchingHandler manages placement request and matching endpoints.
type MatchingHandler struct {
	service *service.MatchingService
}

// NewMatchingHandler constructs handler.
func NewMatchingHandler(matchingService *service.MatchingService) *MatchingHandler {
	return &MatchingHandler{service: matchingService}
}

// CreateRequest POST /placement-requests.
func (h *MatchingHandler) CreateRequest(c *fiber.Ctx) error {
	var req dto.CreatePlacementRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ChildID == "" {
		return apperrors.NewValidationError("child_id required", nil)
	}
	request, err := h.service.CreateRequest(c.Context(), service.PlacementRequestInput{
		ChildID:             req.ChildID,
		RequestedType:       req.RequestedType,
		Urgency:             req.Urgency,
		PreferredLocality:   req.PreferredLocality,
		MaxWeeklyFeePence:   req.MaxWeeklyFeePence,
		RequiredSpecialisms: req.RequiredSpecialisms,
		Notes:               req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": requestResponse(request)})
}

// GetRequest GET /placement-requests/:id.
func (h *MatchingHandler) GetRequest(c *fiber.Ctx) error {
	request, err := h.service.GetRequest(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(request)})
}

// ListRequests GET /placement-requests.
func (h *MatchingHandler) ListRequests(c *fiber.Ctx) error {
	filter := repository.PlacementRequestFilter{
		Limit:  queryInt(c, "limit", 20),
		Offset: queryInt(c, "offset", 0),
	}
	if childID := c.Query("child_id"); childID != "" {
		filter.ChildID = &childID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.RequestStatus(strings.TrimSpace(part)))
		}
	}
	requests, err := h.service.ListRequests(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.PlacementRequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, requestResponse(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CloseRequest POST /placement-requests/:id/close.
func (h *MatchingHandler) CloseRequest(c *fiber.Ctx) error {
	request, err := h.service.CloseRequest(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(request)})
}

// FindMatches GET /placement-requests/:id/matches.
func (h *MatchingHandler) FindMatches(c *fiber.Ctx) error {
	matches, err := h.service.FindSuitablePlacements(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.MatchResultResponse{
		RequestID: c.Params("id"),
		Matches:   matches,
	}})
}

func requestResponse(r *domain.PlacementRequest) dto.PlacementRequestResponse {
	return dto.PlacementRequestResponse{
		ID:                  r.ID,
		ChildID:             r.ChildID,
		RequestedType:       r.RequestedType,
		Urgency:             r.Urgency,
		PreferredLocality:   r.PreferredLocality,
		MaxWeeklyFeePence:   r.MaxWeeklyFeePence,
		RequiredSpecialisms: r.RequiredSpecialisms,
		Notes:               r.Notes,
		Status:              r.Status,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}
