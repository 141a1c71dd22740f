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

// ChildrenHandler manages child profile endpoints.
type ChildrenHandler struct {
	service *service.ChildService
}

// NewChildrenHandler constructs handler.
func NewChildrenHandler(childService *service.ChildService) *ChildrenHandler {
	return &ChildrenHandler{service: childService}
}

// CreateChild POST /children.
func (h *ChildrenHandler) CreateChild(c *fiber.Ctx) error {
	var req dto.CreateChildRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	child, err := h.service.CreateChild(c.Context(), service.ChildCreateInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		LegalStatus:    req.LegalStatus,
		LocalAuthority: req.LocalAuthority,
		IROName:        req.IROName,
		CulturalNeeds:  req.CulturalNeeds,
		ReligiousNeeds: req.ReligiousNeeds,
		MedicalNeeds:   req.MedicalNeeds,
		BehavioralRisk: req.BehavioralRisk,
		SENSupport:     req.SENSupport,
		WheelchairUser: req.WheelchairUser,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": childResponse(child)})
}

// UpdateChild PATCH /children/:id.
func (h *ChildrenHandler) UpdateChild(c *fiber.Ctx) error {
	var req dto.UpdateChildRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	child, err := h.service.UpdateChild(c.Context(), c.Params("id"), service.ChildUpdateInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		LegalStatus:    req.LegalStatus,
		Status:         req.Status,
		LocalAuthority: req.LocalAuthority,
		IROName:        req.IROName,
		CulturalNeeds:  req.CulturalNeeds,
		ReligiousNeeds: req.ReligiousNeeds,
		MedicalNeeds:   req.MedicalNeeds,
		BehavioralRisk: req.BehavioralRisk,
		SENSupport:     req.SENSupport,
		WheelchairUser: req.WheelchairUser,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": childResponse(child)})
}

// GetChild GET /children/:id.
func (h *ChildrenHandler) GetChild(c *fiber.Ctx) error {
	id := c.Params("id")
	var (
		child *domain.Child
		err   error
	)
	if strings.HasPrefix(id, "CH-") {
		child, err = h.service.GetChildByReference(c.Context(), id)
	} else {
		child, err = h.service.GetChild(c.Context(), id)
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": childResponse(child)})
}

// ListChildren GET /children.
func (h *ChildrenHandler) ListChildren(c *fiber.Ctx) error {
	filter := repository.ChildFilter{
		Limit:  queryInt(c, "limit", 20),
		Offset: queryInt(c, "offset", 0),
	}
	if status := c.Query("status"); status != "" {
		s := domain.ChildStatus(status)
		filter.Status = &s
	}
	if la := c.Query("local_authority"); la != "" {
		filter.LocalAuthority = &la
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	children, err := h.service.ListChildren(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ChildResponse, 0, len(children))
	for i := range children {
		items = append(items, childResponse(&children[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func childResponse(child *domain.Child) dto.ChildResponse {
	return dto.ChildResponse{
		ID:             child.ID,
		ReferenceCode:  child.ReferenceCode,
		FirstName:      child.FirstName,
		LastName:       child.LastName,
		DateOfBirth:    child.DateOfBirth,
		Age:            child.Age(),
		Gender:         child.Gender,
		LegalStatus:    child.LegalStatus,
		Status:         child.Status,
		LocalAuthority: child.LocalAuthority,
		IROName:        child.IROName,
		CulturalNeeds:  child.CulturalNeeds,
		ReligiousNeeds: child.ReligiousNeeds,
		MedicalNeeds:   child.MedicalNeeds,
		BehavioralRisk: child.BehavioralRisk,
		SENSupport:     child.SENSupport,
		WheelchairUser: child.WheelchairUser,
		CreatedAt:      child.CreatedAt,
		UpdatedAt:      child.UpdatedAt,
	}
}
