package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/carenotes/internal/api/dto"
	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/repository"
	"github.com/spec-kit/carenotes/internal/service"
	apperrors "github.com/spec-kit/carenotes/pkg/util"
)

// OrganizationsHandler manages care provider endpoints.
type OrganizationsHandler struct {
	service *service.OrganizationService
}

// NewOrganizationsHandler constructs handler.
func NewOrganizationsHandler(orgService *service.OrganizationService) *OrganizationsHandler {
	return &OrganizationsHandler{service: orgService}
}

// CreateOrganization POST /organizations.
func (h *OrganizationsHandler) CreateOrganization(c *fiber.Ctx) error {
	input, err := parseOrganizationRequest(c)
	if err != nil {
		return err
	}
	org, err := h.service.CreateOrganization(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": organizationResponse(org)})
}

// UpdateOrganization PUT /organizations/:id.
func (h *OrganizationsHandler) UpdateOrganization(c *fiber.Ctx) error {
	input, err := parseOrganizationRequest(c)
	if err != nil {
		return err
	}
	org, err := h.service.UpdateOrganization(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": organizationResponse(org)})
}

// DeactivateOrganization POST /organizations/:id/deactivate.
func (h *OrganizationsHandler) DeactivateOrganization(c *fiber.Ctx) error {
	org, err := h.service.DeactivateOrganization(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": organizationResponse(org)})
}

// GetOrganization GET /organizations/:id.
func (h *OrganizationsHandler) GetOrganization(c *fiber.Ctx) error {
	org, err := h.service.GetOrganization(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": organizationResponse(org)})
}

// ListOrganizations GET /organizations.
func (h *OrganizationsHandler) ListOrganizations(c *fiber.Ctx) error {
	filter := repository.OrganizationFilter{
		Limit:  queryInt(c, "limit", 20),
		Offset: queryInt(c, "offset", 0),
	}
	if orgType := c.Query("type"); orgType != "" {
		t := domain.OrganizationType(orgType)
		filter.Type = &t
	}
	if activeStr := c.Query("active"); activeStr != "" {
		active := activeStr == "true"
		filter.Active = &active
	}
	if locality := c.Query("locality"); locality != "" {
		filter.Locality = &locality
	}
	if c.Query("has_free_beds") == "true" {
		filter.HasFreeBeds = true
	}
	orgs, err := h.service.ListOrganizations(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.OrganizationResponse, 0, len(orgs))
	for i := range orgs {
		items = append(items, organizationResponse(&orgs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseOrganizationRequest(c *fiber.Ctx) (service.OrganizationInput, error) {
	var req dto.OrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return service.OrganizationInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	return service.OrganizationInput{
		Name:                  req.Name,
		Type:                  req.Type,
		RegisteredCapacity:    req.RegisteredCapacity,
		CurrentOccupancy:      req.CurrentOccupancy,
		MinAge:                req.MinAge,
		MaxAge:                req.MaxAge,
		GenderIntake:          req.GenderIntake,
		Specialisms:           req.Specialisms,
		CulturalCapabilities:  req.CulturalCapabilities,
		ReligiousCapabilities: req.ReligiousCapabilities,
		MedicalCapability:     req.MedicalCapability,
		BehavioralCapability:  req.BehavioralCapability,
		EducationOnSite:       req.EducationOnSite,
		SENSupport:            req.SENSupport,
		WheelchairAccessible:  req.WheelchairAccessible,
		BaseWeeklyFeePence:    req.BaseWeeklyFeePence,
		Locality:              req.Locality,
		Postcode:              req.Postcode,
		OfstedRating:          req.OfstedRating,
		Active:                req.Active,
	}, nil
}

func organizationResponse(org *domain.CareOrganization) dto.OrganizationResponse {
	return dto.OrganizationResponse{
		ID:                    org.ID,
		Name:                  org.Name,
		Type:                  org.Type,
		RegisteredCapacity:    org.RegisteredCapacity,
		CurrentOccupancy:      org.CurrentOccupancy,
		FreeBeds:              org.FreeBeds(),
		MinAge:                org.MinAge,
		MaxAge:                org.MaxAge,
		GenderIntake:          org.GenderIntake,
		Specialisms:           org.Specialisms,
		CulturalCapabilities:  org.CulturalCapabilities,
		ReligiousCapabilities: org.ReligiousCapabilities,
		MedicalCapability:     org.MedicalCapability,
		BehavioralCapability:  org.BehavioralCapability,
		EducationOnSite:       org.EducationOnSite,
		SENSupport:            org.SENSupport,
		WheelchairAccessible:  org.WheelchairAccessible,
		BaseWeeklyFeePence:    org.BaseWeeklyFeePence,
		Locality:              org.Locality,
		Postcode:              org.Postcode,
		OfstedRating:          org.OfstedRating,
		Active:                org.Active,
		CreatedAt:             org.CreatedAt,
		UpdatedAt:             org.UpdatedAt,
	}
}
