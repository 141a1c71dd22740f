package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/carenotes/internal/api/dto"
	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/service"
	apperrors "github.com/spec-kit/carenotes/pkg/util"
)

// MedicationsHandler manages prescription endpoints.
type MedicationsHandler struct {
	service *service.MedicationService
}

// NewMedicationsHandler constructs handler.
func NewMedicationsHandler(medicationService *service.MedicationService) *MedicationsHandler {
	return &MedicationsHandler{service: medicationService}
}

// RecordMedication POST /medications.
func (h *MedicationsHandler) RecordMedication(c *fiber.Ctx) error {
	var req dto.RecordMedicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	record, alerts, err := h.service.RecordMedication(c.Context(), actorID(c), service.MedicationInput{
		ChildID:    req.ChildID,
		DMDCode:    req.DMDCode,
		Name:       req.Name,
		Dose:       req.Dose,
		Route:      req.Route,
		Frequency:  req.Frequency,
		Prescriber: req.Prescriber,
		StartDate:  req.StartDate,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.RecordMedicationResponse{
		Medication: medicationResponse(record),
		Alerts:     alerts,
	}})
}

// DiscontinueMedication POST /medications/:id/discontinue.
func (h *MedicationsHandler) DiscontinueMedication(c *fiber.Ctx) error {
	record, err := h.service.DiscontinueMedication(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": medicationResponse(record)})
}

// ListMedications GET /children/:id/medications.
func (h *MedicationsHandler) ListMedications(c *fiber.Ctx) error {
	activeOnly := c.Query("active") == "true"
	records, err := h.service.ListMedications(c.Context(), c.Params("id"), activeOnly)
	if err != nil {
		return err
	}
	items := make([]dto.MedicationResponse, 0, len(records))
	for i := range records {
		items = append(items, medicationResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CheckInteractions GET /children/:id/medications/interactions.
func (h *MedicationsHandler) CheckInteractions(c *fiber.Ctx) error {
	alerts, err := h.service.CheckInteractions(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if alerts == nil {
		alerts = []domain.InteractionAlert{}
	}
	return c.JSON(fiber.Map{"data": alerts})
}

func medicationResponse(r *domain.MedicationRecord) dto.MedicationResponse {
	return dto.MedicationResponse{
		ID:         r.ID,
		ChildID:    r.ChildID,
		DMDCode:    r.DMDCode,
		Name:       r.Name,
		Dose:       r.Dose,
		Route:      r.Route,
		Frequency:  r.Frequency,
		Prescriber: r.Prescriber,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}
}
