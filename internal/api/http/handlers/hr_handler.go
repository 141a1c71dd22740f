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

// HRHandler manages employee, time off and shift swap endpoints.
type HRHandler struct {
	service *service.HRService
}

// NewHRHandler constructs handler.
func NewHRHandler(hrService *service.HRService) *HRHandler {
	return &HRHandler{service: hrService}
}

// CreateEmployee POST /hr/employees.
func (h *HRHandler) CreateEmployee(c *fiber.Ctx) error {
	var req dto.EmployeeProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	profile, err := h.service.CreateEmployeeProfile(c.Context(), service.EmployeeProfileInput{
		StaffID:         req.StaffID,
		JobTitle:        req.JobTitle,
		ContractType:    req.ContractType,
		ContractedHours: req.ContractedHours,
		DBSCheckedAt:    req.DBSCheckedAt,
		AnnualLeaveDays: req.AnnualLeaveDays,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": employeeResponse(profile)})
}

// UpdateEmployee PUT /hr/employees/:id.
func (h *HRHandler) UpdateEmployee(c *fiber.Ctx) error {
	var req dto.EmployeeProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	profile, err := h.service.UpdateEmployeeProfile(c.Context(), c.Params("id"), service.EmployeeProfileInput{
		JobTitle:        req.JobTitle,
		ContractType:    req.ContractType,
		ContractedHours: req.ContractedHours,
		DBSCheckedAt:    req.DBSCheckedAt,
		AnnualLeaveDays: req.AnnualLeaveDays,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(profile)})
}

// GetEmployee GET /hr/employees/:id.
func (h *HRHandler) GetEmployee(c *fiber.Ctx) error {
	profile, err := h.service.GetEmployeeProfile(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(profile)})
}

// ListEmployees GET /hr/employees.
func (h *HRHandler) ListEmployees(c *fiber.Ctx) error {
	filter := repository.EmployeeFilter{
		Limit:  queryInt(c, "limit", 20),
		Offset: queryInt(c, "offset", 0),
	}
	if contractType := c.Query("contract_type"); contractType != "" {
		ct := domain.ContractType(contractType)
		filter.ContractType = &ct
	}
	profiles, err := h.service.ListEmployees(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.EmployeeProfileResponse, 0, len(profiles))
	for i := range profiles {
		items = append(items, employeeResponse(&profiles[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// RequestTimeOff POST /hr/time-off.
func (h *HRHandler) RequestTimeOff(c *fiber.Ctx) error {
	var req dto.TimeOffRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.EmployeeID == "" {
		return apperrors.NewValidationError("employee_id required", nil)
	}
	request, err := h.service.RequestTimeOff(c.Context(), req.EmployeeID, req.Type, req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": timeOffResponse(request)})
}

// DecideTimeOff POST /hr/time-off/:id/decide.
func (h *HRHandler) DecideTimeOff(c *fiber.Ctx) error {
	var req dto.TimeOffDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	request, err := h.service.DecideTimeOff(c.Context(), actorID(c), c.Params("id"), req.Approve, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": timeOffResponse(request)})
}

// ListTimeOff GET /hr/employees/:id/time-off.
func (h *HRHandler) ListTimeOff(c *fiber.Ctx) error {
	requests, err := h.service.ListTimeOff(c.Context(), c.Params("id"), queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if err != nil {
		return err
	}
	items := make([]dto.TimeOffResponse, 0, len(requests))
	for i := range requests {
		items = append(items, timeOffResponse(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// RequestShiftSwap POST /hr/shift-swaps.
func (h *HRHandler) RequestShiftSwap(c *fiber.Ctx) error {
	var req dto.ShiftSwapRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RequestingEmployee == "" || req.AcceptingEmployee == "" {
		return apperrors.NewValidationError("requesting_employee and accepting_employee required", nil)
	}
	swap, err := h.service.RequestShiftSwap(c.Context(), req.RequestingEmployee, req.AcceptingEmployee, req.ShiftDate, req.Shift)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": shiftSwapResponse(swap)})
}

// AcceptShiftSwap POST /hr/shift-swaps/:id/accept.
func (h *HRHandler) AcceptShiftSwap(c *fiber.Ctx) error {
	swap, err := h.service.AcceptShiftSwap(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": shiftSwapResponse(swap)})
}

// DecideShiftSwap POST /hr/shift-swaps/:id/decide.
func (h *HRHandler) DecideShiftSwap(c *fiber.Ctx) error {
	var req dto.ShiftSwapDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	swap, err := h.service.DecideShiftSwap(c.Context(), actorID(c), c.Params("id"), req.Approve)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": shiftSwapResponse(swap)})
}

// ListShiftSwaps GET /hr/shift-swaps.
func (h *HRHandler) ListShiftSwaps(c *fiber.Ctx) error {
	filter := repository.ShiftSwapFilter{
		Limit:  queryInt(c, "limit", 20),
		Offset: queryInt(c, "offset", 0),
	}
	if employeeID := c.Query("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.ShiftSwapStatus(strings.TrimSpace(part)))
		}
	}
	swaps, err := h.service.ListShiftSwaps(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ShiftSwapResponse, 0, len(swaps))
	for i := range swaps {
		items = append(items, shiftSwapResponse(&swaps[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func employeeResponse(p *domain.EmployeeProfile) dto.EmployeeProfileResponse {
	return dto.EmployeeProfileResponse{
		ID:              p.ID,
		StaffID:         p.StaffID,
		JobTitle:        p.JobTitle,
		ContractType:    p.ContractType,
		ContractedHours: p.ContractedHours,
		DBSCheckedAt:    p.DBSCheckedAt,
		AnnualLeaveDays: p.AnnualLeaveDays,
		CreatedAt:       p.CreatedAt,
	}
}

func timeOffResponse(r *domain.TimeOffRequest) dto.TimeOffResponse {
	return dto.TimeOffResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		Type:         r.Type,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Status:       r.Status,
		DecidedBy:    r.DecidedBy,
		DecisionNote: r.DecisionNote,
		CreatedAt:    r.CreatedAt,
	}
}

func shiftSwapResponse(s *domain.ShiftSwap) dto.ShiftSwapResponse {
	return dto.ShiftSwapResponse{
		ID:                 s.ID,
		RequestingEmployee: s.RequestingEmployee,
		AcceptingEmployee:  s.AcceptingEmployee,
		ShiftDate:          s.ShiftDate,
		Shift:              s.Shift,
		Status:             s.Status,
		DecidedBy:          s.DecidedBy,
		CreatedAt:          s.CreatedAt,
	}
}
