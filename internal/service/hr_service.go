package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/events"
	"github.com/spec-kit/carenotes/internal/repository"
	apperrors "github.com/spec-kit/carenotes/pkg/util"
)

// HRService manages employee profiles, leave requests and shift swaps.
type HRService struct {
	employees  repository.EmployeeRepository
	timeOff    repository.TimeOffRepository
	shiftSwaps repository.ShiftSwapRepository
	dispatcher events.Dispatcher
}

// HRDependencies bundles repositories for the HR service.
type HRDependencies struct {
	EmployeeRepo  repository.EmployeeRepository
	TimeOffRepo   repository.TimeOffRepository
	ShiftSwapRepo repository.ShiftSwapRepository
	Dispatcher    events.Dispatcher
}

// EmployeeProfileInput describes a profile payload.
type EmployeeProfileInput struct {
	StaffID         string
	JobTitle        string
	ContractType    domain.ContractType
	ContractedHours float64
	DBSCheckedAt    *time.Time
	AnnualLeaveDays int
}

// NewHRService constructs the service.
func NewHRService(deps HRDependencies) *HRService {
	return &HRService{
		employees:  deps.EmployeeRepo,
		timeOff:    deps.TimeOffRepo,
		shiftSwaps: deps.ShiftSwapRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateEmployeeProfile attaches an HR profile to a staff account.
func (s *HRService) CreateEmployeeProfile(ctx context.Context, input EmployeeProfileInput) (*domain.EmployeeProfile, error) {
	if strings.TrimSpace(input.StaffID) == "" {
		return nil, apperrors.NewValidationError("staff id required", nil)
	}
	if input.ContractedHours < 0 {
		return nil, apperrors.NewValidationError("contracted hours must not be negative", nil)
	}
	if existing, err := s.employees.GetByStaffID(ctx, input.StaffID); err == nil && existing != nil {
		return nil, apperrors.NewConflict("employee profile already exists for staff member", map[string]any{
			"employee_id": existing.ID,
		})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	profile := &domain.EmployeeProfile{
		StaffID:         input.StaffID,
		JobTitle:        strings.TrimSpace(input.JobTitle),
		ContractType:    input.ContractType,
		ContractedHours: input.ContractedHours,
		DBSCheckedAt:    input.DBSCheckedAt,
		AnnualLeaveDays: input.AnnualLeaveDays,
	}
	if profile.ContractType == "" {
		profile.ContractType = domain.ContractPermanent
	}
	if err := s.employees.Create(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// UpdateEmployeeProfile replaces the mutable HR attributes.
func (s *HRService) UpdateEmployeeProfile(ctx context.Context, employeeID string, input EmployeeProfileInput) (*domain.EmployeeProfile, error) {
	profile, err := s.GetEmployeeProfile(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if input.ContractedHours < 0 {
		return nil, apperrors.NewValidationError("contracted hours must not be negative", nil)
	}
	profile.JobTitle = strings.TrimSpace(input.JobTitle)
	if input.ContractType != "" {
		profile.ContractType = input.ContractType
	}
	profile.ContractedHours = input.ContractedHours
	if input.DBSCheckedAt != nil {
		profile.DBSCheckedAt = input.DBSCheckedAt
	}
	profile.AnnualLeaveDays = input.AnnualLeaveDays
	if err := s.employees.Update(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// GetEmployeeProfile fetches one profile.
func (s *HRService) GetEmployeeProfile(ctx context.Context, employeeID string) (*domain.EmployeeProfile, error) {
	profile, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee profile", map[string]any{"employee_id": employeeID})
		}
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// GetEmployeeByStaffID fetches the profile linked to a staff account.
func (s *HRService) GetEmployeeByStaffID(ctx context.Context, staffID string) (*domain.EmployeeProfile, error) {
	profile, err := s.employees.GetByStaffID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee profile", map[string]any{"staff_id": staffID})
		}
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// ListEmployees returns profiles matching the filter.
func (s *HRService) ListEmployees(ctx context.Context, filter repository.EmployeeFilter) ([]domain.EmployeeProfile, error) {
	profiles, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return profiles, nil
}

// RequestTimeOff files a leave request. Requests overlapping an existing
// pending or approved request for the same employee are rejected.
func (s *HRService) RequestTimeOff(ctx context.Context, employeeID string, offType domain.TimeOffType, start, end time.Time) (*domain.TimeOffRequest, error) {
	if _, err := s.GetEmployeeProfile(ctx, employeeID); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, apperrors.NewValidationError("end date before start date", nil)
	}

	overlapping, err := s.timeOff.ListOverlapping(ctx, employeeID, start, end)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(overlapping) > 0 {
		return nil, apperrors.NewConflict("overlapping leave request exists", map[string]any{
			"conflicting_request_id": overlapping[0].ID,
		})
	}

	request := &domain.TimeOffRequest{
		EmployeeID: employeeID,
		Type:       offType,
		StartDate:  start,
		EndDate:    end,
		Status:     domain.TimeOffStatusPending,
	}
	if request.Type == "" {
		request.Type = domain.TimeOffAnnualLeave
	}
	if err := s.timeOff.Create(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	return request, nil
}

// DecideTimeOff approves or denies a pending leave request.
func (s *HRService) DecideTimeOff(ctx context.Context, deciderStaffID, requestID string, approve bool, note string) (*domain.TimeOffRequest, error) {
	request, err := s.timeOff.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("time off request", map[string]any{"request_id": requestID})
		}
		return nil, apperrors.MapError(err)
	}
	if request.Status != domain.TimeOffStatusPending {
		return nil, apperrors.NewConflict("request already decided", map[string]any{"status": request.Status})
	}
	if approve {
		request.Status = domain.TimeOffStatusApproved
	} else {
		request.Status = domain.TimeOffStatusDenied
	}
	request.DecidedBy = &deciderStaffID
	if note = strings.TrimSpace(note); note != "" {
		request.DecisionNote = &note
	}
	if err := s.timeOff.Update(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishHR(ctx, deciderStaffID, events.EventTimeOffDecided, request.ID, events.TimeOffDecidedPayload{
		EmployeeID: request.EmployeeID,
		Status:     request.Status,
		Note:       note,
	})
	return request, nil
}

// ListTimeOff returns leave requests for one employee.
func (s *HRService) ListTimeOff(ctx context.Context, employeeID string, limit, offset int) ([]domain.TimeOffRequest, error) {
	requests, err := s.timeOff.ListByEmployee(ctx, employeeID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// RequestShiftSwap opens a swap between two employees for one rota shift.
func (s *HRService) RequestShiftSwap(ctx context.Context, requestingID, acceptingID string, shiftDate time.Time, shift domain.ShiftLabel) (*domain.ShiftSwap, error) {
	if requestingID == acceptingID {
		return nil, apperrors.NewValidationError("cannot swap a shift with yourself", nil)
	}
	if _, err := s.GetEmployeeProfile(ctx, requestingID); err != nil {
		return nil, err
	}
	if _, err := s.GetEmployeeProfile(ctx, acceptingID); err != nil {
		return nil, err
	}
	swap := &domain.ShiftSwap{
		RequestingEmployee: requestingID,
		AcceptingEmployee:  acceptingID,
		ShiftDate:          shiftDate,
		Shift:              shift,
		Status:             domain.ShiftSwapRequested,
	}
	if err := s.shiftSwaps.Create(ctx, swap); err != nil {
		return nil, apperrors.MapError(err)
	}
	return swap, nil
}

// AcceptShiftSwap records the counterpart's acceptance.
func (s *HRService) AcceptShiftSwap(ctx context.Context, swapID string) (*domain.ShiftSwap, error) {
	swap, err := s.getShiftSwap(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap.Status != domain.ShiftSwapRequested {
		return nil, apperrors.NewConflict("swap not awaiting acceptance", map[string]any{"status": swap.Status})
	}
	swap.Status = domain.ShiftSwapAccepted
	if err := s.shiftSwaps.Update(ctx, swap); err != nil {
		return nil, apperrors.MapError(err)
	}
	return swap, nil
}

// DecideShiftSwap lets a manager approve or decline an accepted swap.
func (s *HRService) DecideShiftSwap(ctx context.Context, deciderStaffID, swapID string, approve bool) (*domain.ShiftSwap, error) {
	swap, err := s.getShiftSwap(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap.Status != domain.ShiftSwapAccepted {
		return nil, apperrors.NewConflict("swap not awaiting approval", map[string]any{"status": swap.Status})
	}
	if approve {
		swap.Status = domain.ShiftSwapApproved
	} else {
		swap.Status = domain.ShiftSwapDeclined
	}
	swap.DecidedBy = &deciderStaffID
	if err := s.shiftSwaps.Update(ctx, swap); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishHR(ctx, deciderStaffID, events.EventShiftSwapDecided, swap.ID, events.ShiftSwapDecidedPayload{
		RequestingEmployee: swap.RequestingEmployee,
		AcceptingEmployee:  swap.AcceptingEmployee,
		Status:             swap.Status,
	})
	return swap, nil
}

// ListShiftSwaps returns swaps matching the filter.
func (s *HRService) ListShiftSwaps(ctx context.Context, filter repository.ShiftSwapFilter) ([]domain.ShiftSwap, error) {
	swaps, err := s.shiftSwaps.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return swaps, nil
}

func (s *HRService) getShiftSwap(ctx context.Context, swapID string) (*domain.ShiftSwap, error) {
	swap, err := s.shiftSwaps.GetByID(ctx, swapID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("shift swap", map[string]any{"swap_id": swapID})
		}
		return nil, apperrors.MapError(err)
	}
	return swap, nil
}

func (s *HRService) publishHR(ctx context.Context, actorID string, eventType events.EventType, subjectID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     events.Actor{StaffID: &actorID},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
