package dto

import (
	"time"

	"github.com/spec-kit/carenotes/internal/domain"
)

// EmployeeProfileRequest payload for create and update.
type EmployeeProfileRequest struct {
	StaffID         string              `json:"staff_id"`
	JobTitle        string              `json:"job_title"`
	ContractType    domain.ContractType `json:"contract_type"`
	ContractedHours float64             `json:"contracted_hours"`
	DBSCheckedAt    *time.Time          `json:"dbs_checked_at"`
	AnnualLeaveDays int                 `json:"annual_leave_days"`
}

// EmployeeProfileResponse represents an HR profile.
type EmployeeProfileResponse struct {
	ID              string              `json:"id"`
	StaffID         string              `json:"staff_id"`
	JobTitle        string              `json:"job_title"`
	ContractType    domain.ContractType `json:"contract_type"`
	ContractedHours float64             `json:"contracted_hours"`
	DBSCheckedAt    *time.Time          `json:"dbs_checked_at"`
	AnnualLeaveDays int                 `json:"annual_leave_days"`
	CreatedAt       time.Time           `json:"created_at"`
}

// TimeOffRequestRequest payload.
type TimeOffRequestRequest struct {
	EmployeeID string             `json:"employee_id"`
	Type       domain.TimeOffType `json:"type"`
	StartDate  time.Time          `json:"start_date"`
	EndDate    time.Time          `json:"end_date"`
}

// TimeOffDecisionRequest payload.
type TimeOffDecisionRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// TimeOffResponse represents a leave request.
type TimeOffResponse struct {
	ID           string               `json:"id"`
	EmployeeID   string               `json:"employee_id"`
	Type         domain.TimeOffType   `json:"type"`
	StartDate    time.Time            `json:"start_date"`
	EndDate      time.Time            `json:"end_date"`
	Status       domain.TimeOffStatus `json:"status"`
	DecidedBy    *string              `json:"decided_by"`
	DecisionNote *string              `json:"decision_note"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ShiftSwapRequestRequest payload.
type ShiftSwapRequestRequest struct {
	RequestingEmployee string            `json:"requesting_employee"`
	AcceptingEmployee  string            `json:"accepting_employee"`
	ShiftDate          time.Time         `json:"shift_date"`
	Shift              domain.ShiftLabel `json:"shift"`
}

// ShiftSwapDecisionRequest payload.
type ShiftSwapDecisionRequest struct {
	Approve bool `json:"approve"`
}

// ShiftSwapResponse represents a swap.
type ShiftSwapResponse struct {
	ID                 string                 `json:"id"`
	RequestingEmployee string                 `json:"requesting_employee"`
	AcceptingEmployee  string                 `json:"accepting_employee"`
	ShiftDate          time.Time              `json:"shift_date"`
	Shift              domain.ShiftLabel      `json:"shift"`
	Status             domain.ShiftSwapStatus `json:"status"`
	DecidedBy          *string                `json:"decided_by"`
	CreatedAt          time.Time              `json:"created_at"`
}
