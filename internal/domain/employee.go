package domain

import "time"

// ContractType enumerates employment contract categories.
type ContractType string

const (
	ContractPermanent ContractType = "PERMANENT"
	ContractBank      ContractType = "BANK"
	ContractAgency    ContractType = "AGENCY"
)

// EmployeeProfile is the HR record linked to a staff account.
type EmployeeProfile struct {
	ID              string
	StaffID         string
	JobTitle        string
	ContractType    ContractType
	ContractedHours float64
	DBSCheckedAt    *time.Time
	AnnualLeaveDays int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TimeOffType enumerates leave categories.
type TimeOffType string

const (
	TimeOffAnnualLeave   TimeOffType = "ANNUAL_LEAVE"
	TimeOffSick          TimeOffType = "SICK"
	TimeOffUnpaid        TimeOffType = "UNPAID"
	TimeOffCompassionate TimeOffType = "COMPASSIONATE"
)

// TimeOffStatus enumerates request states.
type TimeOffStatus string

const (
	TimeOffStatusPending  TimeOffStatus = "PENDING"
	TimeOffStatusApproved TimeOffStatus = "APPROVED"
	TimeOffStatusDenied   TimeOffStatus = "DENIED"
)

// TimeOffRequest is a leave request by an employee.
type TimeOffRequest struct {
	ID           string
	EmployeeID   string
	Type         TimeOffType
	StartDate    time.Time
	EndDate      time.Time
	Status       TimeOffStatus
	DecidedBy    *string
	DecisionNote *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Overlaps reports whether two date ranges intersect (inclusive).
func (t *TimeOffRequest) Overlaps(start, end time.Time) bool {
	return !t.EndDate.Before(start) && !t.StartDate.After(end)
}

// ShiftLabel identifies the rota shift being swapped.
type ShiftLabel string

const (
	ShiftEarly ShiftLabel = "EARLY"
	ShiftLate  ShiftLabel = "LATE"
	ShiftNight ShiftLabel = "NIGHT"
)

// ShiftSwapStatus enumerates swap states.
// REQUESTED -> ACCEPTED -> APPROVED | DECLINED.
type ShiftSwapStatus string

const (
	ShiftSwapRequested ShiftSwapStatus = "REQUESTED"
	ShiftSwapAccepted  ShiftSwapStatus = "ACCEPTED"
	ShiftSwapApproved  ShiftSwapStatus = "APPROVED"
	ShiftSwapDeclined  ShiftSwapStatus = "DECLINED"
)

// ShiftSwap is a request to exchange a rota shift between two employees.
type ShiftSwap struct {
	ID                 string
	RequestingEmployee string
	AcceptingEmployee  string
	ShiftDate          time.Time
	Shift              ShiftLabel
	Status             ShiftSwapStatus
	DecidedBy          *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
