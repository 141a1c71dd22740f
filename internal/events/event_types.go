package events

import (
	"time"

	"github.com/spec-kit/carenotes/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPlacementCreated       EventType = "placement_created"
	EventPlacementStatusChanged EventType = "placement_status_changed"
	EventPlacementMatched       EventType = "placement_matched"
	EventTimeOffDecided         EventType = "time_off_decided"
	EventShiftSwapDecided       EventType = "shift_swap_decided"
	EventMedicationRecorded     EventType = "medication_recorded"
	EventPocketMoneyDisbursed   EventType = "pocket_money_disbursed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	StaffID *string `json:"staff_id,omitempty"`
	System  bool    `json:"system,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// PlacementCreatedPayload payload.
type PlacementCreatedPayload struct {
	ChildID        string                 `json:"child_id"`
	OrganizationID string                 `json:"organization_id"`
	Type           domain.PlacementType   `json:"type"`
	Status         domain.PlacementStatus `json:"status"`
}

// PlacementStatusChangedPayload payload.
type PlacementStatusChangedPayload struct {
	OldStatus domain.PlacementStatus `json:"old_status"`
	NewStatus domain.PlacementStatus `json:"new_status"`
	Reason    string                 `json:"reason,omitempty"`
}

// PlacementMatchedPayload payload.
type PlacementMatchedPayload struct {
	RequestID      string  `json:"request_id"`
	CandidateCount int     `json:"candidate_count"`
	TopPercentage  float64 `json:"top_percentage,omitempty"`
}

// TimeOffDecidedPayload payload.
type TimeOffDecidedPayload struct {
	EmployeeID string               `json:"employee_id"`
	Status     domain.TimeOffStatus `json:"status"`
	Note       string               `json:"note,omitempty"`
}

// ShiftSwapDecidedPayload payload.
type ShiftSwapDecidedPayload struct {
	RequestingEmployee string                 `json:"requesting_employee"`
	AcceptingEmployee  string                 `json:"accepting_employee"`
	Status             domain.ShiftSwapStatus `json:"status"`
}

// MedicationRecordedPayload payload.
type MedicationRecordedPayload struct {
	ChildID string `json:"child_id"`
	DMDCode string `json:"dmd_code"`
	Name    string `json:"name"`
}

// PocketMoneyDisbursedPayload payload.
type PocketMoneyDisbursedPayload struct {
	ChildID     string `json:"child_id"`
	WeekNumber  int    `json:"week_number"`
	Year        int    `json:"year"`
	AmountPence int64  `json:"amount_pence"`
}
