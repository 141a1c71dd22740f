package domain

import "time"

// RequestUrgency grades how quickly a placement is needed.
type RequestUrgency string

const (
	UrgencyStandard  RequestUrgency = "STANDARD"
	UrgencyUrgent    RequestUrgency = "URGENT"
	UrgencyEmergency RequestUrgency = "EMERGENCY"
)

// RequestStatus enumerates placement request states.
type RequestStatus string

const (
	RequestStatusOpen    RequestStatus = "OPEN"
	RequestStatusMatched RequestStatus = "MATCHED"
	RequestStatusClosed  RequestStatus = "CLOSED"
)

// PlacementRequest captures the criteria used to match a child to a provider.
type PlacementRequest struct {
	ID                  string
	ChildID             string
	RequestedType       PlacementType
	Urgency             RequestUrgency
	PreferredLocality   string
	MaxWeeklyFeePence   *int64
	RequiredSpecialisms []string
	Notes               string
	Status              RequestStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
