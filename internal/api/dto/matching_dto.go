package dto

import (
	"time"

	"github.com/spec-kit/carenotes/internal/domain"
)

// CreatePlacementRequestRequest payload for opening a matching request.
type CreatePlacementRequestRequest struct {
	ChildID             string                `json:"child_id"`
	RequestedType       domain.PlacementType  `json:"requested_type"`
	Urgency             domain.RequestUrgency `json:"urgency"`
	PreferredLocality   string                `json:"preferred_locality"`
	MaxWeeklyFeePence   *int64                `json:"max_weekly_fee_pence"`
	RequiredSpecialisms []string              `json:"required_specialisms"`
	Notes               string                `json:"notes"`
}

// PlacementRequestResponse represents a matching request.
type PlacementRequestResponse struct {
	ID                  string                `json:"id"`
	ChildID             string                `json:"child_id"`
	RequestedType       domain.PlacementType  `json:"requested_type"`
	Urgency             domain.RequestUrgency `json:"urgency"`
	PreferredLocality   string                `json:"preferred_locality"`
	MaxWeeklyFeePence   *int64                `json:"max_weekly_fee_pence"`
	RequiredSpecialisms []string              `json:"required_specialisms"`
	Notes               string                `json:"notes"`
	Status              domain.RequestStatus  `json:"status"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

// MatchResultResponse wraps the ranked candidates for a request.
type MatchResultResponse struct {
	RequestID string              `json:"request_id"`
	Matches   []domain.MatchScore `json:"matches"`
}
