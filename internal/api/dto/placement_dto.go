package dto

import (
	"time"

	"github.com/spec-kit/carenotes/internal/domain"
)

// CreatePlacementRequest payload.
type CreatePlacementRequest struct {
	ChildID         string               `json:"child_id"`
	OrganizationID  string               `json:"organization_id"`
	RequestID       *string              `json:"request_id"`
	Type            domain.PlacementType `json:"type"`
	StartDate       time.Time            `json:"start_date"`
	ExpectedEndDate *time.Time           `json:"expected_end_date"`
}

// EndPlacementRequest payload.
type EndPlacementRequest struct {
	Reason    string `json:"reason"`
	Emergency bool   `json:"emergency"`
}

// AddFeeRequest payload.
type AddFeeRequest struct {
	FeeType     domain.FeeType `json:"fee_type"`
	Label       string         `json:"label"`
	AmountPence int64          `json:"amount_pence"`
}

// ScheduleReviewRequest payload.
type ScheduleReviewRequest struct {
	ReviewType domain.ReviewType `json:"review_type"`
	DueDate    time.Time         `json:"due_date"`
}

// CompleteReviewRequest payload.
type CompleteReviewRequest struct {
	OutcomeNotes string `json:"outcome_notes"`
}

// CreateAgreementRequest payload.
type CreateAgreementRequest struct {
	AgreementType string `json:"agreement_type"`
}

// SignAgreementRequest payload.
type SignAgreementRequest struct {
	ByAuthority bool `json:"by_authority"`
}

// PlacementResponse represents a placement.
type PlacementResponse struct {
	ID                 string                 `json:"id"`
	ReferenceKey       string                 `json:"reference_key"`
	ChildID            string                 `json:"child_id"`
	OrganizationID     string                 `json:"organization_id"`
	Status             domain.PlacementStatus `json:"status"`
	Type               domain.PlacementType   `json:"type"`
	StartDate          time.Time              `json:"start_date"`
	ExpectedEndDate    *time.Time             `json:"expected_end_date"`
	ActualEndDate      *time.Time             `json:"actual_end_date"`
	EndReason          *string                `json:"end_reason"`
	BaseWeeklyFeePence int64                  `json:"base_weekly_fee_pence"`
	DurationDays       int                    `json:"duration_days"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// PlacementFeeResponse represents an additional charge.
type PlacementFeeResponse struct {
	ID          string         `json:"id"`
	PlacementID string         `json:"placement_id"`
	FeeType     domain.FeeType `json:"fee_type"`
	Label       string         `json:"label"`
	AmountPence int64          `json:"amount_pence"`
	CreatedAt   time.Time      `json:"created_at"`
}

// WeeklyCostResponse reports the current weekly charge.
type WeeklyCostResponse struct {
	PlacementID     string `json:"placement_id"`
	WeeklyCostPence int64  `json:"weekly_cost_pence"`
}

// ReviewResponse represents a placement review.
type ReviewResponse struct {
	ID           string            `json:"id"`
	PlacementID  string            `json:"placement_id"`
	ReviewType   domain.ReviewType `json:"review_type"`
	DueDate      time.Time         `json:"due_date"`
	CompletedAt  *time.Time        `json:"completed_at"`
	OutcomeNotes *string           `json:"outcome_notes"`
	Overdue      bool              `json:"overdue"`
}

// AgreementResponse represents a placement agreement.
type AgreementResponse struct {
	ID                string                 `json:"id"`
	PlacementID       string                 `json:"placement_id"`
	AgreementType     string                 `json:"agreement_type"`
	Status            domain.AgreementStatus `json:"status"`
	SignedByAuthority bool                   `json:"signed_by_authority"`
	AuthoritySignedAt *time.Time             `json:"authority_signed_at"`
	SignedByProvider  bool                   `json:"signed_by_provider"`
	ProviderSignedAt  *time.Time             `json:"provider_signed_at"`
}
