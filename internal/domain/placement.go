package domain

import "time"

// PlacementStatus enumerates the placement lifecycle.
// PENDING_ARRIVAL -> ACTIVE -> ENDED | BREAKDOWN.
type PlacementStatus string

const (
	PlacementStatusPendingArrival PlacementStatus = "PENDING_ARRIVAL"
	PlacementStatusActive         PlacementStatus = "ACTIVE"
	PlacementStatusEnded          PlacementStatus = "ENDED"
	PlacementStatusBreakdown      PlacementStatus = "BREAKDOWN"
)

// PlacementType distinguishes how a placement was arranged.
type PlacementType string

const (
	PlacementTypePlanned   PlacementType = "PLANNED"
	PlacementTypeEmergency PlacementType = "EMERGENCY"
	PlacementTypeRespite   PlacementType = "RESPITE"
)

// Placement assigns a child to a care organization for a bounded period.
type Placement struct {
	ID                 string
	ReferenceKey       string
	ChildID            string
	OrganizationID     string
	Status             PlacementStatus
	Type               PlacementType
	StartDate          time.Time
	ExpectedEndDate    *time.Time
	ActualEndDate      *time.Time
	EndReason          *string
	BaseWeeklyFeePence int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsTerminal reports whether the placement has reached an end state.
func (p *Placement) IsTerminal() bool {
	return p.Status == PlacementStatusEnded || p.Status == PlacementStatusBreakdown
}

// DurationDays returns elapsed days from start until the actual end date,
// or until now for placements still running.
func (p *Placement) DurationDays() int {
	end := time.Now()
	if p.ActualEndDate != nil {
		end = *p.ActualEndDate
	}
	if end.Before(p.StartDate) {
		return 0
	}
	return int(end.Sub(p.StartDate).Hours() / 24)
}

// FeeType tags how a placement fee recurs.
type FeeType string

const (
	FeeTypeWeekly FeeType = "WEEKLY"
	FeeTypeOneOff FeeType = "ONE_OFF"
)

// PlacementFee is an additional charge on top of the base weekly fee.
type PlacementFee struct {
	ID          string
	PlacementID string
	FeeType     FeeType
	Label       string
	AmountPence int64
	CreatedAt   time.Time
}

// WeeklyCostPence sums the base fee and all WEEKLY tagged fees.
func WeeklyCostPence(placement *Placement, fees []PlacementFee) int64 {
	total := placement.BaseWeeklyFeePence
	for _, fee := range fees {
		if fee.FeeType == FeeTypeWeekly {
			total += fee.AmountPence
		}
	}
	return total
}

// AgreementStatus tracks the signature state of a placement agreement.
type AgreementStatus string

const (
	AgreementStatusDraft           AgreementStatus = "DRAFT"
	AgreementStatusPartiallySigned AgreementStatus = "PARTIALLY_SIGNED"
	AgreementStatusComplete        AgreementStatus = "COMPLETE"
)

// PlacementAgreement records the statutory agreement between the placing
// authority and the provider.
type PlacementAgreement struct {
	ID                string
	PlacementID       string
	AgreementType     string
	Status            AgreementStatus
	SignedByAuthority bool
	AuthoritySignedAt *time.Time
	SignedByProvider  bool
	ProviderSignedAt  *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReviewType enumerates statutory review categories.
type ReviewType string

const (
	ReviewTypeInitial   ReviewType = "INITIAL"
	ReviewTypeStatutory ReviewType = "STATUTORY"
	ReviewTypeEmergency ReviewType = "EMERGENCY"
)

// Statutory review intervals: first review within 28 days of the placement
// starting, then every 90 days.
const (
	InitialReviewAfterDays    = 28
	SubsequentReviewAfterDays = 90
)

// PlacementReview is a scheduled or completed review of a placement.
type PlacementReview struct {
	ID           string
	PlacementID  string
	ReviewType   ReviewType
	DueDate      time.Time
	CompletedAt  *time.Time
	OutcomeNotes *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOverdue reports whether the due date passed without completion.
func (r *PlacementReview) IsOverdue(now time.Time) bool {
	return r.CompletedAt == nil && now.After(r.DueDate)
}
