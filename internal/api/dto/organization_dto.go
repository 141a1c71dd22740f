package dto

import (
	"time"

	"github.com/spec-kit/carenotes/internal/domain"
)

// OrganizationRequest is the full payload for create and update.
type OrganizationRequest struct {
	Name                  string                   `json:"name"`
	Type                  domain.OrganizationType  `json:"type"`
	RegisteredCapacity    int                      `json:"registered_capacity"`
	CurrentOccupancy      int                      `json:"current_occupancy"`
	MinAge                int                      `json:"min_age"`
	MaxAge                int                      `json:"max_age"`
	GenderIntake          domain.GenderIntake      `json:"gender_intake"`
	Specialisms           []string                 `json:"specialisms"`
	CulturalCapabilities  []string                 `json:"cultural_capabilities"`
	ReligiousCapabilities []string                 `json:"religious_capabilities"`
	MedicalCapability     domain.MedicalNeedsLevel `json:"medical_capability"`
	BehavioralCapability  domain.BehavioralRisk    `json:"behavioral_capability"`
	EducationOnSite       bool                     `json:"education_on_site"`
	SENSupport            bool                     `json:"sen_support"`
	WheelchairAccessible  bool                     `json:"wheelchair_accessible"`
	BaseWeeklyFeePence    int64                    `json:"base_weekly_fee_pence"`
	Locality              string                   `json:"locality"`
	Postcode              string                   `json:"postcode"`
	OfstedRating          string                   `json:"ofsted_rating"`
	Active                bool                     `json:"active"`
}

// OrganizationResponse represents a provider.
type OrganizationResponse struct {
	ID                    string                   `json:"id"`
	Name                  string                   `json:"name"`
	Type                  domain.OrganizationType  `json:"type"`
	RegisteredCapacity    int                      `json:"registered_capacity"`
	CurrentOccupancy      int                      `json:"current_occupancy"`
	FreeBeds              int                      `json:"free_beds"`
	MinAge                int                      `json:"min_age"`
	MaxAge                int                      `json:"max_age"`
	GenderIntake          domain.GenderIntake      `json:"gender_intake"`
	Specialisms           []string                 `json:"specialisms"`
	CulturalCapabilities  []string                 `json:"cultural_capabilities"`
	ReligiousCapabilities []string                 `json:"religious_capabilities"`
	MedicalCapability     domain.MedicalNeedsLevel `json:"medical_capability"`
	BehavioralCapability  domain.BehavioralRisk    `json:"behavioral_capability"`
	EducationOnSite       bool                     `json:"education_on_site"`
	SENSupport            bool                     `json:"sen_support"`
	WheelchairAccessible  bool                     `json:"wheelchair_accessible"`
	BaseWeeklyFeePence    int64                    `json:"base_weekly_fee_pence"`
	Locality              string                   `json:"locality"`
	Postcode              string                   `json:"postcode"`
	OfstedRating          string                   `json:"ofsted_rating"`
	Active                bool                     `json:"active"`
	CreatedAt             time.Time                `json:"created_at"`
	UpdatedAt             time.Time                `json:"updated_at"`
}
