package dto

import (
	"time"

	"github.com/spec-kit/carenotes/internal/domain"
)

// CreateChildRequest payload.
type CreateChildRequest struct {
	FirstName      string                   `json:"first_name"`
	LastName       string                   `json:"last_name"`
	DateOfBirth    time.Time                `json:"date_of_birth"`
	Gender         domain.Gender            `json:"gender"`
	LegalStatus    domain.LegalStatus       `json:"legal_status"`
	LocalAuthority string                   `json:"local_authority"`
	IROName        string                   `json:"iro_name"`
	CulturalNeeds  []string                 `json:"cultural_needs"`
	ReligiousNeeds []string                 `json:"religious_needs"`
	MedicalNeeds   domain.MedicalNeedsLevel `json:"medical_needs"`
	BehavioralRisk domain.BehavioralRisk    `json:"behavioral_risk"`
	SENSupport     bool                     `json:"sen_support"`
	WheelchairUser bool                     `json:"wheelchair_user"`
}

// UpdateChildRequest payload; nil fields are left unchanged.
type UpdateChildRequest struct {
	FirstName      *string                   `json:"first_name"`
	LastName       *string                   `json:"last_name"`
	LegalStatus    *domain.LegalStatus       `json:"legal_status"`
	Status         *domain.ChildStatus       `json:"status"`
	LocalAuthority *string                   `json:"local_authority"`
	IROName        *string                   `json:"iro_name"`
	CulturalNeeds  []string                  `json:"cultural_needs"`
	ReligiousNeeds []string                  `json:"religious_needs"`
	MedicalNeeds   *domain.MedicalNeedsLevel `json:"medical_needs"`
	BehavioralRisk *domain.BehavioralRisk    `json:"behavioral_risk"`
	SENSupport     *bool                     `json:"sen_support"`
	WheelchairUser *bool                     `json:"wheelchair_user"`
}

// ChildResponse represents a child profile.
type ChildResponse struct {
	ID             string                   `json:"id"`
	ReferenceCode  string                   `json:"reference_code"`
	FirstName      string                   `json:"first_name"`
	LastName       string                   `json:"last_name"`
	DateOfBirth    time.Time                `json:"date_of_birth"`
	Age            int                      `json:"age"`
	Gender         domain.Gender            `json:"gender"`
	LegalStatus    domain.LegalStatus       `json:"legal_status"`
	Status         domain.ChildStatus       `json:"status"`
	LocalAuthority string                   `json:"local_authority"`
	IROName        string                   `json:"iro_name"`
	CulturalNeeds  []string                 `json:"cultural_needs"`
	ReligiousNeeds []string                 `json:"religious_needs"`
	MedicalNeeds   domain.MedicalNeedsLevel `json:"medical_needs"`
	BehavioralRisk domain.BehavioralRisk    `json:"behavioral_risk"`
	SENSupport     bool                     `json:"sen_support"`
	WheelchairUser bool                     `json:"wheelchair_user"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}
