package domain

import "time"

// ChildStatus enumerates lifecycle states for a looked-after child record.
type ChildStatus string

const (
	ChildStatusReferred    ChildStatus = "REFERRED"
	ChildStatusLookedAfter ChildStatus = "LOOKED_AFTER"
	ChildStatusPlaced      ChildStatus = "PLACED"
	ChildStatusLeftCare    ChildStatus = "LEFT_CARE"
)

// Gender as recorded on the child profile.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// LegalStatus enumerates the statutory basis for care.
type LegalStatus string

const (
	LegalStatusSection20     LegalStatus = "SECTION_20"
	LegalStatusCareOrder     LegalStatus = "CARE_ORDER"
	LegalStatusInterimOrder  LegalStatus = "INTERIM_CARE_ORDER"
	LegalStatusEmergencyProt LegalStatus = "EMERGENCY_PROTECTION_ORDER"
	LegalStatusRemand        LegalStatus = "REMAND"
)

// MedicalNeedsLevel grades the nursing capability a child requires.
type MedicalNeedsLevel string

const (
	MedicalNeedsNone    MedicalNeedsLevel = "NONE"
	MedicalNeedsBasic   MedicalNeedsLevel = "BASIC"
	MedicalNeedsNursing MedicalNeedsLevel = "NURSING"
	MedicalNeedsComplex MedicalNeedsLevel = "COMPLEX"
)

// BehavioralRisk grades the behavioural support a child requires.
type BehavioralRisk string

const (
	BehavioralRiskLow    BehavioralRisk = "LOW"
	BehavioralRiskMedium BehavioralRisk = "MEDIUM"
	BehavioralRiskHigh   BehavioralRisk = "HIGH"
)

// Child is the profile for a child in the care of a local authority.
type Child struct {
	ID             string
	ReferenceCode  string
	FirstName      string
	LastName       string
	DateOfBirth    time.Time
	Gender         Gender
	LegalStatus    LegalStatus
	Status         ChildStatus
	LocalAuthority string
	IROName        string
	CulturalNeeds  []string
	ReligiousNeeds []string
	MedicalNeeds   MedicalNeedsLevel
	BehavioralRisk BehavioralRisk
	SENSupport     bool
	WheelchairUser bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AgeAt returns the child's age in whole years at the given date.
func (c *Child) AgeAt(at time.Time) int {
	age := at.Year() - c.DateOfBirth.Year()
	anniversary := c.DateOfBirth.AddDate(age, 0, 0)
	if anniversary.After(at) {
		age--
	}
	return age
}

// Age returns the child's current age in whole years.
func (c *Child) Age() int {
	return c.AgeAt(time.Now())
}
