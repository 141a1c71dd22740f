package domain

import "time"

// OrganizationType enumerates registered provision categories.
type OrganizationType string

const (
	OrgTypeChildrensHome     OrganizationType = "CHILDRENS_HOME"
	OrgTypeFosterAgency      OrganizationType = "FOSTER_AGENCY"
	OrgTypeResidentialSchool OrganizationType = "RESIDENTIAL_SCHOOL"
	OrgTypeSecureUnit        OrganizationType = "SECURE_UNIT"
)

// GenderIntake describes which genders an organization admits.
type GenderIntake string

const (
	GenderIntakeMixed  GenderIntake = "MIXED"
	GenderIntakeMale   GenderIntake = "MALE"
	GenderIntakeFemale GenderIntake = "FEMALE"
)

// CareOrganization models a registered care provider with capacity and
// capability attributes used by placement matching.
type CareOrganization struct {
	ID                    string
	Name                  string
	Type                  OrganizationType
	RegisteredCapacity    int
	CurrentOccupancy      int
	MinAge                int
	MaxAge                int
	GenderIntake          GenderIntake
	Specialisms           []string
	CulturalCapabilities  []string
	ReligiousCapabilities []string
	MedicalCapability     MedicalNeedsLevel
	BehavioralCapability  BehavioralRisk
	EducationOnSite       bool
	SENSupport            bool
	WheelchairAccessible  bool
	BaseWeeklyFeePence    int64
	Locality              string
	Postcode              string
	OfstedRating          string
	Active                bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// FreeBeds returns the number of unoccupied registered beds.
func (o *CareOrganization) FreeBeds() int {
	free := o.RegisteredCapacity - o.CurrentOccupancy
	if free < 0 {
		return 0
	}
	return free
}

// AcceptsGender reports whether the intake policy admits the given gender.
func (o *CareOrganization) AcceptsGender(g Gender) bool {
	switch o.GenderIntake {
	case GenderIntakeMixed:
		return true
	case GenderIntakeMale:
		return g == GenderMale
	case GenderIntakeFemale:
		return g == GenderFemale
	default:
		return false
	}
}
