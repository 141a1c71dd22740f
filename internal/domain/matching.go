package domain

// SuitabilityLevel buckets a match percentage into a qualitative grade.
type SuitabilityLevel string

const (
	SuitabilityExcellent  SuitabilityLevel = "EXCELLENT"
	SuitabilityGood       SuitabilityLevel = "GOOD"
	SuitabilityAdequate   SuitabilityLevel = "ADEQUATE"
	SuitabilityMarginal   SuitabilityLevel = "MARGINAL"
	SuitabilityUnsuitable SuitabilityLevel = "UNSUITABLE"
)

// SuitabilityForPercentage maps a normalized score to its grade.
func SuitabilityForPercentage(pct float64) SuitabilityLevel {
	switch {
	case pct >= 90:
		return SuitabilityExcellent
	case pct >= 75:
		return SuitabilityGood
	case pct >= 60:
		return SuitabilityAdequate
	case pct >= 40:
		return SuitabilityMarginal
	default:
		return SuitabilityUnsuitable
	}
}

// SubScores holds the ten weighted matching sub-criteria. Each value is
// capped independently; see the matching service for the rule table.
type SubScores struct {
	Capacity          float64 `json:"capacity"`
	Location          float64 `json:"location"`
	Specialisms       float64 `json:"specialisms"`
	AgeAppropriate    float64 `json:"age_appropriate"`
	Gender            float64 `json:"gender"`
	CulturalReligious float64 `json:"cultural_religious"`
	Medical           float64 `json:"medical"`
	Behavioral        float64 `json:"behavioral"`
	Education         float64 `json:"education"`
	Accessibility     float64 `json:"accessibility"`
}

// Total sums all sub-scores into the raw total.
func (s SubScores) Total() float64 {
	return s.Capacity + s.Location + s.Specialisms + s.AgeAppropriate +
		s.Gender + s.CulturalReligious + s.Medical + s.Behavioral +
		s.Education + s.Accessibility
}

// MatchScore is one ranked candidate organization for a placement request.
type MatchScore struct {
	OrganizationID   string           `json:"organization_id"`
	OrganizationName string           `json:"organization_name"`
	Scores           SubScores        `json:"scores"`
	RawTotal         float64          `json:"raw_total"`
	Percentage       float64          `json:"percentage"`
	Suitability      SuitabilityLevel `json:"suitability"`
	Recommendations  []string         `json:"recommendations"`
	Concerns         []string         `json:"concerns"`
}
