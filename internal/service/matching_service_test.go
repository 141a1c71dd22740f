package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/events"
)

func newMatchingFixture(t *testing.T) (*MatchingService, *fakeChildRepo, *fakeOrgRepo, *fakeRequestRepo) {
	t.Helper()
	children := newFakeChildRepo()
	orgs := newFakeOrgRepo()
	requests := newFakeRequestRepo()
	svc := NewMatchingService(MatchingDependencies{
		RequestRepo: requests,
		ChildRepo:   children,
		OrgRepo:     orgs,
		Dispatcher:  events.NewInMemoryDispatcher(),
		Logger:      zap.NewNop(),
	})
	return svc, children, orgs, requests
}

func seedChild(t *testing.T, repo *fakeChildRepo, age int) *domain.Child {
	t.Helper()
	child := &domain.Child{
		ReferenceCode:  "CH-TEST1234",
		FirstName:      "Sam",
		LastName:       "Price",
		DateOfBirth:    time.Now().AddDate(-age, 0, -30),
		Gender:         domain.GenderFemale,
		LegalStatus:    domain.LegalStatusSection20,
		Status:         domain.ChildStatusLookedAfter,
		LocalAuthority: "Leeds",
		MedicalNeeds:   domain.MedicalNeedsNone,
		BehavioralRisk: domain.BehavioralRiskLow,
	}
	require.NoError(t, repo.Create(context.Background(), child))
	return child
}

func idealOrganization(name string) *domain.CareOrganization {
	return &domain.CareOrganization{
		Name:                 name,
		Type:                 domain.OrgTypeChildrensHome,
		RegisteredCapacity:   6,
		CurrentOccupancy:     2,
		MinAge:               8,
		MaxAge:               17,
		GenderIntake:         domain.GenderIntakeMixed,
		MedicalCapability:    domain.MedicalNeedsNursing,
		BehavioralCapability: domain.BehavioralRiskHigh,
		EducationOnSite:      true,
		SENSupport:           true,
		WheelchairAccessible: true,
		BaseWeeklyFeePence:   350000,
		Locality:             "Leeds",
		Active:               true,
	}
}

func TestFindSuitablePlacementsRankedByPercentage(t *testing.T) {
	svc, children, orgs, requests := newMatchingFixture(t)
	ctx := context.Background()
	child := seedChild(t, children, 12)

	strong := idealOrganization("Strong Home")
	require.NoError(t, orgs.Create(ctx, strong))

	weak := idealOrganization("Weak Home")
	weak.RegisteredCapacity = 4
	weak.CurrentOccupancy = 4
	weak.GenderIntake = domain.GenderIntakeMale
	require.NoError(t, orgs.Create(ctx, weak))

	request := &domain.PlacementRequest{ChildID: child.ID, Status: domain.RequestStatusOpen}
	require.NoError(t, requests.Create(ctx, request))

	scores, err := svc.FindSuitablePlacements(ctx, request.ID)
	require.NoError(t, err)
	require.Len(t, scores, 2)

	assert.Equal(t, strong.ID, scores[0].OrganizationID)
	assert.Greater(t, scores[0].Percentage, scores[1].Percentage)
	assert.Zero(t, scores[1].Scores.Capacity)
	assert.Contains(t, scores[1].Concerns, "no beds available")
}

func TestFindSuitablePlacementsBudgetFilter(t *testing.T) {
	svc, children, orgs, requests := newMatchingFixture(t)
	ctx := context.Background()
	child := seedChild(t, children, 12)

	affordable := idealOrganization("Affordable Home")
	affordable.BaseWeeklyFeePence = 200000
	require.NoError(t, orgs.Create(ctx, affordable))

	expensive := idealOrganization("Expensive Home")
	expensive.BaseWeeklyFeePence = 900000
	require.NoError(t, orgs.Create(ctx, expensive))

	maxFee := int64(250000)
	request := &domain.PlacementRequest{
		ChildID:           child.ID,
		MaxWeeklyFeePence: &maxFee,
		Status:            domain.RequestStatusOpen,
	}
	require.NoError(t, requests.Create(ctx, request))

	scores, err := svc.FindSuitablePlacements(ctx, request.ID)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, affordable.ID, scores[0].OrganizationID)
}

func TestFindSuitablePlacementsUnknownRequest(t *testing.T) {
	svc, _, _, _ := newMatchingFixture(t)

	_, err := svc.FindSuitablePlacements(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "placement request")
}

func TestScoreOrganizationAgeOutOfRangeIsUnsuitable(t *testing.T) {
	child := &domain.Child{
		DateOfBirth:    time.Now().AddDate(-6, 0, -30),
		Gender:         domain.GenderFemale,
		MedicalNeeds:   domain.MedicalNeedsNone,
		BehavioralRisk: domain.BehavioralRiskLow,
	}
	org := idealOrganization("Teens Only")
	org.MinAge = 13
	org.MaxAge = 17

	score := scoreOrganization(child, &domain.PlacementRequest{}, org)

	assert.Zero(t, score.Scores.AgeAppropriate)
	assert.Equal(t, domain.SuitabilityUnsuitable, score.Suitability)
	assert.NotEmpty(t, score.Concerns)
}

func TestScoreOrganizationStrongCandidate(t *testing.T) {
	child := &domain.Child{
		DateOfBirth:    time.Now().AddDate(-12, 0, -30),
		Gender:         domain.GenderFemale,
		MedicalNeeds:   domain.MedicalNeedsNone,
		BehavioralRisk: domain.BehavioralRiskLow,
	}
	org := idealOrganization("Strong Home")

	score := scoreOrganization(child, &domain.PlacementRequest{}, org)

	// Everything at full marks except the stub distance, which lands in
	// the 50km band and halves the location sub-score.
	assert.InDelta(t, capCapacity, score.Scores.Capacity, 0.001)
	assert.InDelta(t, capLocation*0.5, score.Scores.Location, 0.001)
	assert.InDelta(t, 95.0, score.Percentage, 0.001)
	assert.Equal(t, domain.SuitabilityExcellent, score.Suitability)
}

func TestScoreOrganizationSpecialismCoverage(t *testing.T) {
	child := &domain.Child{
		DateOfBirth:    time.Now().AddDate(-12, 0, -30),
		Gender:         domain.GenderFemale,
		MedicalNeeds:   domain.MedicalNeedsNone,
		BehavioralRisk: domain.BehavioralRiskLow,
	}
	request := &domain.PlacementRequest{
		RequiredSpecialisms: []string{"TRAUMA", "CSE", "AUTISM"},
	}
	org := idealOrganization("Partial Cover")
	org.Specialisms = []string{"TRAUMA", "CSE"}

	score := scoreOrganization(child, request, org)

	assert.InDelta(t, capSpecialisms*2.0/3.0, score.Scores.Specialisms, 0.001)
	assert.Contains(t, score.Concerns, "missing required specialisms")
}

func TestScoreOrganizationMedicalAndBehavioralTiers(t *testing.T) {
	child := &domain.Child{
		DateOfBirth:    time.Now().AddDate(-12, 0, -30),
		Gender:         domain.GenderFemale,
		MedicalNeeds:   domain.MedicalNeedsComplex,
		BehavioralRisk: domain.BehavioralRiskHigh,
	}
	org := idealOrganization("One Tier Short")
	org.MedicalCapability = domain.MedicalNeedsNursing
	org.BehavioralCapability = domain.BehavioralRiskMedium

	score := scoreOrganization(child, &domain.PlacementRequest{}, org)

	assert.InDelta(t, capMedical*0.4, score.Scores.Medical, 0.001)
	assert.InDelta(t, capBehavioral*0.5, score.Scores.Behavioral, 0.001)
}

func TestScoreOrganizationWheelchairAndSEN(t *testing.T) {
	child := &domain.Child{
		DateOfBirth:    time.Now().AddDate(-12, 0, -30),
		Gender:         domain.GenderFemale,
		MedicalNeeds:   domain.MedicalNeedsNone,
		BehavioralRisk: domain.BehavioralRiskLow,
		SENSupport:     true,
		WheelchairUser: true,
	}
	org := idealOrganization("Inaccessible")
	org.SENSupport = false
	org.WheelchairAccessible = false

	score := scoreOrganization(child, &domain.PlacementRequest{}, org)

	assert.Zero(t, score.Scores.Education)
	assert.Zero(t, score.Scores.Accessibility)
	assert.Contains(t, score.Concerns, "no SEN support")
	assert.Contains(t, score.Concerns, "not wheelchair accessible")
}

func TestSuitabilityForPercentage(t *testing.T) {
	cases := []struct {
		pct  float64
		want domain.SuitabilityLevel
	}{
		{95, domain.SuitabilityExcellent},
		{90, domain.SuitabilityExcellent},
		{80, domain.SuitabilityGood},
		{65, domain.SuitabilityAdequate},
		{45, domain.SuitabilityMarginal},
		{20, domain.SuitabilityUnsuitable},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.SuitabilityForPercentage(tc.pct), "pct %.0f", tc.pct)
	}
}

func TestCreateRequestDefaultsAndValidation(t *testing.T) {
	svc, children, _, _ := newMatchingFixture(t)
	ctx := context.Background()
	child := seedChild(t, children, 10)

	request, err := svc.CreateRequest(ctx, PlacementRequestInput{ChildID: child.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.PlacementTypePlanned, request.RequestedType)
	assert.Equal(t, domain.UrgencyStandard, request.Urgency)
	assert.Equal(t, domain.RequestStatusOpen, request.Status)

	_, err = svc.CreateRequest(ctx, PlacementRequestInput{ChildID: "missing"})
	require.Error(t, err)

	badFee := int64(-100)
	_, err = svc.CreateRequest(ctx, PlacementRequestInput{ChildID: child.ID, MaxWeeklyFeePence: &badFee})
	require.Error(t, err)
}

func TestCloseRequestTwiceConflicts(t *testing.T) {
	svc, children, _, _ := newMatchingFixture(t)
	ctx := context.Background()
	child := seedChild(t, children, 10)

	request, err := svc.CreateRequest(ctx, PlacementRequestInput{ChildID: child.ID})
	require.NoError(t, err)

	closed, err := svc.CloseRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusClosed, closed.Status)

	_, err = svc.CloseRequest(ctx, request.ID)
	require.Error(t, err)
}
