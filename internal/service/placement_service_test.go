package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/events"
)

type placementFixture struct {
	svc        *PlacementService
	children   *fakeChildRepo
	orgs       *fakeOrgRepo
	requests   *fakeRequestRepo
	placements *fakePlacementRepo
	fees       *fakeFeeRepo
	reviews    *fakeReviewRepo
	agreements *fakeAgreementRepo
}

func newPlacementFixture(t *testing.T) *placementFixture {
	t.Helper()
	f := &placementFixture{
		children:   newFakeChildRepo(),
		orgs:       newFakeOrgRepo(),
		requests:   newFakeRequestRepo(),
		placements: newFakePlacementRepo(),
		fees:       &fakeFeeRepo{},
		reviews:    newFakeReviewRepo(),
		agreements: newFakeAgreementRepo(),
	}
	f.svc = NewPlacementService(PlacementDependencies{
		PlacementRepo: f.placements,
		FeeRepo:       f.fees,
		ReviewRepo:    f.reviews,
		AgreementRepo: f.agreements,
		RequestRepo:   f.requests,
		ChildRepo:     f.children,
		OrgRepo:       f.orgs,
		Dispatcher:    events.NewInMemoryDispatcher(),
	})
	return f
}

func (f *placementFixture) seed(t *testing.T) (*domain.Child, *domain.CareOrganization) {
	t.Helper()
	ctx := context.Background()
	child := seedChild(t, f.children, 12)
	org := idealOrganization("Oak House")
	require.NoError(t, f.orgs.Create(ctx, org))
	return child, org
}

func TestCreatePlacementHappyPath(t *testing.T) {
	f := newPlacementFixture(t)
	ctx := context.Background()
	child, org := f.seed(t)

	request := &domain.PlacementRequest{ChildID: child.ID, Status: domain.RequestStatusOpen}
	require.NoError(t, f.requests.Create(ctx, request))

	placement, err := f.svc.CreatePlacement(ctx, "staff-1", PlacementCreateInput{
		ChildID:        child.ID,
		OrganizationID: org.ID,
		RequestID:      &request.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PlacementStatusPendingArrival, placement.Status)
	assert.Equal(t, domain.PlacementTypePlanned, placement.Type)
	assert.Regexp(t, `^PL-[0-9A-F]{8}$`, placement.ReferenceKey)
	assert.Equal(t, org.BaseWeeklyFeePence, placement.BaseWeeklyFeePence)

	reviews, err := f.reviews.ListByPlacement(ctx, placement.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, domain.ReviewTypeInitial, reviews[0].ReviewType)
	wantDue := placement.StartDate.AddDate(0, 0, domain.InitialReviewAfterDays)
	assert.WithinDuration(t, wantDue, reviews[0].DueDate, time.Second)

	updatedChild, _ := f.children.GetByID(ctx, child.ID)
	assert.Equal(t, domain.ChildStatusPlaced, updatedChild.Status)

	updatedOrg, _ := f.orgs.GetByID(ctx, org.ID)
	assert.Equal(t, org.CurrentOccupancy+1, updatedOrg.CurrentOccupancy)

	updatedRequest, _ := f.requests.GetByID(ctx, request.ID)
	assert.Equal(t, domain.RequestStatusMatched, updatedRequest.Status)
}

func TestCreatePlacementRejectsSecondOpenPlacement(t *testing.T) {
	f := newPlacementFixture(t)
	ctx := context.Background()
	child, org := f.seed(t)

	_, err := f.svc.CreatePlacement(ctx, "staff-1", PlacementCreateInput{
		ChildID:        child.ID,
		OrganizationID: org.ID,
	})
	require.NoError(t, err)

	_, err = f.svc.CreatePlacement(ctx, "staff-1", PlacementCreateInput{
		ChildID:        child.ID,
		OrganizationID: org.ID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open placement")
}

func TestCreatePlacementRejectsFullOrInactiveOrganization(t *testing.T) {
	f := newPlacementFixture(t)
	ctx := context.Background()
	child, _ := f.seed(t)

	full := idealOrganization("Full House")
	full.RegisteredCapacity = 3
	full.CurrentOccupancy = 3
	require.NoError(t, f.orgs.Create(ctx, full))

	_, err := f.svc.CreatePlacement(ctx, "staff-1", PlacementCreateInput{
		ChildID:        child.ID,
		OrganizationID: full.ID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity")

	inactive := idealOrganization("Closed House")
	inactive.Active = false
	require.NoError(t, f.orgs.Create(ctx, inactive))

	_, err = f.svc.CreatePlacement(ctx, "staff-1", PlacementCreateInput{
		ChildID:        child.ID,
		OrganizationID: inactive.ID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactive")
}

func TestConfirmArrivalTransitions(t *testing.T) {
	f := newPlacementFixture(t)
	ctx := context.Background()
	child, org := f.seed(t)

	placement, err := f.svc.CreatePlacement(ctx, "staff-1", PlacementCreateInput{
		ChildID:        child.ID,
		OrganizationID: org.ID,
	})
	require.NoError(t, err)

	confirmed, err := f.svc.ConfirmArrival(ctx, "staff-1", placement.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlacementStatusActive, confirmed.Status)

	_, err = f.svc.ConfirmArrival(ctx, "staff-1", placement.ID)
	require.Error(t, err)
}

func TestEndPlacementPlannedAndEmergency(t *testing.T) {
	f := newPlacementFixture(t)
	ctx := context.Background()
	child, org := f.seed(t)

	placement, err := f.svc.CreatePlacement(ctx, "staff-1", PlacementCreateInput{
		ChildID:        child.ID,
		OrganizationID: org.ID,
	})
	require.NoError(t, err)

	// Only ACTIVE placements can end.
	_, err = f.svc.EndPlacement(ctx, "staff-1", placement.ID, "", false)
	require.Error(t, err)

	_, err = f.svc.ConfirmArrival(ctx, "staff-1", placement.ID)
	require.NoError(t, err)

	// Emergency endings need a reason.
	_, err = f.svc.EndPlacement(ctx, "staff-1", placement.ID, "  ", true)
	require.Error(t, err)

	ended, err := f.svc.EndPlacement(ctx, "staff-1", placement.ID, "placement broke down", true)
	require.NoError(t, err)
	assert.Equal(t, domain.PlacementStatusBreakdown, ended.Status)
	require.NotNil(t, ended.ActualEndDate)
	require.NotNil(t, ended.EndReason)
	assert.Equal(t, "placement broke down", *ended.EndReason)

	updatedChild, _ := f.children.GetByID(ctx, child.ID)
	assert.Equal(t, domain.ChildStatusLookedAfter, updatedChild.Status)

	updatedOrg, _ := f.orgs.GetByID(ctx, org.ID)
	assert.Equal(t, org.CurrentOccupancy, updatedOrg.CurrentOccupancy)
}

func TestAddFeeAndWeeklyCost(t *testing.T) {
	f := newPlacementFixture(t)
	ctx := context.Background()
	child, org := f.seed(t)

	placement, err := f.svc.CreatePlacement(ctx, "staff-1", PlacementCreateInput{
		ChildID:        child.ID,
		OrganizationID: org.ID,
	})
	require.NoError(t, err)

	_, err = f.svc.AddFee(ctx, placement.ID, domain.FeeTypeWeekly, "therapy sessions", 15000)
	require.NoError(t, err)
	_, err = f.svc.AddFee(ctx, placement.ID, domain.FeeTypeOneOff, "placement setup", 50000)
	require.NoError(t, err)

	_, err = f.svc.AddFee(ctx, placement.ID, domain.FeeTypeWeekly, "bad", 0)
	require.Error(t, err)
	_, err = f.svc.AddFee(ctx, placement.ID, domain.FeeType("MONTHLY"), "bad", 100)
	require.Error(t, err)

	cost, err := f.svc.WeeklyCost(ctx, placement.ID)
	require.NoError(t, err)
	assert.Equal(t, org.BaseWeeklyFeePence+15000, cost)
}

func TestCompleteReviewSchedulesNextStatutory(t *testing.T) {
	f := newPlacementFixture(t)
	ctx := context.Background()
	child, org := f.seed(t)

	placement, err := f.svc.CreatePlacement(ctx, "staff-1", PlacementCreateInput{
		ChildID:        child.ID,
		OrganizationID: org.ID,
	})
	require.NoError(t, err)

	reviews, err := f.svc.ListReviews(ctx, placement.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	completed, err := f.svc.CompleteReview(ctx, reviews[0].ID, "settling in well")
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)
	require.NotNil(t, completed.OutcomeNotes)

	reviews, err = f.svc.ListReviews(ctx, placement.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	var next *domain.PlacementReview
	for i := range reviews {
		if reviews[i].CompletedAt == nil {
			next = &reviews[i]
		}
	}
	require.NotNil(t, next)
	assert.Equal(t, domain.ReviewTypeStatutory, next.ReviewType)
	wantDue := time.Now().AddDate(0, 0, domain.SubsequentReviewAfterDays)
	assert.WithinDuration(t, wantDue, next.DueDate, time.Minute)

	_, err = f.svc.CompleteReview(ctx, completed.ID, "")
	require.Error(t, err)
}

func TestCompleteReviewSkipsNextWhenPlacementEnded(t *testing.T) {
	f := newPlacementFixture(t)
	ctx := context.Background()
	child, org := f.seed(t)

	placement, err := f.svc.CreatePlacement(ctx, "staff-1", PlacementCreateInput{
		ChildID:        child.ID,
		OrganizationID: org.ID,
	})
	require.NoError(t, err)
	_, err = f.svc.ConfirmArrival(ctx, "staff-1", placement.ID)
	require.NoError(t, err)
	_, err = f.svc.EndPlacement(ctx, "staff-1", placement.ID, "moved on", false)
	require.NoError(t, err)

	reviews, err := f.svc.ListReviews(ctx, placement.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	_, err = f.svc.CompleteReview(ctx, reviews[0].ID, "closing review")
	require.NoError(t, err)

	reviews, err = f.svc.ListReviews(ctx, placement.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestAgreementSigningFlow(t *testing.T) {
	f := newPlacementFixture(t)
	ctx := context.Background()
	child, org := f.seed(t)

	placement, err := f.svc.CreatePlacement(ctx, "staff-1", PlacementCreateInput{
		ChildID:        child.ID,
		OrganizationID: org.ID,
	})
	require.NoError(t, err)

	agreement, err := f.svc.CreateAgreement(ctx, placement.ID, "PLACEMENT_PLAN")
	require.NoError(t, err)
	assert.Equal(t, domain.AgreementStatusDraft, agreement.Status)

	_, err = f.svc.CreateAgreement(ctx, placement.ID, "  ")
	require.Error(t, err)

	signed, err := f.svc.SignAgreement(ctx, agreement.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.AgreementStatusPartiallySigned, signed.Status)
	assert.True(t, signed.SignedByAuthority)

	_, err = f.svc.SignAgreement(ctx, agreement.ID, true)
	require.Error(t, err)

	complete, err := f.svc.SignAgreement(ctx, agreement.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.AgreementStatusComplete, complete.Status)
	assert.True(t, complete.SignedByProvider)
}
