package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlacementIsTerminal(t *testing.T) {
	cases := []struct {
		status PlacementStatus
		want   bool
	}{
		{PlacementStatusPendingArrival, false},
		{PlacementStatusActive, false},
		{PlacementStatusEnded, true},
		{PlacementStatusBreakdown, true},
	}
	for _, tc := range cases {
		p := Placement{Status: tc.status}
		assert.Equal(t, tc.want, p.IsTerminal(), "status %s", tc.status)
	}
}

func TestPlacementDurationDays(t *testing.T) {
	start := time.Now().AddDate(0, 0, -40)

	running := Placement{StartDate: start}
	assert.Equal(t, 40, running.DurationDays())

	end := start.AddDate(0, 0, 10)
	ended := Placement{StartDate: start, ActualEndDate: &end}
	assert.Equal(t, 10, ended.DurationDays())

	before := start.AddDate(0, 0, -1)
	backwards := Placement{StartDate: start, ActualEndDate: &before}
	assert.Zero(t, backwards.DurationDays())
}

func TestWeeklyCostPence(t *testing.T) {
	placement := &Placement{BaseWeeklyFeePence: 300000}
	fees := []PlacementFee{
		{FeeType: FeeTypeWeekly, AmountPence: 15000},
		{FeeType: FeeTypeOneOff, AmountPence: 99999},
		{FeeType: FeeTypeWeekly, AmountPence: 5000},
	}
	assert.Equal(t, int64(320000), WeeklyCostPence(placement, fees))
	assert.Equal(t, int64(300000), WeeklyCostPence(placement, nil))
}

func TestReviewIsOverdue(t *testing.T) {
	now := time.Now()
	due := now.AddDate(0, 0, -1)

	overdue := PlacementReview{DueDate: due}
	assert.True(t, overdue.IsOverdue(now))

	completed := PlacementReview{DueDate: due, CompletedAt: &now}
	assert.False(t, completed.IsOverdue(now))

	future := PlacementReview{DueDate: now.AddDate(0, 0, 7)}
	assert.False(t, future.IsOverdue(now))
}

func TestChildAgeAt(t *testing.T) {
	dob := time.Date(2012, 6, 15, 0, 0, 0, 0, time.UTC)
	child := Child{DateOfBirth: dob}

	assert.Equal(t, 13, child.AgeAt(time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 14, child.AgeAt(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 14, child.AgeAt(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestOrganizationFreeBeds(t *testing.T) {
	org := CareOrganization{RegisteredCapacity: 6, CurrentOccupancy: 4}
	assert.Equal(t, 2, org.FreeBeds())

	over := CareOrganization{RegisteredCapacity: 4, CurrentOccupancy: 5}
	assert.Zero(t, over.FreeBeds())
}

func TestOrganizationAcceptsGender(t *testing.T) {
	mixed := CareOrganization{GenderIntake: GenderIntakeMixed}
	assert.True(t, mixed.AcceptsGender(GenderMale))
	assert.True(t, mixed.AcceptsGender(GenderOther))

	female := CareOrganization{GenderIntake: GenderIntakeFemale}
	assert.True(t, female.AcceptsGender(GenderFemale))
	assert.False(t, female.AcceptsGender(GenderMale))
}

func TestTimeOffOverlaps(t *testing.T) {
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	request := TimeOffRequest{StartDate: start, EndDate: end}

	assert.True(t, request.Overlaps(start.AddDate(0, 0, 3), end.AddDate(0, 0, 3)))
	assert.True(t, request.Overlaps(start, end))
	assert.False(t, request.Overlaps(end.AddDate(0, 0, 1), end.AddDate(0, 0, 5)))
	assert.False(t, request.Overlaps(start.AddDate(0, 0, -5), start.AddDate(0, 0, -1)))
}
