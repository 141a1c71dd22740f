package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/events"
	"github.com/spec-kit/carenotes/internal/repository"
)

func newHRFixture(t *testing.T) *HRService {
	t.Helper()
	return NewHRService(HRDependencies{
		EmployeeRepo:  newFakeEmployeeRepo(),
		TimeOffRepo:   newFakeTimeOffRepo(),
		ShiftSwapRepo: newFakeShiftSwapRepo(),
		Dispatcher:    events.NewInMemoryDispatcher(),
	})
}

func seedEmployee(t *testing.T, svc *HRService, staffID string) *domain.EmployeeProfile {
	t.Helper()
	profile, err := svc.CreateEmployeeProfile(context.Background(), EmployeeProfileInput{
		StaffID:         staffID,
		JobTitle:        "Residential Care Worker",
		ContractedHours: 37.5,
		AnnualLeaveDays: 28,
	})
	require.NoError(t, err)
	return profile
}

func TestCreateEmployeeProfileDefaultsAndDuplicate(t *testing.T) {
	svc := newHRFixture(t)
	ctx := context.Background()

	profile := seedEmployee(t, svc, "staff-1")
	assert.Equal(t, domain.ContractPermanent, profile.ContractType)

	_, err := svc.CreateEmployeeProfile(ctx, EmployeeProfileInput{StaffID: "staff-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = svc.CreateEmployeeProfile(ctx, EmployeeProfileInput{StaffID: "  "})
	require.Error(t, err)

	_, err = svc.CreateEmployeeProfile(ctx, EmployeeProfileInput{StaffID: "staff-2", ContractedHours: -1})
	require.Error(t, err)
}

func TestRequestTimeOffRejectsOverlap(t *testing.T) {
	svc := newHRFixture(t)
	ctx := context.Background()
	profile := seedEmployee(t, svc, "staff-1")

	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	first, err := svc.RequestTimeOff(ctx, profile.ID, "", start, end)
	require.NoError(t, err)
	assert.Equal(t, domain.TimeOffAnnualLeave, first.Type)
	assert.Equal(t, domain.TimeOffStatusPending, first.Status)

	// Overlapping window, same employee.
	_, err = svc.RequestTimeOff(ctx, profile.ID, domain.TimeOffSick, start.AddDate(0, 0, 3), end.AddDate(0, 0, 3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlapping")

	// A different employee is free to book the same window.
	other := seedEmployee(t, svc, "staff-2")
	_, err = svc.RequestTimeOff(ctx, other.ID, "", start, end)
	require.NoError(t, err)

	// End before start.
	_, err = svc.RequestTimeOff(ctx, profile.ID, "", end.AddDate(1, 0, 0), start.AddDate(1, 0, 0))
	require.Error(t, err)
}

func TestDecideTimeOffOnce(t *testing.T) {
	svc := newHRFixture(t)
	ctx := context.Background()
	profile := seedEmployee(t, svc, "staff-1")

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	request, err := svc.RequestTimeOff(ctx, profile.ID, "", start, start.AddDate(0, 0, 2))
	require.NoError(t, err)

	decided, err := svc.DecideTimeOff(ctx, "manager-1", request.ID, false, "short staffed that week")
	require.NoError(t, err)
	assert.Equal(t, domain.TimeOffStatusDenied, decided.Status)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, "manager-1", *decided.DecidedBy)
	require.NotNil(t, decided.DecisionNote)

	_, err = svc.DecideTimeOff(ctx, "manager-1", request.ID, true, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already decided")
}

func TestDeniedTimeOffFreesTheWindow(t *testing.T) {
	svc := newHRFixture(t)
	ctx := context.Background()
	profile := seedEmployee(t, svc, "staff-1")

	start := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	request, err := svc.RequestTimeOff(ctx, profile.ID, "", start, start.AddDate(0, 0, 4))
	require.NoError(t, err)

	_, err = svc.DecideTimeOff(ctx, "manager-1", request.ID, false, "")
	require.NoError(t, err)

	_, err = svc.RequestTimeOff(ctx, profile.ID, "", start, start.AddDate(0, 0, 4))
	require.NoError(t, err)
}

func TestShiftSwapLifecycle(t *testing.T) {
	svc := newHRFixture(t)
	ctx := context.Background()
	alpha := seedEmployee(t, svc, "staff-1")
	beta := seedEmployee(t, svc, "staff-2")

	shiftDate := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	_, err := svc.RequestShiftSwap(ctx, alpha.ID, alpha.ID, shiftDate, domain.ShiftEarly)
	require.Error(t, err)

	_, err = svc.RequestShiftSwap(ctx, alpha.ID, "missing", shiftDate, domain.ShiftEarly)
	require.Error(t, err)

	swap, err := svc.RequestShiftSwap(ctx, alpha.ID, beta.ID, shiftDate, domain.ShiftNight)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftSwapRequested, swap.Status)

	// Approval before acceptance is rejected.
	_, err = svc.DecideShiftSwap(ctx, "manager-1", swap.ID, true)
	require.Error(t, err)

	accepted, err := svc.AcceptShiftSwap(ctx, swap.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftSwapAccepted, accepted.Status)

	_, err = svc.AcceptShiftSwap(ctx, swap.ID)
	require.Error(t, err)

	approved, err := svc.DecideShiftSwap(ctx, "manager-1", swap.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftSwapApproved, approved.Status)
	require.NotNil(t, approved.DecidedBy)

	_, err = svc.DecideShiftSwap(ctx, "manager-1", swap.ID, false)
	require.Error(t, err)
}

func TestListShiftSwaps(t *testing.T) {
	svc := newHRFixture(t)
	ctx := context.Background()
	alpha := seedEmployee(t, svc, "staff-1")
	beta := seedEmployee(t, svc, "staff-2")

	_, err := svc.RequestShiftSwap(ctx, alpha.ID, beta.ID, time.Now().AddDate(0, 0, 7), domain.ShiftLate)
	require.NoError(t, err)

	swaps, err := svc.ListShiftSwaps(ctx, repository.ShiftSwapFilter{})
	require.NoError(t, err)
	assert.Len(t, swaps, 1)
}
