package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/events"
)

func newFinanceFixture(t *testing.T) (*FinanceService, *fakeChildRepo) {
	t.Helper()
	children := newFakeChildRepo()
	svc := NewFinanceService(&fakePocketMoneyRepo{}, children, events.NewInMemoryDispatcher())
	return svc, children
}

func TestDisbursePocketMoneyDefaultsToCash(t *testing.T) {
	svc, children := newFinanceFixture(t)
	ctx := context.Background()
	child := seedChild(t, children, 11)

	disbursement, err := svc.DisbursePocketMoney(ctx, DisbursementInput{
		ChildID:     child.ID,
		WeekNumber:  34,
		Year:        2026,
		AmountPence: 1000,
		DisbursedBy: "staff-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DisburseCash, disbursement.Method)
}

func TestDisbursePocketMoneyDuplicateWeek(t *testing.T) {
	svc, children := newFinanceFixture(t)
	ctx := context.Background()
	child := seedChild(t, children, 11)

	input := DisbursementInput{
		ChildID:     child.ID,
		WeekNumber:  10,
		Year:        2026,
		AmountPence: 1500,
		DisbursedBy: "staff-1",
	}
	_, err := svc.DisbursePocketMoney(ctx, input)
	require.NoError(t, err)

	_, err = svc.DisbursePocketMoney(ctx, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already disbursed")

	// Same week in a different year is fine.
	input.Year = 2027
	_, err = svc.DisbursePocketMoney(ctx, input)
	require.NoError(t, err)
}

func TestDisbursePocketMoneyValidation(t *testing.T) {
	svc, children := newFinanceFixture(t)
	ctx := context.Background()
	child := seedChild(t, children, 11)

	cases := []struct {
		name  string
		input DisbursementInput
	}{
		{"week too low", DisbursementInput{ChildID: child.ID, WeekNumber: 0, Year: 2026, AmountPence: 1000}},
		{"week too high", DisbursementInput{ChildID: child.ID, WeekNumber: 54, Year: 2026, AmountPence: 1000}},
		{"year invalid", DisbursementInput{ChildID: child.ID, WeekNumber: 5, Year: 1999, AmountPence: 1000}},
		{"zero amount", DisbursementInput{ChildID: child.ID, WeekNumber: 5, Year: 2026, AmountPence: 0}},
		{"unknown child", DisbursementInput{ChildID: "missing", WeekNumber: 5, Year: 2026, AmountPence: 1000}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.DisbursePocketMoney(ctx, tc.input)
			require.Error(t, err)
		})
	}
}

func TestYearTotalPence(t *testing.T) {
	svc, children := newFinanceFixture(t)
	ctx := context.Background()
	child := seedChild(t, children, 11)

	for week, amount := range map[int]int64{1: 1000, 2: 1000, 3: 1250} {
		_, err := svc.DisbursePocketMoney(ctx, DisbursementInput{
			ChildID:     child.ID,
			WeekNumber:  week,
			Year:        2026,
			AmountPence: amount,
			DisbursedBy: "staff-1",
		})
		require.NoError(t, err)
	}
	_, err := svc.DisbursePocketMoney(ctx, DisbursementInput{
		ChildID:     child.ID,
		WeekNumber:  1,
		Year:        2025,
		AmountPence: 900,
		DisbursedBy: "staff-1",
	})
	require.NoError(t, err)

	total, err := svc.YearTotalPence(ctx, child.ID, 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(3250), total)

	total, err = svc.YearTotalPence(ctx, child.ID, 2024)
	require.NoError(t, err)
	assert.Zero(t, total)
}
