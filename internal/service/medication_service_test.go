package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/events"
)

func newMedicationFixture(t *testing.T) (*MedicationService, *fakeChildRepo) {
	t.Helper()
	children := newFakeChildRepo()
	svc := NewMedicationService(newFakeMedicationRepo(), children, events.NewInMemoryDispatcher(), zap.NewNop())
	return svc, children
}

func TestRecordMedicationFlagsKnownInteraction(t *testing.T) {
	svc, children := newMedicationFixture(t)
	ctx := context.Background()
	child := seedChild(t, children, 14)

	_, alerts, err := svc.RecordMedication(ctx, "staff-1", MedicationInput{
		ChildID: child.ID,
		DMDCode: "322236009",
		Name:    "Aspirin",
	})
	require.NoError(t, err)
	assert.Empty(t, alerts)

	record, alerts, err := svc.RecordMedication(ctx, "staff-1", MedicationInput{
		ChildID: child.ID,
		DMDCode: "387207008",
		Name:    "Sertraline",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MedicationStatusActive, record.Status)
	require.Len(t, alerts, 1)
	assert.Equal(t, "HIGH", alerts[0].Severity)
	assert.Equal(t, "Sertraline", alerts[0].MedicationA)
	assert.Equal(t, "Aspirin", alerts[0].MedicationB)
}

func TestRecordMedicationValidation(t *testing.T) {
	svc, children := newMedicationFixture(t)
	ctx := context.Background()
	child := seedChild(t, children, 14)

	_, _, err := svc.RecordMedication(ctx, "staff-1", MedicationInput{ChildID: child.ID, DMDCode: "322236009"})
	require.Error(t, err)

	_, _, err = svc.RecordMedication(ctx, "staff-1", MedicationInput{ChildID: child.ID, Name: "Aspirin"})
	require.Error(t, err)

	_, _, err = svc.RecordMedication(ctx, "staff-1", MedicationInput{ChildID: "missing", DMDCode: "322236009", Name: "Aspirin"})
	require.Error(t, err)
}

func TestCheckInteractionsCoversAllActivePairs(t *testing.T) {
	svc, children := newMedicationFixture(t)
	ctx := context.Background()
	child := seedChild(t, children, 14)

	for _, med := range []struct{ code, name string }{
		{"322236009", "Aspirin"},
		{"387207008", "Sertraline"},
		{"108537001", "Sumatriptan"},
	} {
		_, _, err := svc.RecordMedication(ctx, "staff-1", MedicationInput{
			ChildID: child.ID,
			DMDCode: med.code,
			Name:    med.name,
		})
		require.NoError(t, err)
	}

	alerts, err := svc.CheckInteractions(ctx, child.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	// Sorted by medication name pair; same input always yields the same
	// alert list.
	assert.Equal(t, "Aspirin", alerts[0].MedicationA)
	assert.Equal(t, "Sertraline", alerts[0].MedicationB)
	assert.Equal(t, "Sertraline", alerts[1].MedicationA)
	assert.Equal(t, "Sumatriptan", alerts[1].MedicationB)

	again, err := svc.CheckInteractions(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, alerts, again)
}

func TestDiscontinueMedicationClearsInteraction(t *testing.T) {
	svc, children := newMedicationFixture(t)
	ctx := context.Background()
	child := seedChild(t, children, 14)

	aspirin, _, err := svc.RecordMedication(ctx, "staff-1", MedicationInput{
		ChildID: child.ID,
		DMDCode: "322236009",
		Name:    "Aspirin",
	})
	require.NoError(t, err)

	_, _, err = svc.RecordMedication(ctx, "staff-1", MedicationInput{
		ChildID: child.ID,
		DMDCode: "387207008",
		Name:    "Sertraline",
	})
	require.NoError(t, err)

	discontinued, err := svc.DiscontinueMedication(ctx, aspirin.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MedicationStatusDiscontinued, discontinued.Status)
	require.NotNil(t, discontinued.EndDate)

	_, err = svc.DiscontinueMedication(ctx, aspirin.ID)
	require.Error(t, err)

	alerts, err := svc.CheckInteractions(ctx, child.ID)
	require.NoError(t, err)
	assert.Empty(t, alerts)

	active, err := svc.ListMedications(ctx, child.ID, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.ListMedications(ctx, child.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
