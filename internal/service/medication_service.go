package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/events"
	"github.com/spec-kit/carenotes/internal/repository"
	apperrors "github.com/spec-kit/carenotes/pkg/util"
)

// Interaction pairs flagged by the built-in checker, keyed by dm+d code.
// Stands in for a dm+d interaction API integration; lookups are
// deterministic so repeated checks against the same records agree.
var knownInteractions = map[[2]string]domain.InteractionAlert{
	{"322236009", "387207008"}: {Severity: "HIGH", Detail: "increased bleeding risk"},
	{"322236009", "767407005"}: {Severity: "MODERATE", Detail: "reduced antihypertensive effect"},
	{"387207008", "108537001"}: {Severity: "MODERATE", Detail: "serotonin syndrome risk"},
}

// MedicationService manages prescription records for children.
type MedicationService struct {
	medications repository.MedicationRepository
	children    repository.ChildRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// MedicationInput describes a prescription payload.
type MedicationInput struct {
	ChildID    string
	DMDCode    string
	Name       string
	Dose       string
	Route      string
	Frequency  string
	Prescriber string
	StartDate  time.Time
}

// NewMedicationService constructs the service.
func NewMedicationService(medications repository.MedicationRepository, children repository.ChildRepository, dispatcher events.Dispatcher, logger *zap.Logger) *MedicationService {
	return &MedicationService{
		medications: medications,
		children:    children,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// RecordMedication registers an active prescription and reports any
// interaction alerts against the child's other active medications.
func (s *MedicationService) RecordMedication(ctx context.Context, actorID string, input MedicationInput) (*domain.MedicationRecord, []domain.InteractionAlert, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, nil, apperrors.NewValidationError("medication name required", nil)
	}
	if strings.TrimSpace(input.DMDCode) == "" {
		return nil, nil, apperrors.NewValidationError("dm+d code required", nil)
	}
	if _, err := s.children.GetByID(ctx, input.ChildID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("child", map[string]any{"child_id": input.ChildID})
		}
		return nil, nil, apperrors.MapError(err)
	}

	active, err := s.medications.ListByChild(ctx, input.ChildID, true)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	record := &domain.MedicationRecord{
		ChildID:    input.ChildID,
		DMDCode:    strings.TrimSpace(input.DMDCode),
		Name:       strings.TrimSpace(input.Name),
		Dose:       strings.TrimSpace(input.Dose),
		Route:      strings.TrimSpace(input.Route),
		Frequency:  strings.TrimSpace(input.Frequency),
		Prescriber: strings.TrimSpace(input.Prescriber),
		StartDate:  input.StartDate,
		Status:     domain.MedicationStatusActive,
	}
	if record.StartDate.IsZero() {
		record.StartDate = time.Now()
	}
	if err := s.medications.Create(ctx, record); err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	alerts := interactionsAgainst(record, active)
	for _, alert := range alerts {
		s.logger.Warn("medication interaction flagged",
			zap.String("child_id", record.ChildID),
			zap.String("medication_a", alert.MedicationA),
			zap.String("medication_b", alert.MedicationB),
			zap.String("severity", alert.Severity),
		)
	}

	s.publishRecorded(ctx, actorID, record)
	return record, alerts, nil
}

// DiscontinueMedication closes an active prescription.
func (s *MedicationService) DiscontinueMedication(ctx context.Context, recordID string) (*domain.MedicationRecord, error) {
	record, err := s.medications.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("medication record", map[string]any{"record_id": recordID})
		}
		return nil, apperrors.MapError(err)
	}
	if record.Status == domain.MedicationStatusDiscontinued {
		return nil, apperrors.NewConflict("medication already discontinued", nil)
	}
	now := time.Now()
	record.Status = domain.MedicationStatusDiscontinued
	record.EndDate = &now
	if err := s.medications.Update(ctx, record); err != nil {
		return nil, apperrors.MapError(err)
	}
	return record, nil
}

// ListMedications returns a child's prescriptions, optionally only active.
func (s *MedicationService) ListMedications(ctx context.Context, childID string, activeOnly bool) ([]domain.MedicationRecord, error) {
	records, err := s.medications.ListByChild(ctx, childID, activeOnly)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return records, nil
}

// CheckInteractions evaluates all pairs of a child's active medications.
func (s *MedicationService) CheckInteractions(ctx context.Context, childID string) ([]domain.InteractionAlert, error) {
	active, err := s.medications.ListByChild(ctx, childID, true)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	var alerts []domain.InteractionAlert
	for i := range active {
		for j := i + 1; j < len(active); j++ {
			if alert, ok := lookupInteraction(&active[i], &active[j]); ok {
				alerts = append(alerts, alert)
			}
		}
	}
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].MedicationA != alerts[j].MedicationA {
			return alerts[i].MedicationA < alerts[j].MedicationA
		}
		return alerts[i].MedicationB < alerts[j].MedicationB
	})
	return alerts, nil
}

func interactionsAgainst(record *domain.MedicationRecord, others []domain.MedicationRecord) []domain.InteractionAlert {
	var alerts []domain.InteractionAlert
	for i := range others {
		if alert, ok := lookupInteraction(record, &others[i]); ok {
			alerts = append(alerts, alert)
		}
	}
	return alerts
}

func lookupInteraction(a, b *domain.MedicationRecord) (domain.InteractionAlert, bool) {
	alert, ok := knownInteractions[[2]string{a.DMDCode, b.DMDCode}]
	if !ok {
		alert, ok = knownInteractions[[2]string{b.DMDCode, a.DMDCode}]
	}
	if !ok {
		return domain.InteractionAlert{}, false
	}
	alert.MedicationA = a.Name
	alert.MedicationB = b.Name
	return alert, true
}

func (s *MedicationService) publishRecorded(ctx context.Context, actorID string, record *domain.MedicationRecord) {
	if s.dispatcher == nil {
		return
	}
	actor := events.Actor{System: true}
	if actorID != "" {
		actor = events.Actor{StaffID: &actorID}
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventMedicationRecorded,
		SubjectID: record.ID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload: events.MedicationRecordedPayload{
			ChildID: record.ChildID,
			DMDCode: record.DMDCode,
			Name:    record.Name,
		},
	})
}
