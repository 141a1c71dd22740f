package dto

import (
	"time"

	"github.com/spec-kit/carenotes/internal/domain"
)

// RecordMedicationRequest payload.
type RecordMedicationRequest struct {
	ChildID    string    `json:"child_id"`
	DMDCode    string    `json:"dmd_code"`
	Name       string    `json:"name"`
	Dose       string    `json:"dose"`
	Route      string    `json:"route"`
	Frequency  string    `json:"frequency"`
	Prescriber string    `json:"prescriber"`
	StartDate  time.Time `json:"start_date"`
}

// MedicationResponse represents a prescription record.
type MedicationResponse struct {
	ID         string                  `json:"id"`
	ChildID    string                  `json:"child_id"`
	DMDCode    string                  `json:"dmd_code"`
	Name       string                  `json:"name"`
	Dose       string                  `json:"dose"`
	Route      string                  `json:"route"`
	Frequency  string                  `json:"frequency"`
	Prescriber string                  `json:"prescriber"`
	StartDate  time.Time               `json:"start_date"`
	EndDate    *time.Time              `json:"end_date"`
	Status     domain.MedicationStatus `json:"status"`
	CreatedAt  time.Time               `json:"created_at"`
}

// RecordMedicationResponse couples the new record with any alerts.
type RecordMedicationResponse struct {
	Medication MedicationResponse        `json:"medication"`
	Alerts     []domain.InteractionAlert `json:"alerts"`
}
