package domain

import "time"

// MedicationStatus enumerates prescription states.
type MedicationStatus string

const (
	MedicationStatusActive       MedicationStatus = "ACTIVE"
	MedicationStatusDiscontinued MedicationStatus = "DISCONTINUED"
)

// MedicationRecord is a prescription entry coded against the NHS dm+d
// (Dictionary of Medicines and Devices).
type MedicationRecord struct {
	ID         string
	ChildID    string
	DMDCode    string
	Name       string
	Dose       string
	Route      string
	Frequency  string
	Prescriber string
	StartDate  time.Time
	EndDate    *time.Time
	Status     MedicationStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InteractionAlert flags a potential interaction between two medications.
type InteractionAlert struct {
	MedicationA string `json:"medication_a"`
	MedicationB string `json:"medication_b"`
	Severity    string `json:"severity"`
	Detail      string `json:"detail"`
}
