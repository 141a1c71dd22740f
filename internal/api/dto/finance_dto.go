package dto

import (
	"time"

	"github.com/spec-kit/carenotes/internal/domain"
)

// DisbursePocketMoneyRequest payload.
type DisbursePocketMoneyRequest struct {
	ChildID     string                    `json:"child_id"`
	WeekNumber  int                       `json:"week_number"`
	Year        int                       `json:"year"`
	AmountPence int64                     `json:"amount_pence"`
	Method      domain.DisbursementMethod `json:"method"`
}

// DisbursementResponse represents one payment.
type DisbursementResponse struct {
	ID          string                    `json:"id"`
	ChildID     string                    `json:"child_id"`
	WeekNumber  int                       `json:"week_number"`
	Year        int                       `json:"year"`
	AmountPence int64                     `json:"amount_pence"`
	Method      domain.DisbursementMethod `json:"method"`
	DisbursedBy string                    `json:"disbursed_by"`
	CreatedAt   time.Time                 `json:"created_at"`
}

// DisbursementYearResponse lists a year's payments with the running total.
type DisbursementYearResponse struct {
	ChildID       string                 `json:"child_id"`
	Year          int                    `json:"year"`
	TotalPence    int64                  `json:"total_pence"`
	Disbursements []DisbursementResponse `json:"disbursements"`
}
