package domain

import "time"

// DisbursementMethod enumerates how pocket money was handed over.
type DisbursementMethod string

const (
	DisburseCash         DisbursementMethod = "CASH"
	DisburseBankTransfer DisbursementMethod = "BANK_TRANSFER"
	DisburseSavings      DisbursementMethod = "SAVINGS"
)

// PocketMoneyDisbursement records one weekly pocket money payment to a
// child. At most one disbursement may exist per (child, week, year).
type PocketMoneyDisbursement struct {
	ID          string
	ChildID     string
	WeekNumber  int
	Year        int
	AmountPence int64
	Method      DisbursementMethod
	DisbursedBy string
	CreatedAt   time.Time
}
