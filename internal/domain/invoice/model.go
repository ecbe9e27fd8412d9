package invoice

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusUnpaid    = "unpaid"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

// Invoice maps to the invoices table.
type Invoice struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	BranchID    uuid.UUID  `db:"branch_id" json:"branch_id"`
	PatientID   uuid.UUID  `db:"patient_id" json:"patient_id"`
	TreatmentID *uuid.UUID `db:"treatment_id" json:"treatment_id,omitempty"`
	Amount      float64    `db:"amount" json:"amount"`
	Currency    string     `db:"currency" json:"currency"`
	Status      string     `db:"status" json:"status"`
	IssuedAt    time.Time  `db:"issued_at" json:"issued_at"`
	PaidAt      *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

func validStatus(s string) bool {
	switch s {
	case StatusUnpaid, StatusPaid, StatusCancelled:
		return true
	}
	return false
}
