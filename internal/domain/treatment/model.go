package treatment

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPlanned    = "planned"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
	StatusCancelled  = "cancelled"
)

// Treatment maps to the treatments table.
type Treatment struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	BranchID      uuid.UUID  `db:"branch_id" json:"branch_id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	Name          string     `db:"name" json:"name"`
	ToothNumber   *int       `db:"tooth_number" json:"tooth_number,omitempty"`
	Price         float64    `db:"price" json:"price"`
	Status        string     `db:"status" json:"status"`
	PerformedAt   *time.Time `db:"performed_at" json:"performed_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

func validStatus(s string) bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}
