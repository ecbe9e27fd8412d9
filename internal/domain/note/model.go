package note

import (
	"time"

	"github.com/google/uuid"
)

// Note is a free-text clinical note attached to a patient.
type Note struct {
	ID        uuid.UUID `db:"id" json:"id"`
	BranchID  uuid.UUID `db:"branch_id" json:"branch_id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	AuthorID  uuid.UUID `db:"author_id" json:"author_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
