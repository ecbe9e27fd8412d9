package branch

import (
	"time"

	"github.com/google/uuid"
)

// Branch maps to the branches table. Every other entity is scoped by a
// branch, so this is the root dimension of the whole system.
type Branch struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	Locale    string    `db:"locale" json:"locale"`
	Timezone  string    `db:"timezone" json:"timezone"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
