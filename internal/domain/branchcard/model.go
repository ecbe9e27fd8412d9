package branchcard

import (
	"time"

	"github.com/google/uuid"
)

// Card is a home page KPI tile definition.
type Card struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Icon          string    `db:"icon" json:"icon"`
	DisplayFormat string    `db:"display_format" json:"display_format"`
	SortOrder     int       `db:"sort_order" json:"sort_order"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// CardQuery is the SQL template behind a card. The statement receives the
// branch id as its single positional parameter.
type CardQuery struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CardID    uuid.UUID `db:"card_id" json:"card_id"`
	SQLText   string    `db:"sql_text" json:"sql_text"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CardValue is one computed tile. Error carries the failure marker for a card
// whose query could not run; the remaining cards are unaffected.
type CardValue struct {
	CardID uuid.UUID `json:"card_id"`
	Title  string    `json:"title"`
	Icon   string    `json:"icon"`
	Value  string    `json:"value"`
	Error  bool      `json:"error"`
}
