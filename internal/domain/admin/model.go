package admin

import (
	"time"

	"github.com/google/uuid"
)

// DataConnection stores credentials for a secondary analytical database. The
// password is kept and returned in plaintext; callers must re-supply it when
// running a query and it is checked against the stored value.
type DataConnection struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Host         string    `db:"host" json:"host"`
	Port         int       `db:"port" json:"port"`
	DatabaseName string    `db:"database_name" json:"database_name"`
	Username     string    `db:"username" json:"username"`
	Password     string    `db:"password" json:"password"`
	Engine       string    `db:"engine" json:"engine"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SavedQuery is a reusable SQL statement bound to a connection. UsageCount
// and LastRunAt are bumped on every successful execution. Category groups
// queries in the admin UI; IsPublic makes a query visible to other admins.
type SavedQuery struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	ConnectionID uuid.UUID  `db:"connection_id" json:"connection_id"`
	Name         string     `db:"name" json:"name"`
	Description  string     `db:"description" json:"description"`
	Category     string     `db:"category" json:"category"`
	IsPublic     bool       `db:"is_public" json:"is_public"`
	SQLText      string     `db:"sql_text" json:"sql_text"`
	UsageCount   int        `db:"usage_count" json:"usage_count"`
	LastRunAt    *time.Time `db:"last_run_at" json:"last_run_at,omitempty"`
	CreatedBy    *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// ConnectionQueryRequest is the body of POST /database-connections/:id/query.
type ConnectionQueryRequest struct {
	Password string `json:"password"`
	Query    string `json:"query"`
}

// AdhocQueryRequest is the body of POST /database/query with request-supplied
// connection parameters. Clients send the engine as "type"; "engine" is
// accepted as an alias.
type AdhocQueryRequest struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
	Type     string `json:"type"`
	Engine   string `json:"engine"`
	Query    string `json:"query"`
}

// EngineName resolves the requested engine from either field.
func (r AdhocQueryRequest) EngineName() string {
	if r.Type != "" {
		return r.Type
	}
	return r.Engine
}
