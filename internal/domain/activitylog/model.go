package activitylog

import (
	"time"

	"github.com/google/uuid"

	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/auth"
)

// Entry is one persisted audit row.
type Entry struct {
	ID              uuid.UUID              `db:"id" json:"id"`
	UserID          *uuid.UUID             `db:"user_id" json:"user_id,omitempty"`
	Username        string                 `db:"username" json:"username"`
	Role            auth.Role              `db:"role" json:"role"`
	BranchID        *uuid.UUID             `db:"branch_id" json:"branch_id,omitempty"`
	Action          string                 `db:"action" json:"action"`
	Method          string                 `db:"method" json:"method"`
	Path            string                 `db:"path" json:"path"`
	IPAddress       string                 `db:"ip_address" json:"ip_address"`
	UserAgent       string                 `db:"user_agent" json:"user_agent"`
	StatusCode      int                    `db:"status_code" json:"status_code"`
	RequestID       string                 `db:"request_id" json:"request_id"`
	RequestDetail   map[string]interface{} `db:"request_detail" json:"request_detail,omitempty"`
	ResponseSummary map[string]interface{} `db:"response_summary" json:"response_summary,omitempty"`
	CreatedAt       time.Time              `db:"created_at" json:"created_at"`
}
