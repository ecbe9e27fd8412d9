package activitylog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/middleware"
)

// Recorder adapts the repository to middleware.ActivityRecorder.
type Recorder struct {
	repo Repository
}

func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) Record(ctx context.Context, entry middleware.ActivityEntry) error {
	e := Entry{
		Username:        entry.Username,
		Role:            entry.Role,
		Action:          entry.Action,
		Method:          entry.Method,
		Path:            entry.Path,
		IPAddress:       entry.IPAddress,
		UserAgent:       entry.UserAgent,
		StatusCode:      entry.StatusCode,
		RequestID:       entry.RequestID,
		RequestDetail:   entry.RequestDetail,
		ResponseSummary: entry.ResponseSummary,
		CreatedAt:       entry.Timestamp,
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if id, err := uuid.Parse(entry.UserID); err == nil && id != uuid.Nil {
		e.UserID = &id
	}
	if id, err := uuid.Parse(entry.BranchID); err == nil && id != uuid.Nil {
		e.BranchID = &id
	}
	return r.repo.Insert(ctx, &e)
}
