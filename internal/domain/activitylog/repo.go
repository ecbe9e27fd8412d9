package activitylog

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	UserID   *uuid.UUID
	BranchID *uuid.UUID
	Action   string
}

type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Entry, int, error)
}
