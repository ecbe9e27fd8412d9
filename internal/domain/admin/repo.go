package admin

import (
	"context"

	"github.com/google/uuid"
)

type ConnectionRepository interface {
	Create(ctx context.Context, conn *DataConnection) error
	GetByID(ctx context.Context, id uuid.UUID) (*DataConnection, error)
	Update(ctx context.Context, conn *DataConnection) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*DataConnection, error)
}

type SavedQueryRepository interface {
	Create(ctx context.Context, q *SavedQuery) error
	GetByID(ctx context.Context, id uuid.UUID) (*SavedQuery, error)
	Update(ctx context.Context, q *SavedQuery) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*SavedQuery, error)

	// MarkExecuted bumps usage_count and last_run_at in a single atomic
	// statement. Concurrent executions may interleave; both increments land.
	MarkExecuted(ctx context.Context, id uuid.UUID) error
}
