package invoice

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, branchID, patientID *uuid.UUID, status string, limit, offset int) ([]*Invoice, int, error)
	MarkPaid(ctx context.Context, id uuid.UUID) error
}
