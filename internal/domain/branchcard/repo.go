package branchcard

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateCard(ctx context.Context, card *Card) error
	GetCard(ctx context.Context, id uuid.UUID) (*Card, error)
	UpdateCard(ctx context.Context, card *Card) error
	DeleteCard(ctx context.Context, id uuid.UUID) error
	ListCards(ctx context.Context, activeOnly bool) ([]*Card, error)

	CreateQuery(ctx context.Context, q *CardQuery) error
	UpdateQuery(ctx context.Context, q *CardQuery) error
	DeleteQuery(ctx context.Context, id uuid.UUID) error
	ActiveQueryForCard(ctx context.Context, cardID uuid.UUID) (*CardQuery, error)

	// RunCardQuery executes a card's statement with the branch id bound as $1
	// and returns the first column of the first row.
	RunCardQuery(ctx context.Context, sqlText string, branchID uuid.UUID) (float64, error)
}
