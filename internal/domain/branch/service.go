package branch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, b *Branch) error {
	if b.Name == "" {
		return fmt.Errorf("name is required")
	}
	if b.Code == "" {
		return fmt.Errorf("code is required")
	}
	return s.repo.Create(ctx, b)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Branch, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, b *Branch) error {
	if b.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.repo.Update(ctx, b)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Branch, int, error) {
	return s.repo.List(ctx, limit, offset)
}
