package note

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, n *Note) error {
	if n.PatientID == uuid.Nil || n.BranchID == uuid.Nil {
		return fmt.Errorf("branch_id and patient_id are required")
	}
	if strings.TrimSpace(n.Content) == "" {
		return fmt.Errorf("content is required")
	}
	return s.repo.Create(ctx, n)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Note, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, n *Note) error {
	if strings.TrimSpace(n.Content) == "" {
		return fmt.Errorf("content is required")
	}
	return s.repo.Update(ctx, n)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Note, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}
