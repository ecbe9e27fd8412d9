package treatment

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

func (s *Service) Create(ctx context.Context, t *Treatment) error {
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	if t.BranchID == uuid.Nil || t.PatientID == uuid.Nil || t.DoctorID == uuid.Nil {
		return fmt.Errorf("branch_id, patient_id and doctor_id are required")
	}
	if t.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if t.ToothNumber != nil && (*t.ToothNumber < 11 || *t.ToothNumber > 48) {
		return fmt.Errorf("tooth_number must use FDI notation (11-48)")
	}
	if t.Status == "" {
		t.Status = StatusPlanned
	}
	if !validStatus(t.Status) {
		return fmt.Errorf("invalid status %q", t.Status)
	}
	return s.repo.Create(ctx, t)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Treatment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, t *Treatment) error {
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	if t.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if !validStatus(t.Status) {
		return fmt.Errorf("invalid status %q", t.Status)
	}
	return s.repo.Update(ctx, t)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, branchID, patientID *uuid.UUID, limit, offset int) ([]*Treatment, int, error) {
	return s.repo.List(ctx, branchID, patientID, limit, offset)
}
