package appointment

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

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.BranchID == uuid.Nil || a.PatientID == uuid.Nil || a.DoctorID == uuid.Nil {
		return fmt.Errorf("branch_id, patient_id and doctor_id are required")
	}
	if a.StartsAt.IsZero() {
		return fmt.Errorf("starts_at is required")
	}
	if !a.EndsAt.IsZero() && !a.EndsAt.After(a.StartsAt) {
		return fmt.Errorf("ends_at must be after starts_at")
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !validStatus(a.Status) {
		return fmt.Errorf("invalid status %q", a.Status)
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Appointment) error {
	if !validStatus(a.Status) {
		return fmt.Errorf("invalid status %q", a.Status)
	}
	if !a.EndsAt.IsZero() && !a.EndsAt.After(a.StartsAt) {
		return fmt.Errorf("ends_at must be after starts_at")
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}
