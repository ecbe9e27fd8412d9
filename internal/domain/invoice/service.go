package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, inv *Invoice) error {
	if inv.BranchID == uuid.Nil || inv.PatientID == uuid.Nil {
		return fmt.Errorf("branch_id and patient_id are required")
	}
	if inv.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if inv.Currency == "" {
		inv.Currency = "TRY"
	}
	if inv.Status == "" {
		inv.Status = StatusUnpaid
	}
	if !validStatus(inv.Status) {
		return fmt.Errorf("invalid status %q", inv.Status)
	}
	if inv.IssuedAt.IsZero() {
		inv.IssuedAt = time.Now()
	}
	return s.repo.Create(ctx, inv)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, inv *Invoice) error {
	if inv.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if !validStatus(inv.Status) {
		return fmt.Errorf("invalid status %q", inv.Status)
	}
	return s.repo.Update(ctx, inv)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// MarkPaid settles an unpaid invoice.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkPaid(ctx, id)
}

func (s *Service) List(ctx context.Context, branchID, patientID *uuid.UUID, status string, limit, offset int) ([]*Invoice, int, error) {
	return s.repo.List(ctx, branchID, patientID, status, limit, offset)
}
