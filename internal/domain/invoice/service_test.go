package invoice

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	Repository
	created *Invoice
	paid    []uuid.UUID
}

func (m *mockRepo) Create(ctx context.Context, inv *Invoice) error {
	m.created = inv
	return nil
}

func (m *mockRepo) MarkPaid(ctx context.Context, id uuid.UUID) error {
	m.paid = append(m.paid, id)
	return nil
}

func TestCreateDefaults(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	inv := &Invoice{BranchID: uuid.New(), PatientID: uuid.New(), Amount: 750}
	if err := svc.Create(context.Background(), inv); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if repo.created.Currency != "TRY" {
		t.Errorf("currency = %q, want TRY", repo.created.Currency)
	}
	if repo.created.Status != StatusUnpaid {
		t.Errorf("status = %q, want %q", repo.created.Status, StatusUnpaid)
	}
	if repo.created.IssuedAt.IsZero() {
		t.Error("issued_at should default to now")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(&mockRepo{})
	branch, patient := uuid.New(), uuid.New()

	cases := []struct {
		name string
		inv  Invoice
	}{
		{"missing patient", Invoice{BranchID: branch, Amount: 100}},
		{"zero amount", Invoice{BranchID: branch, PatientID: patient}},
		{"negative amount", Invoice{BranchID: branch, PatientID: patient, Amount: -5}},
		{"bad status", Invoice{BranchID: branch, PatientID: patient, Amount: 100, Status: "refunded"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Create(context.Background(), &tc.inv); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestMarkPaidDelegates(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	id := uuid.New()
	if err := svc.MarkPaid(context.Background(), id); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if len(repo.paid) != 1 || repo.paid[0] != id {
		t.Errorf("paid = %v", repo.paid)
	}
}
