package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	Repository
	created *Appointment
}

func (m *mockRepo) Create(ctx context.Context, a *Appointment) error {
	m.created = a
	return nil
}

func validAppointment() *Appointment {
	start := time.Now().Add(time.Hour)
	return &Appointment{
		BranchID:  uuid.New(),
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		StartsAt:  start,
		EndsAt:    start.Add(30 * time.Minute),
	}
}

func TestCreateDefaultsToScheduled(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	a := validAppointment()
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if repo.created.Status != StatusScheduled {
		t.Errorf("status = %q, want %q", repo.created.Status, StatusScheduled)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(&mockRepo{})

	missing := validAppointment()
	missing.PatientID = uuid.Nil
	if err := svc.Create(context.Background(), missing); err == nil {
		t.Error("expected error for missing patient")
	}

	backwards := validAppointment()
	backwards.EndsAt = backwards.StartsAt.Add(-time.Minute)
	if err := svc.Create(context.Background(), backwards); err == nil {
		t.Error("expected error when ends_at precedes starts_at")
	}

	badStatus := validAppointment()
	badStatus.Status = "postponed"
	if err := svc.Create(context.Background(), badStatus); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestValidStatuses(t *testing.T) {
	for _, s := range []string{StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow} {
		if !validStatus(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	if validStatus("") || validStatus("maybe") {
		t.Error("unexpected statuses accepted")
	}
}
