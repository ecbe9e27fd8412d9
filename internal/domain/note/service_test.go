package note

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	Repository
	created *Note
}

func (m *mockRepo) Create(ctx context.Context, n *Note) error {
	m.created = n
	return nil
}

func TestCreateRequiresContent(t *testing.T) {
	svc := NewService(&mockRepo{})

	err := svc.Create(context.Background(), &Note{
		BranchID:  uuid.New(),
		PatientID: uuid.New(),
		AuthorID:  uuid.New(),
		Content:   "   ",
	})
	if err == nil {
		t.Error("expected error for blank content")
	}

	err = svc.Create(context.Background(), &Note{
		PatientID: uuid.New(),
		Content:   "kontrol randevusu planlandı",
	})
	if err == nil {
		t.Error("expected error for missing branch")
	}
}

func TestCreateStoresNote(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	n := &Note{
		BranchID:  uuid.New(),
		PatientID: uuid.New(),
		AuthorID:  uuid.New(),
		Content:   "üst sol 6 dolgu yapıldı",
	}
	if err := svc.Create(context.Background(), n); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if repo.created != n {
		t.Error("note not persisted")
	}
}
