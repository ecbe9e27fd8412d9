package branchcard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type mockRepo struct {
	cards   []*Card
	queries map[uuid.UUID]*CardQuery
	results map[uuid.UUID]float64
	failing map[uuid.UUID]bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		queries: map[uuid.UUID]*CardQuery{},
		results: map[uuid.UUID]float64{},
		failing: map[uuid.UUID]bool{},
	}
}

func (m *mockRepo) addCard(title, format string, value float64, fail bool) *Card {
	card := &Card{ID: uuid.New(), Title: title, DisplayFormat: format, Active: true}
	m.cards = append(m.cards, card)
	m.queries[card.ID] = &CardQuery{ID: uuid.New(), CardID: card.ID, SQLText: "SELECT 1", Active: true}
	m.results[card.ID] = value
	m.failing[card.ID] = fail
	return card
}

func (m *mockRepo) CreateCard(ctx context.Context, card *Card) error { return nil }
func (m *mockRepo) GetCard(ctx context.Context, id uuid.UUID) (*Card, error) {
	return nil, fmt.Errorf("not implemented")
}
func (m *mockRepo) UpdateCard(ctx context.Context, card *Card) error   { return nil }
func (m *mockRepo) DeleteCard(ctx context.Context, id uuid.UUID) error { return nil }

func (m *mockRepo) ListCards(ctx context.Context, activeOnly bool) ([]*Card, error) {
	return m.cards, nil
}

func (m *mockRepo) CreateQuery(ctx context.Context, q *CardQuery) error { return nil }
func (m *mockRepo) UpdateQuery(ctx context.Context, q *CardQuery) error { return nil }
func (m *mockRepo) DeleteQuery(ctx context.Context, id uuid.UUID) error { return nil }

func (m *mockRepo) ActiveQueryForCard(ctx context.Context, cardID uuid.UUID) (*CardQuery, error) {
	q, ok := m.queries[cardID]
	if !ok {
		return nil, fmt.Errorf("no active query")
	}
	return q, nil
}

func (m *mockRepo) RunCardQuery(ctx context.Context, sqlText string, branchID uuid.UUID) (float64, error) {
	for cardID, q := range m.queries {
		if q.SQLText != sqlText {
			continue
		}
		if m.failing[cardID] {
			return 0, errors.New("query failed")
		}
		return m.results[cardID], nil
	}
	return 0, errors.New("unknown query")
}

func TestBranchDataComputesAllCards(t *testing.T) {
	repo := newMockRepo()
	repo.addCard("Toplam Hasta", "{value}", 250, false)
	svc := NewService(repo, zerolog.Nop())

	values, err := svc.BranchData(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("BranchData: %v", err)
	}
	if len(values) != 1 {
		t.Fatalf("got %d values", len(values))
	}
	if values[0].Value != "250" || values[0].Error {
		t.Errorf("value = %+v", values[0])
	}
}

func TestBranchDataIsolatesFailures(t *testing.T) {
	repo := newMockRepo()

	// Three cards with distinct SQL so the mock can tell them apart.
	good1 := repo.addCard("Gelir", "₺{value}", 1500.5, false)
	repo.queries[good1.ID].SQLText = "SELECT revenue"
	bad := repo.addCard("Bozuk Kart", "{value}", 0, true)
	repo.queries[bad.ID].SQLText = "SELECT broken"
	good2 := repo.addCard("Randevu", "{value}", 12, false)
	repo.queries[good2.ID].SQLText = "SELECT appts"

	svc := NewService(repo, zerolog.Nop())
	values, err := svc.BranchData(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("BranchData: %v", err)
	}
	if len(values) != 3 {
		t.Fatalf("got %d values, want 3", len(values))
	}

	if values[0].Error || values[0].Value != "₺1500.5" {
		t.Errorf("first card = %+v", values[0])
	}
	if !values[1].Error || values[1].Value != "-" {
		t.Errorf("failing card should carry error marker, got %+v", values[1])
	}
	if values[2].Error || values[2].Value != "12" {
		t.Errorf("third card = %+v", values[2])
	}
}

func TestBranchDataMissingQueryIsIsolated(t *testing.T) {
	repo := newMockRepo()
	card := repo.addCard("Sorgusuz", "{value}", 0, false)
	delete(repo.queries, card.ID)
	repo.addCard("Sağlam", "{value}", 7, false)

	svc := NewService(repo, zerolog.Nop())
	values, err := svc.BranchData(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("BranchData: %v", err)
	}
	if !values[0].Error {
		t.Error("card without query should be marked as error")
	}
	if values[1].Error || values[1].Value != "7" {
		t.Errorf("healthy card = %+v", values[1])
	}
}

func TestApplyFormat(t *testing.T) {
	cases := []struct {
		format string
		value  float64
		want   string
	}{
		{"₺{value}", 1500.5, "₺1500.5"},
		{"{value}", 42, "42"},
		{"", 3.25, "3.25"},
		{"{value} hasta", 250, "250 hasta"},
	}
	for _, tc := range cases {
		if got := applyFormat(tc.format, tc.value); got != tc.want {
			t.Errorf("applyFormat(%q, %v) = %q, want %q", tc.format, tc.value, got, tc.want)
		}
	}
}
