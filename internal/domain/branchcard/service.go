package branchcard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateCard(ctx context.Context, card *Card) error {
	if strings.TrimSpace(card.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if card.DisplayFormat == "" {
		card.DisplayFormat = "{value}"
	}
	return s.repo.CreateCard(ctx, card)
}

func (s *Service) GetCard(ctx context.Context, id uuid.UUID) (*Card, error) {
	return s.repo.GetCard(ctx, id)
}

func (s *Service) UpdateCard(ctx context.Context, card *Card) error {
	if strings.TrimSpace(card.Title) == "" {
		return fmt.Errorf("title is required")
	}
	return s.repo.UpdateCard(ctx, card)
}

func (s *Service) DeleteCard(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCard(ctx, id)
}

func (s *Service) ListCards(ctx context.Context, activeOnly bool) ([]*Card, error) {
	return s.repo.ListCards(ctx, activeOnly)
}

func (s *Service) CreateQuery(ctx context.Context, q *CardQuery) error {
	if q.CardID == uuid.Nil {
		return fmt.Errorf("card_id is required")
	}
	if strings.TrimSpace(q.SQLText) == "" {
		return fmt.Errorf("sql_text is required")
	}
	return s.repo.CreateQuery(ctx, q)
}

func (s *Service) UpdateQuery(ctx context.Context, q *CardQuery) error {
	if strings.TrimSpace(q.SQLText) == "" {
		return fmt.Errorf("sql_text is required")
	}
	return s.repo.UpdateQuery(ctx, q)
}

func (s *Service) DeleteQuery(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteQuery(ctx, id)
}

// BranchData computes every active card for one branch. A failing card gets
// an error marker in its slot; the others still return their values.
func (s *Service) BranchData(ctx context.Context, branchID uuid.UUID) ([]CardValue, error) {
	cards, err := s.repo.ListCards(ctx, true)
	if err != nil {
		return nil, err
	}

	values := make([]CardValue, 0, len(cards))
	for _, card := range cards {
		cv := CardValue{CardID: card.ID, Title: card.Title, Icon: card.Icon}

		q, err := s.repo.ActiveQueryForCard(ctx, card.ID)
		if err != nil {
			s.logger.Warn().Err(err).Str("card_id", card.ID.String()).Msg("card has no active query")
			cv.Error = true
			cv.Value = "-"
			values = append(values, cv)
			continue
		}

		raw, err := s.repo.RunCardQuery(ctx, q.SQLText, branchID)
		if err != nil {
			s.logger.Warn().Err(err).Str("card_id", card.ID.String()).Msg("card query failed")
			cv.Error = true
			cv.Value = "-"
			values = append(values, cv)
			continue
		}

		cv.Value = applyFormat(card.DisplayFormat, raw)
		values = append(values, cv)
	}
	return values, nil
}

// applyFormat substitutes {value} in a display format such as "₺{value}".
func applyFormat(format string, value float64) string {
	rendered := strconv.FormatFloat(value, 'f', -1, 64)
	if format == "" {
		return rendered
	}
	return strings.ReplaceAll(format, "{value}", rendered)
}
