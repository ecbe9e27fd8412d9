package branchcard

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const cardCols = `id, title, icon, display_format, sort_order, active, created_at, updated_at`
const queryCols = `id, card_id, sql_text, active, created_at, updated_at`

func scanCard(row pgx.Row) (*Card, error) {
	var c Card
	err := row.Scan(&c.ID, &c.Title, &c.Icon, &c.DisplayFormat, &c.SortOrder, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func scanQuery(row pgx.Row) (*CardQuery, error) {
	var q CardQuery
	err := row.Scan(&q.ID, &q.CardID, &q.SQLText, &q.Active, &q.CreatedAt, &q.UpdatedAt)
	return &q, err
}

func (r *repoPG) CreateCard(ctx context.Context, card *Card) error {
	card.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO branch_cards (id, title, icon, display_format, sort_order, active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		card.ID, card.Title, card.Icon, card.DisplayFormat, card.SortOrder, card.Active)
	return err
}

func (r *repoPG) GetCard(ctx context.Context, id uuid.UUID) (*Card, error) {
	return scanCard(r.pool.QueryRow(ctx, `SELECT `+cardCols+` FROM branch_cards WHERE id = $1`, id))
}

func (r *repoPG) UpdateCard(ctx context.Context, card *Card) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE branch_cards SET title=$2, icon=$3, display_format=$4, sort_order=$5, active=$6, updated_at=NOW()
		WHERE id = $1`,
		card.ID, card.Title, card.Icon, card.DisplayFormat, card.SortOrder, card.Active)
	return err
}

func (r *repoPG) DeleteCard(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM branch_cards WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListCards(ctx context.Context, activeOnly bool) ([]*Card, error) {
	query := `SELECT ` + cardCols + ` FROM branch_cards`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY sort_order, created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cards []*Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *repoPG) CreateQuery(ctx context.Context, q *CardQuery) error {
	q.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO branch_card_queries (id, card_id, sql_text, active)
		VALUES ($1,$2,$3,$4)`,
		q.ID, q.CardID, q.SQLText, q.Active)
	return err
}

func (r *repoPG) UpdateQuery(ctx context.Context, q *CardQuery) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE branch_card_queries SET sql_text=$2, active=$3, updated_at=NOW()
		WHERE id = $1`,
		q.ID, q.SQLText, q.Active)
	return err
}

func (r *repoPG) DeleteQuery(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM branch_card_queries WHERE id = $1`, id)
	return err
}

func (r *repoPG) ActiveQueryForCard(ctx context.Context, cardID uuid.UUID) (*CardQuery, error) {
	return scanQuery(r.pool.QueryRow(ctx, `
		SELECT `+queryCols+` FROM branch_card_queries
		WHERE card_id = $1 AND active
		ORDER BY created_at DESC LIMIT 1`, cardID))
}

func (r *repoPG) RunCardQuery(ctx context.Context, sqlText string, branchID uuid.UUID) (float64, error) {
	var value float64
	err := r.pool.QueryRow(ctx, sqlText, branchID).Scan(&value)
	return value, err
}
