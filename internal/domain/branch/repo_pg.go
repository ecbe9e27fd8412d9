package branch

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

const branchCols = `id, name, code, locale, timezone, active, created_at, updated_at`

func scanBranch(row pgx.Row) (*Branch, error) {
	var b Branch
	err := row.Scan(&b.ID, &b.Name, &b.Code, &b.Locale, &b.Timezone, &b.Active,
		&b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *repoPG) Create(ctx context.Context, b *Branch) error {
	b.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO branches (id, name, code, locale, timezone, active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		b.ID, b.Name, b.Code, b.Locale, b.Timezone, b.Active)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Branch, error) {
	return scanBranch(r.pool.QueryRow(ctx, `SELECT `+branchCols+` FROM branches WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, b *Branch) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE branches SET name=$2, code=$3, locale=$4, timezone=$5, active=$6,
			updated_at=NOW()
		WHERE id = $1`,
		b.ID, b.Name, b.Code, b.Locale, b.Timezone, b.Active)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Branch, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM branches`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+branchCols+` FROM branches ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, rows.Err()
}
