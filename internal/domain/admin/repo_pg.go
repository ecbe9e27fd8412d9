package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type connRepoPG struct{ pool *pgxpool.Pool }

func NewConnectionRepoPG(pool *pgxpool.Pool) ConnectionRepository {
	return &connRepoPG{pool: pool}
}

const connCols = `id, name, host, port, database_name, username, password, engine, active, created_at, updated_at`

func scanConnection(row pgx.Row) (*DataConnection, error) {
	var c DataConnection
	err := row.Scan(&c.ID, &c.Name, &c.Host, &c.Port, &c.DatabaseName, &c.Username,
		&c.Password, &c.Engine, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *connRepoPG) Create(ctx context.Context, conn *DataConnection) error {
	conn.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO data_connections (id, name, host, port, database_name, username, password, engine, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		conn.ID, conn.Name, conn.Host, conn.Port, conn.DatabaseName, conn.Username,
		conn.Password, conn.Engine, conn.Active)
	return err
}

func (r *connRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*DataConnection, error) {
	return scanConnection(r.pool.QueryRow(ctx, `SELECT `+connCols+` FROM data_connections WHERE id = $1`, id))
}

func (r *connRepoPG) Update(ctx context.Context, conn *DataConnection) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE data_connections SET name=$2, host=$3, port=$4, database_name=$5,
			username=$6, password=$7, engine=$8, active=$9, updated_at=NOW()
		WHERE id = $1`,
		conn.ID, conn.Name, conn.Host, conn.Port, conn.DatabaseName, conn.Username,
		conn.Password, conn.Engine, conn.Active)
	return err
}

func (r *connRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM data_connections WHERE id = $1`, id)
	return err
}

func (r *connRepoPG) List(ctx context.Context) ([]*DataConnection, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+connCols+` FROM data_connections ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*DataConnection
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

type savedQueryRepoPG struct{ pool *pgxpool.Pool }

func NewSavedQueryRepoPG(pool *pgxpool.Pool) SavedQueryRepository {
	return &savedQueryRepoPG{pool: pool}
}

const savedQueryCols = `id, connection_id, name, description, category, is_public,
	sql_text, usage_count, last_run_at, created_by, created_at, updated_at`

func scanSavedQuery(row pgx.Row) (*SavedQuery, error) {
	var q SavedQuery
	err := row.Scan(&q.ID, &q.ConnectionID, &q.Name, &q.Description, &q.Category,
		&q.IsPublic, &q.SQLText, &q.UsageCount, &q.LastRunAt, &q.CreatedBy,
		&q.CreatedAt, &q.UpdatedAt)
	return &q, err
}

func (r *savedQueryRepoPG) Create(ctx context.Context, q *SavedQuery) error {
	q.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO saved_queries (id, connection_id, name, description, category, is_public, sql_text, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		q.ID, q.ConnectionID, q.Name, q.Description, q.Category, q.IsPublic, q.SQLText, q.CreatedBy)
	return err
}

func (r *savedQueryRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*SavedQuery, error) {
	return scanSavedQuery(r.pool.QueryRow(ctx, `SELECT `+savedQueryCols+` FROM saved_queries WHERE id = $1`, id))
}

func (r *savedQueryRepoPG) Update(ctx context.Context, q *SavedQuery) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE saved_queries SET connection_id=$2, name=$3, description=$4,
			category=$5, is_public=$6, sql_text=$7, updated_at=NOW()
		WHERE id = $1`,
		q.ID, q.ConnectionID, q.Name, q.Description, q.Category, q.IsPublic, q.SQLText)
	return err
}

func (r *savedQueryRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM saved_queries WHERE id = $1`, id)
	return err
}

func (r *savedQueryRepoPG) List(ctx context.Context) ([]*SavedQuery, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+savedQueryCols+` FROM saved_queries ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*SavedQuery
	for rows.Next() {
		q, err := scanSavedQuery(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, q)
	}
	return items, rows.Err()
}

func (r *savedQueryRepoPG) MarkExecuted(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE saved_queries SET usage_count = usage_count + 1, last_run_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("saved query %s not found", id)
	}
	return nil
}
