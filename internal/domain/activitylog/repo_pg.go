package activitylog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const entryCols = `id, user_id, username, role, branch_id, action, method, path,
	ip_address, user_agent, status_code, request_id, request_detail, response_summary, created_at`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	var reqDetail, resSummary []byte
	err := row.Scan(&e.ID, &e.UserID, &e.Username, &e.Role, &e.BranchID, &e.Action,
		&e.Method, &e.Path, &e.IPAddress, &e.UserAgent, &e.StatusCode, &e.RequestID,
		&reqDetail, &resSummary, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(reqDetail) > 0 {
		_ = json.Unmarshal(reqDetail, &e.RequestDetail)
	}
	if len(resSummary) > 0 {
		_ = json.Unmarshal(resSummary, &e.ResponseSummary)
	}
	return &e, nil
}

func (r *repoPG) Insert(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()

	var reqDetail, resSummary []byte
	if e.RequestDetail != nil {
		reqDetail, _ = json.Marshal(e.RequestDetail)
	}
	if e.ResponseSummary != nil {
		resSummary, _ = json.Marshal(e.ResponseSummary)
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO activity_logs (id, user_id, username, role, branch_id, action, method, path,
			ip_address, user_agent, status_code, request_id, request_detail, response_summary, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		e.ID, e.UserID, e.Username, e.Role, e.BranchID, e.Action, e.Method, e.Path,
		e.IPAddress, e.UserAgent, e.StatusCode, e.RequestID, reqDetail, resSummary, e.CreatedAt)
	return err
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Entry, int, error) {
	var clauses []string
	var args []interface{}

	if f.UserID != nil {
		args = append(args, *f.UserID)
		clauses = append(clauses, fmt.Sprintf(`user_id = $%d`, len(args)))
	}
	if f.BranchID != nil {
		args = append(args, *f.BranchID)
		clauses = append(clauses, fmt.Sprintf(`branch_id = $%d`, len(args)))
	}
	if f.Action != "" {
		args = append(args, f.Action)
		clauses = append(clauses, fmt.Sprintf(`action = $%d`, len(args)))
	}

	where := ``
	if len(clauses) > 0 {
		where = ` WHERE ` + strings.Join(clauses, ` AND `)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM activity_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+entryCols+` FROM activity_logs`+where+
		` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}
