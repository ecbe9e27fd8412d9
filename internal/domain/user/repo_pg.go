package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/auth"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const userCols = `id, username, email, password_hash, role, branch_id, active, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.BranchID, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	return &u, err
}

func (r *repoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, role, branch_id, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.BranchID, u.Active)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id))
}

func (r *repoPG) GetByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE username = $1`, username))
}

func (r *repoPG) Update(ctx context.Context, u *User) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET username=$2, email=$3, role=$4, branch_id=$5, active=$6,
			updated_at=NOW()
		WHERE id = $1`,
		u.ID, u.Username, u.Email, u.Role, u.BranchID, u.Active)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, branchID *uuid.UUID, limit, offset int) ([]*User, int, error) {
	where := ``
	args := []interface{}{}
	if branchID != nil {
		where = ` WHERE branch_id = $1`
		args = append(args, *branchID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT `+userCols+` FROM users`+where+
		` ORDER BY username LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, u)
	}
	return items, total, rows.Err()
}

// Loader adapts the repository to the auth.UserLoader interface so the auth
// middleware can resolve token subjects to live user records.
type Loader struct {
	repo Repository
}

func NewLoader(repo Repository) *Loader {
	return &Loader{repo: repo}
}

func (l *Loader) LoadActive(ctx context.Context, id uuid.UUID) (*auth.CurrentUser, error) {
	u, err := l.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.Active {
		return nil, pgx.ErrNoRows
	}
	return &auth.CurrentUser{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		BranchID: u.BranchID,
	}, nil
}
