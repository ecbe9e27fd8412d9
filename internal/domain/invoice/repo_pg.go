package invoice

import (
	"context"
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

const invoiceCols = `id, branch_id, patient_id, treatment_id, amount, currency,
	status, issued_at, paid_at, created_at, updated_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.BranchID, &inv.PatientID, &inv.TreatmentID, &inv.Amount,
		&inv.Currency, &inv.Status, &inv.IssuedAt, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt)
	return &inv, err
}

func (r *repoPG) Create(ctx context.Context, inv *Invoice) error {
	inv.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO invoices (id, branch_id, patient_id, treatment_id, amount, currency, status, issued_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		inv.ID, inv.BranchID, inv.PatientID, inv.TreatmentID, inv.Amount, inv.Currency,
		inv.Status, inv.IssuedAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx, `SELECT `+invoiceCols+` FROM invoices WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, inv *Invoice) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE invoices SET amount=$2, currency=$3, status=$4, treatment_id=$5,
			paid_at=$6, updated_at=NOW()
		WHERE id = $1`,
		inv.ID, inv.Amount, inv.Currency, inv.Status, inv.TreatmentID, inv.PaidAt)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	return err
}

func (r *repoPG) MarkPaid(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE invoices SET status=$2, paid_at=NOW(), updated_at=NOW()
		WHERE id = $1 AND status = $3`,
		id, StatusPaid, StatusUnpaid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice not found or not unpaid")
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, branchID, patientID *uuid.UUID, status string, limit, offset int) ([]*Invoice, int, error) {
	var clauses []string
	var args []interface{}

	if branchID != nil {
		args = append(args, *branchID)
		clauses = append(clauses, fmt.Sprintf(`branch_id = $%d`, len(args)))
	}
	if patientID != nil {
		args = append(args, *patientID)
		clauses = append(clauses, fmt.Sprintf(`patient_id = $%d`, len(args)))
	}
	if status != "" {
		args = append(args, status)
		clauses = append(clauses, fmt.Sprintf(`status = $%d`, len(args)))
	}

	where := ``
	if len(clauses) > 0 {
		where = ` WHERE ` + strings.Join(clauses, ` AND `)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+invoiceCols+` FROM invoices`+where+
		` ORDER BY issued_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, inv)
	}
	return items, total, rows.Err()
}
