package treatment

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

const treatmentCols = `id, branch_id, patient_id, doctor_id, appointment_id, name,
	tooth_number, price, status, performed_at, created_at, updated_at`

func scanTreatment(row pgx.Row) (*Treatment, error) {
	var t Treatment
	err := row.Scan(&t.ID, &t.BranchID, &t.PatientID, &t.DoctorID, &t.AppointmentID, &t.Name,
		&t.ToothNumber, &t.Price, &t.Status, &t.PerformedAt, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *repoPG) Create(ctx context.Context, t *Treatment) error {
	t.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO treatments (id, branch_id, patient_id, doctor_id, appointment_id,
			name, tooth_number, price, status, performed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		t.ID, t.BranchID, t.PatientID, t.DoctorID, t.AppointmentID,
		t.Name, t.ToothNumber, t.Price, t.Status, t.PerformedAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Treatment, error) {
	return scanTreatment(r.pool.QueryRow(ctx, `SELECT `+treatmentCols+` FROM treatments WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, t *Treatment) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE treatments SET name=$2, tooth_number=$3, price=$4, status=$5,
			performed_at=$6, appointment_id=$7, updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.Name, t.ToothNumber, t.Price, t.Status, t.PerformedAt, t.AppointmentID)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM treatments WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, branchID, patientID *uuid.UUID, limit, offset int) ([]*Treatment, int, error) {
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

	where := ``
	if len(clauses) > 0 {
		where = ` WHERE ` + strings.Join(clauses, ` AND `)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM treatments`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+treatmentCols+` FROM treatments`+where+
		` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Treatment
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, rows.Err()
}
