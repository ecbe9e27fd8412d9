package reports

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) GroupedSeries(ctx context.Context, query string, args ...interface{}) ([]ChartPoint, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []ChartPoint
	for rows.Next() {
		var p ChartPoint
		if err := rows.Scan(&p.Label, &p.Value); err != nil {
			return nil, err
		}
		series = append(series, p)
	}
	return series, rows.Err()
}

// branchClause appends an optional branch filter. n is the next placeholder
// index; returned args include the branch id when set.
func branchClause(branchID *uuid.UUID, n int) (string, []interface{}) {
	if branchID == nil {
		return "", nil
	}
	return fmt.Sprintf(" WHERE branch_id = $%d", n), []interface{}{*branchID}
}

func (r *repoPG) Overview(ctx context.Context, branchID *uuid.UUID) (*OverviewStats, error) {
	var stats OverviewStats

	for _, q := range []struct {
		table string
		dst   *int
	}{
		{"patients", &stats.Patients},
		{"appointments", &stats.Appointments},
		{"treatments", &stats.Treatments},
		{"invoices", &stats.Invoices},
	} {
		clause, args := branchClause(branchID, 1)
		if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+q.table+clause, args...).Scan(q.dst); err != nil {
			return nil, err
		}
	}

	query := `SELECT COALESCE(SUM(amount), 0) FROM invoices WHERE status = 'paid'`
	args := []interface{}{}
	if branchID != nil {
		query += ` AND branch_id = $1`
		args = append(args, *branchID)
	}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&stats.Revenue); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *repoPG) BranchStats(ctx context.Context) ([]BranchStat, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.name,
			(SELECT COUNT(*) FROM patients p WHERE p.branch_id = b.id),
			(SELECT COUNT(*) FROM appointments a WHERE a.branch_id = b.id),
			(SELECT COALESCE(SUM(i.amount), 0) FROM invoices i WHERE i.branch_id = b.id AND i.status = 'paid')
		FROM branches b
		WHERE b.active
		ORDER BY b.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []BranchStat
	for rows.Next() {
		var s BranchStat
		if err := rows.Scan(&s.BranchID, &s.BranchName, &s.Patients, &s.Appointments, &s.Revenue); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// doctorPerformanceQuery only counts users who actually practice: a user row
// with neither appointments nor treatments is back-office, not a doctor.
const doctorPerformanceQuery = `
	SELECT u.id, u.username,
		COUNT(a.id),
		COUNT(a.id) FILTER (WHERE a.status = 'completed'),
		(SELECT COUNT(*) FROM treatments t WHERE t.doctor_id = u.id)
	FROM users u
	LEFT JOIN appointments a ON a.doctor_id = u.id
	WHERE (EXISTS (SELECT 1 FROM appointments x WHERE x.doctor_id = u.id)
		OR EXISTS (SELECT 1 FROM treatments x WHERE x.doctor_id = u.id))`

func (r *repoPG) DoctorPerformance(ctx context.Context, branchID *uuid.UUID) ([]DoctorStat, error) {
	query := doctorPerformanceQuery
	var args []interface{}
	if branchID != nil {
		query += ` AND u.branch_id = $1`
		args = append(args, *branchID)
	}
	query += ` GROUP BY u.id, u.username ORDER BY COUNT(a.id) DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []DoctorStat
	for rows.Next() {
		var s DoctorStat
		if err := rows.Scan(&s.DoctorID, &s.DoctorName, &s.Appointments, &s.Completed, &s.Treatments); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *repoPG) Revenue(ctx context.Context, branchID *uuid.UUID) ([]RevenuePoint, error) {
	query := `
		SELECT TO_CHAR(DATE_TRUNC('month', issued_at), 'YYYY-MM'),
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'unpaid'), 0)
		FROM invoices`
	var args []interface{}
	if branchID != nil {
		query += ` WHERE branch_id = $1`
		args = append(args, *branchID)
	}
	query += ` GROUP BY 1 ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []RevenuePoint
	for rows.Next() {
		var p RevenuePoint
		if err := rows.Scan(&p.Month, &p.Total, &p.Paid, &p.Unpaid); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *repoPG) PatientStats(ctx context.Context, branchID *uuid.UUID) (*PatientStats, error) {
	stats := &PatientStats{ByGender: map[string]int{}}

	clause, args := branchClause(branchID, 1)
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`+clause, args...).Scan(&stats.Total); err != nil {
		return nil, err
	}

	query := `SELECT COALESCE(gender, 'unknown'), COUNT(*) FROM patients`
	query += clause
	query += ` GROUP BY 1`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var gender string
		var count int
		if err := rows.Scan(&gender, &count); err != nil {
			return nil, err
		}
		stats.ByGender[gender] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recent := `SELECT COUNT(*) FROM patients WHERE created_at > NOW() - INTERVAL '30 days'`
	recentArgs := []interface{}{}
	if branchID != nil {
		recent += ` AND branch_id = $1`
		recentArgs = append(recentArgs, *branchID)
	}
	if err := r.pool.QueryRow(ctx, recent, recentArgs...).Scan(&stats.NewLast30); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *repoPG) TreatmentStats(ctx context.Context, branchID *uuid.UUID) (*TreatmentStats, error) {
	stats := &TreatmentStats{ByStatus: map[string]int{}}

	clause, args := branchClause(branchID, 1)
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM treatments`+clause, args...).Scan(&stats.Total); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM treatments`+clause+` GROUP BY 1`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	revenue := `SELECT COALESCE(SUM(price), 0) FROM treatments WHERE status = 'done'`
	revenueArgs := []interface{}{}
	if branchID != nil {
		revenue += ` AND branch_id = $1`
		revenueArgs = append(revenueArgs, *branchID)
	}
	if err := r.pool.QueryRow(ctx, revenue, revenueArgs...).Scan(&stats.Revenue); err != nil {
		return nil, err
	}
	return stats, nil
}
