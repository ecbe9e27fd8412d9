package reports

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/auth"
)

type mockRepo struct {
	Repository

	lastQuery string
	lastArgs  []interface{}
	series    []ChartPoint
	err       error
}

func (m *mockRepo) GroupedSeries(ctx context.Context, query string, args ...interface{}) ([]ChartPoint, error) {
	m.lastQuery = query
	m.lastArgs = args
	return m.series, m.err
}

func newTestService(repo Repository) *Service {
	return NewService(repo, zerolog.Nop())
}

func TestBuildChartMissingAxes(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	for _, req := range []ChartRequest{
		{},
		{XAxis: "invoice_date"},
		{YAxis: "invoice_amount"},
	} {
		_, err := svc.BuildChart(context.Background(), nil, req)
		if !errors.Is(err, ErrMissingAxes) {
			t.Errorf("BuildChart(%+v): err = %v, want ErrMissingAxes", req, err)
		}
	}
	if repo.lastQuery != "" {
		t.Errorf("no query should run on missing axes, got %q", repo.lastQuery)
	}
}

func TestBuildChartDateAxis(t *testing.T) {
	repo := &mockRepo{series: []ChartPoint{{Label: "2026-01", Value: 42}}}
	svc := newTestService(repo)
	admin := &auth.CurrentUser{Role: auth.RoleSuperAdmin}

	series, err := svc.BuildChart(context.Background(), admin, ChartRequest{
		XAxis:             "invoice_date",
		YAxis:             "invoice_amount",
		AggregationMethod: "sum",
		Sorting:           "asc",
	})
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}
	if len(series) != 1 || series[0].Value != 42 {
		t.Errorf("series = %v", series)
	}
	for _, fragment := range []string{"DATE_TRUNC('month', issued_at)", "SUM(amount)", "FROM invoices", "ORDER BY 2 ASC"} {
		if !strings.Contains(repo.lastQuery, fragment) {
			t.Errorf("query missing %q: %s", fragment, repo.lastQuery)
		}
	}
}

func TestBuildChartCategoryAxisWithCount(t *testing.T) {
	repo := &mockRepo{series: []ChartPoint{}}
	svc := newTestService(repo)
	admin := &auth.CurrentUser{Role: auth.RoleSuperAdmin}

	_, err := svc.BuildChart(context.Background(), admin, ChartRequest{
		XAxis: "appointment_status",
		YAxis: "record_count",
	})
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}
	for _, fragment := range []string{"status", "COUNT(*)", "FROM appointments", "ORDER BY 2 DESC"} {
		if !strings.Contains(repo.lastQuery, fragment) {
			t.Errorf("query missing %q: %s", fragment, repo.lastQuery)
		}
	}
}

func TestBuildChartPinsNonSuperAdminToBranch(t *testing.T) {
	repo := &mockRepo{series: []ChartPoint{}}
	svc := newTestService(repo)
	branchID := uuid.New()
	admin := &auth.CurrentUser{Role: auth.RoleAdmin, BranchID: branchID}

	_, err := svc.BuildChart(context.Background(), admin, ChartRequest{
		XAxis: "invoice_date",
		YAxis: "invoice_amount",
	})
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}
	if !strings.Contains(repo.lastQuery, "branch_id = $1") {
		t.Errorf("query should constrain branch: %s", repo.lastQuery)
	}
	if len(repo.lastArgs) != 1 || repo.lastArgs[0] != branchID {
		t.Errorf("args = %v, want [%s]", repo.lastArgs, branchID)
	}
}

func TestBuildChartFallsBackOnQueryFailure(t *testing.T) {
	repo := &mockRepo{err: errors.New("relation does not exist")}
	svc := newTestService(repo)

	series, err := svc.BuildChart(context.Background(), &auth.CurrentUser{Role: auth.RoleSuperAdmin}, ChartRequest{
		XAxis: "invoice_date",
		YAxis: "invoice_amount",
	})
	if err != nil {
		t.Fatalf("BuildChart should swallow query errors, got %v", err)
	}
	if len(series) != 3 {
		t.Errorf("fallback series should have 3 points, got %d", len(series))
	}
}

func TestBuildChartFallsBackOnUnknownAxis(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	series, err := svc.BuildChart(context.Background(), &auth.CurrentUser{Role: auth.RoleSuperAdmin}, ChartRequest{
		XAxis: "nonexistent_field",
		YAxis: "invoice_amount",
	})
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}
	if len(series) != 3 {
		t.Errorf("expected fallback series, got %v", series)
	}
	if repo.lastQuery != "" {
		t.Errorf("unknown axis must not reach the database, got %q", repo.lastQuery)
	}
}

func TestBuildChartFiltersUseAllowList(t *testing.T) {
	repo := &mockRepo{series: []ChartPoint{}}
	svc := newTestService(repo)

	_, err := svc.BuildChart(context.Background(), &auth.CurrentUser{Role: auth.RoleSuperAdmin}, ChartRequest{
		XAxis: "invoice_date",
		YAxis: "invoice_amount",
		Filters: map[string]string{
			"invoice_status":          "paid",
			"1=1; DROP TABLE x; --":   "oops",
			"appointment_status":      "completed", // wrong table, must be dropped
		},
	})
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}
	if !strings.Contains(repo.lastQuery, "status = $") {
		t.Errorf("allow-listed filter missing: %s", repo.lastQuery)
	}
	if strings.Contains(repo.lastQuery, "DROP TABLE") {
		t.Errorf("injected filter key reached SQL: %s", repo.lastQuery)
	}
	if len(repo.lastArgs) != 1 || repo.lastArgs[0] != "paid" {
		t.Errorf("args = %v", repo.lastArgs)
	}
}

func TestAxisOptionsExposesBothAxes(t *testing.T) {
	opts := AxisOptions()
	if len(opts["xAxis"]) == 0 || len(opts["yAxis"]) == 0 {
		t.Fatalf("axis options incomplete: %v", opts)
	}
	for _, opt := range opts["xAxis"] {
		if opt.Kind != KindDate && opt.Kind != KindCategory {
			t.Errorf("x axis %s has kind %s", opt.Value, opt.Kind)
		}
	}
	for _, opt := range opts["yAxis"] {
		if opt.Kind != KindNumeric {
			t.Errorf("y axis %s has kind %s", opt.Value, opt.Kind)
		}
	}
}

func TestMeasureExpr(t *testing.T) {
	amount := AxisOption{Value: "invoice_amount", Column: "amount", Table: "invoices"}

	cases := []struct {
		method string
		want   string
	}{
		{"", "COALESCE(SUM(amount), 0)"},
		{"sum", "COALESCE(SUM(amount), 0)"},
		{"average", "COALESCE(AVG(amount), 0)"},
		{"AVG", "COALESCE(AVG(amount), 0)"},
		{"count", "COUNT(amount)"},
	}
	for _, tc := range cases {
		got, err := measureExpr(amount, tc.method)
		if err != nil {
			t.Errorf("measureExpr(%q): %v", tc.method, err)
			continue
		}
		if got != tc.want {
			t.Errorf("measureExpr(%q) = %q, want %q", tc.method, got, tc.want)
		}
	}

	if _, err := measureExpr(amount, "median"); err == nil {
		t.Error("expected error for unsupported aggregation")
	}
}
