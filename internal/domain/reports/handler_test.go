package reports

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/auth"
)

func newChartServer(repo Repository) *echo.Echo {
	e := echo.New()
	h := NewHandler(NewService(repo, zerolog.Nop()))
	api := e.Group("/api")
	h.RegisterRoutes(api)
	return e
}

func asAdmin(req *http.Request) *http.Request {
	user := &auth.CurrentUser{ID: uuid.New(), Username: "ayse", Role: auth.RoleSuperAdmin, BranchID: uuid.New()}
	return req.WithContext(auth.WithUser(req.Context(), user))
}

func TestDynamicChartRejectsMissingAxes(t *testing.T) {
	repo := &mockRepo{}
	e := newChartServer(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/reports/dynamic-chart", strings.NewReader(`{"yAxis":"invoice_amount"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, asAdmin(req))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body)
	}
	if repo.lastQuery != "" {
		t.Errorf("no query should run, got %q", repo.lastQuery)
	}
}

func TestDynamicChartReturnsSeries(t *testing.T) {
	repo := &mockRepo{series: []ChartPoint{{Label: "2026-01", Value: 10}, {Label: "2026-02", Value: 20}}}
	e := newChartServer(repo)

	body := `{"xAxis":"invoice_date","yAxis":"invoice_amount","aggregationMethod":"sum","sorting":"asc"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reports/dynamic-chart", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, asAdmin(req))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body)
	}

	var envelope struct {
		Success bool         `json:"success"`
		Data    []ChartPoint `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !envelope.Success || len(envelope.Data) != 2 {
		t.Errorf("envelope = %+v", envelope)
	}
}

func TestAxisOptionsEndpoint(t *testing.T) {
	e := newChartServer(&mockRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/reports/axis-options", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, asAdmin(req))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var envelope struct {
		Data map[string][]AxisOption `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(envelope.Data["xAxis"]) == 0 || len(envelope.Data["yAxis"]) == 0 {
		t.Errorf("axis options = %v", envelope.Data)
	}
}

type stubStatsRepo struct {
	mockRepo
	overview   *OverviewStats
	lastBranch *uuid.UUID
}

func (s *stubStatsRepo) Overview(ctx context.Context, branchID *uuid.UUID) (*OverviewStats, error) {
	s.lastBranch = branchID
	return s.overview, nil
}

func TestStatsEndpoint(t *testing.T) {
	repo := &stubStatsRepo{overview: &OverviewStats{Patients: 5, Revenue: 1200}}
	e := newChartServer(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/stats", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, asAdmin(req))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body)
	}
	var envelope struct {
		Data OverviewStats `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if envelope.Data.Patients != 5 || envelope.Data.Revenue != 1200 {
		t.Errorf("data = %+v", envelope.Data)
	}
}

func TestStatsEndpointPinsAdminsToOwnBranch(t *testing.T) {
	repo := &stubStatsRepo{overview: &OverviewStats{}}
	e := newChartServer(repo)
	own := uuid.New()
	admin := &auth.CurrentUser{ID: uuid.New(), Username: "mehmet", Role: auth.RoleAdmin, BranchID: own}

	req := httptest.NewRequest(http.MethodGet, "/api/reports/stats?branch_id="+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req.WithContext(auth.WithUser(req.Context(), admin)))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 for another branch", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/reports/stats", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req.WithContext(auth.WithUser(req.Context(), admin)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body)
	}
	if repo.lastBranch == nil || *repo.lastBranch != own {
		t.Errorf("branch filter = %v, want admin pinned to %s", repo.lastBranch, own)
	}
}

func TestBranchStatsRequiresSuperAdmin(t *testing.T) {
	e := newChartServer(&stubStatsRepo{})
	admin := &auth.CurrentUser{ID: uuid.New(), Username: "mehmet", Role: auth.RoleAdmin, BranchID: uuid.New()}

	req := httptest.NewRequest(http.MethodGet, "/api/reports/branch-stats", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req.WithContext(auth.WithUser(req.Context(), admin)))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 for non-super-admin", rec.Code)
	}
}
