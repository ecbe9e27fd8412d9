package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/auth"
)

func TestClassifyAction(t *testing.T) {
	cases := []struct {
		method, path, want string
	}{
		{http.MethodPost, "/api/patients", "patient created"},
		{http.MethodPut, "/api/patients/123", "patient updated"},
		{http.MethodDelete, "/api/branches/abc", "branch deleted"},
		{http.MethodGet, "/api/appointments", "appointment viewed"},
		{http.MethodPost, "/api/reports/dynamic-chart", "report generated"},
		{http.MethodPost, "/api/admin/database/query", "admin action"},
		{http.MethodGet, "/api/unknown-thing", "request viewed"},
	}
	for _, tc := range cases {
		if got := classifyAction(tc.method, tc.path); got != tc.want {
			t.Errorf("classifyAction(%s %s) = %q, want %q", tc.method, tc.path, got, tc.want)
		}
	}
}

func TestExtractRequestDetailRedactsSecrets(t *testing.T) {
	body := []byte(`{"username":"ayse","password":"hunter2","api_token":"xyz","note":"hello"}`)
	query := map[string][]string{"branch_id": {"b1"}, "secret_key": {"nope"}}

	detail := extractRequestDetail(body, query)
	if detail == nil {
		t.Fatal("expected detail")
	}
	for _, forbidden := range []string{"password", "api_token", "secret_key"} {
		if _, ok := detail[forbidden]; ok {
			t.Errorf("detail leaked %q", forbidden)
		}
	}
	if detail["username"] != "ayse" || detail["branch_id"] != "b1" {
		t.Errorf("detail missing expected fields: %#v", detail)
	}
}

func TestSummarizeResponse(t *testing.T) {
	summary := summarizeResponse([]byte(`{"success":true,"message":"ok","data":[1,2,3]}`))
	if summary == nil {
		t.Fatal("expected summary")
	}
	if summary["success"] != true {
		t.Errorf("success = %v", summary["success"])
	}
	if summary["count"] != 3 {
		t.Errorf("count = %v, want 3", summary["count"])
	}

	if got := summarizeResponse(nil); got != nil {
		t.Errorf("empty body should give nil, got %v", got)
	}
	if got := summarizeResponse([]byte("not json")); got != nil {
		t.Errorf("non-json body should give nil, got %v", got)
	}
}

type captureRecorder struct {
	entries chan ActivityEntry
}

func (r *captureRecorder) Record(ctx context.Context, entry ActivityEntry) error {
	r.entries <- entry
	return nil
}

func serveWithActivity(t *testing.T, user *auth.CurrentUser, rec *captureRecorder, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	handler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "data": map[string]interface{}{"id": 1}})
	}
	e.Any(path, handler, Activity(zerolog.Nop(), rec))

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if user != nil {
		req = req.WithContext(auth.WithUser(req.Context(), user))
	}
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)
	return res
}

func TestActivityRecordsAdminRequest(t *testing.T) {
	rec := &captureRecorder{entries: make(chan ActivityEntry, 1)}
	admin := &auth.CurrentUser{ID: uuid.New(), Username: "ayse", Role: auth.RoleAdmin, BranchID: uuid.New()}

	serveWithActivity(t, admin, rec, http.MethodPost, "/api/patients", `{"first_name":"Ali","password":"x"}`)

	select {
	case entry := <-rec.entries:
		if entry.Action != "patient created" {
			t.Errorf("action = %q", entry.Action)
		}
		if entry.Username != "ayse" {
			t.Errorf("username = %q", entry.Username)
		}
		if entry.StatusCode != http.StatusOK {
			t.Errorf("status = %d", entry.StatusCode)
		}
		if _, ok := entry.RequestDetail["password"]; ok {
			t.Error("request detail leaked password")
		}
		if entry.RequestDetail["first_name"] != "Ali" {
			t.Errorf("request detail = %#v", entry.RequestDetail)
		}
		if entry.ResponseSummary["success"] != true {
			t.Errorf("response summary = %#v", entry.ResponseSummary)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("recorder was never called")
	}
}

func TestActivitySkipsStaffAndAnonymous(t *testing.T) {
	rec := &captureRecorder{entries: make(chan ActivityEntry, 2)}
	staff := &auth.CurrentUser{ID: uuid.New(), Username: "mehmet", Role: auth.RoleStaff, BranchID: uuid.New()}

	serveWithActivity(t, staff, rec, http.MethodPost, "/api/patients", `{}`)
	serveWithActivity(t, nil, rec, http.MethodPost, "/api/patients", `{}`)

	select {
	case entry := <-rec.entries:
		t.Fatalf("unexpected entry recorded: %+v", entry)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestActivityDoesNotConsumeRequestBody(t *testing.T) {
	rec := &captureRecorder{entries: make(chan ActivityEntry, 1)}
	admin := &auth.CurrentUser{ID: uuid.New(), Username: "ayse", Role: auth.RoleAdmin, BranchID: uuid.New()}

	e := echo.New()
	e.POST("/api/patients", func(c echo.Context) error {
		var payload map[string]interface{}
		if err := c.Bind(&payload); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "bind failed")
		}
		if payload["first_name"] != "Ali" {
			return echo.NewHTTPError(http.StatusBadRequest, "body was consumed")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
	}, Activity(zerolog.Nop(), rec))

	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(`{"first_name":"Ali"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = req.WithContext(auth.WithUser(req.Context(), admin))
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", res.Code, res.Body)
	}
}
