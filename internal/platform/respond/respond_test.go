package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func record(t *testing.T, fn func(c echo.Context) error) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := fn(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return rec, env
}

func TestOK(t *testing.T) {
	rec, env := record(t, func(c echo.Context) error {
		return OK(c, map[string]int{"n": 1})
	})
	if rec.Code != http.StatusOK || !env.Success {
		t.Errorf("code = %d, env = %+v", rec.Code, env)
	}
}

func TestCreated(t *testing.T) {
	rec, env := record(t, func(c echo.Context) error {
		return Created(c, "x")
	})
	if rec.Code != http.StatusCreated || !env.Success {
		t.Errorf("code = %d, env = %+v", rec.Code, env)
	}
}

func TestFailCarriesMessageAndError(t *testing.T) {
	rec, env := record(t, func(c echo.Context) error {
		return Fail(c, http.StatusBadGateway, "Sorgu çalıştırılamadı", errors.New("dial tcp: refused"))
	})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("code = %d", rec.Code)
	}
	if env.Success {
		t.Error("success should be false")
	}
	if env.Message != "Sorgu çalıştırılamadı" {
		t.Errorf("message = %q", env.Message)
	}
	if env.Error != "dial tcp: refused" {
		t.Errorf("error = %q", env.Error)
	}
}

func TestFailWithoutError(t *testing.T) {
	_, env := record(t, func(c echo.Context) error {
		return Fail(c, http.StatusForbidden, "yetkiniz yok", nil)
	})
	if env.Error != "" {
		t.Errorf("error should be empty, got %q", env.Error)
	}
}
