package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, rawQuery string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest("GET", "/?"+rawQuery, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	return FromContext(c)
}

func TestFromContextDefaults(t *testing.T) {
	p := paramsFor(t, "")
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("got %+v, want limit=%d offset=0", p, DefaultLimit)
	}
}

func TestFromContextClampsLimit(t *testing.T) {
	p := paramsFor(t, "limit=9999")
	if p.Limit != MaxLimit {
		t.Errorf("limit = %d, want %d", p.Limit, MaxLimit)
	}
	p = paramsFor(t, "limit=-5&offset=-3")
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("got %+v, want defaults for negative input", p)
	}
}

func TestFromContextParsesValues(t *testing.T) {
	p := paramsFor(t, "limit=25&offset=50")
	if p.Limit != 25 || p.Offset != 50 {
		t.Errorf("got %+v", p)
	}
}

func TestNewResponseHasMore(t *testing.T) {
	r := NewResponse(nil, 100, 20, 0)
	if !r.HasMore {
		t.Error("expected HasMore at first page of 100")
	}
	r = NewResponse(nil, 100, 20, 80)
	if r.HasMore {
		t.Error("expected no more after last page")
	}
}

func TestParamsSQL(t *testing.T) {
	p := Params{Limit: 10, Offset: 30}
	if got := p.SQL(); got != "LIMIT 10 OFFSET 30" {
		t.Errorf("SQL() = %q", got)
	}
	if !p.HasNext(41) {
		t.Error("expected HasNext for total 41")
	}
	if p.HasNext(40) {
		t.Error("expected no next for total 40")
	}
}
