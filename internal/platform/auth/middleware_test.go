package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newAuthTest(loader UserLoader) (*echo.Echo, *TokenIssuer) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		user := UserFromContext(c.Request().Context())
		if user == nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "no user in context")
		}
		return c.String(http.StatusOK, user.Username)
	}, Middleware(issuer, loader))
	return e, issuer
}

func staticLoader(user *CurrentUser) UserLoader {
	return UserLoaderFunc(func(ctx context.Context, id uuid.UUID) (*CurrentUser, error) {
		if user == nil || user.ID != id {
			return nil, fmt.Errorf("user not found")
		}
		return user, nil
	})
}

func TestMiddlewareMissingToken(t *testing.T) {
	e, _ := newAuthTest(staticLoader(nil))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestMiddlewareBadToken(t *testing.T) {
	e, _ := newAuthTest(staticLoader(nil))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestMiddlewareInactiveUser(t *testing.T) {
	e, issuer := newAuthTest(staticLoader(nil))
	token, _ := issuer.Issue(uuid.New(), "ghost", RoleStaff, uuid.New())
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestMiddlewareSuccess(t *testing.T) {
	user := &CurrentUser{ID: uuid.New(), Username: "ayse", Role: RoleStaff, BranchID: uuid.New()}
	e, issuer := newAuthTest(staticLoader(user))
	token, _ := issuer.Issue(user.ID, user.Username, user.Role, user.BranchID)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}
	if rec.Body.String() != "ayse" {
		t.Errorf("body = %s, want ayse", rec.Body)
	}
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/admin-only", handler, RequireAdmin())

	cases := []struct {
		name string
		user *CurrentUser
		want int
	}{
		{"no user", nil, http.StatusForbidden},
		{"staff", &CurrentUser{Role: RoleStaff}, http.StatusForbidden},
		{"admin", &CurrentUser{Role: RoleAdmin}, http.StatusOK},
		{"super admin", &CurrentUser{Role: RoleSuperAdmin}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
			if tc.user != nil {
				req = req.WithContext(WithUser(req.Context(), tc.user))
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestCanAccessBranch(t *testing.T) {
	own := uuid.New()
	other := uuid.New()

	if CanAccessBranch(nil, own) {
		t.Error("nil user should not access any branch")
	}
	staff := &CurrentUser{Role: RoleStaff, BranchID: own}
	if !CanAccessBranch(staff, own) {
		t.Error("staff should access own branch")
	}
	if CanAccessBranch(staff, other) {
		t.Error("staff should not access other branch")
	}
	admin := &CurrentUser{Role: RoleAdmin, BranchID: own}
	if !CanAccessBranch(admin, other) {
		t.Error("admin should access any branch")
	}
}
