package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const currentUserKey contextKey = "current_user"

// CurrentUser is the authenticated user attached to the request context.
type CurrentUser struct {
	ID       uuid.UUID
	Username string
	Role     Role
	BranchID uuid.UUID
}

// UserLoader loads an active user record by id. The user domain provides the
// Postgres-backed implementation; tests provide mocks.
type UserLoader interface {
	LoadActive(ctx context.Context, id uuid.UUID) (*CurrentUser, error)
}

// UserLoaderFunc is a function adapter for UserLoader.
type UserLoaderFunc func(ctx context.Context, id uuid.UUID) (*CurrentUser, error)

func (f UserLoaderFunc) LoadActive(ctx context.Context, id uuid.UUID) (*CurrentUser, error) {
	return f(ctx, id)
}

// Middleware verifies the bearer token, loads the active user record and
// attaches it to the request context. Missing token -> 401, bad or expired
// signature -> 403, user missing or inactive -> 401.
func Middleware(issuer *TokenIssuer, loader UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			claims, err := issuer.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "invalid token")
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "invalid token subject")
			}

			user, err := loader.LoadActive(c.Request().Context(), userID)
			if err != nil || user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "user not found or inactive")
			}

			ctx := context.WithValue(c.Request().Context(), currentUserKey, user)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireAdmin only lets admin and super-admin roles through.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFromContext(c.Request().Context())
			if user == nil || !user.Role.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin role required")
			}
			return next(c)
		}
	}
}

// RequireSuperAdmin only lets the super-admin role through.
func RequireSuperAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFromContext(c.Request().Context())
			if user == nil || !user.Role.IsSuperAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "super-admin role required")
			}
			return next(c)
		}
	}
}

// CanAccessBranch reports whether the user may act on the given branch.
// Admin and super-admin may act on any branch; staff only on their own.
func CanAccessBranch(user *CurrentUser, branchID uuid.UUID) bool {
	if user == nil {
		return false
	}
	if user.Role.IsAdmin() {
		return true
	}
	return user.BranchID == branchID
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *CurrentUser {
	user, _ := ctx.Value(currentUserKey).(*CurrentUser)
	return user
}

// WithUser attaches a user to the context. Used by tests.
func WithUser(ctx context.Context, user *CurrentUser) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}
