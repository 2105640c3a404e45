package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskloop/todo-system/internal/api/metrics"
	"github.com/taskloop/todo-system/internal/core/domain"
)

// UserKey is the echo.Context key under which the resolved user is stored.
const UserKey = "auth.user"

// TokenResolver turns a bearer token into the user it belongs to.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}

// Auth is the session guard: it extracts the bearer token, resolves it, and
// attaches the user to the request context. A missing token is 401. A token
// that is present but fails verification is 403. A valid token whose user no
// longer exists is 401.
func Auth(resolver TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
			}

			user, err := resolver.ResolveToken(c.Request().Context(), parts[1])
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUserNotFound):
					metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token - user not found")
				case errors.Is(err, domain.ErrInvalidToken):
					metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
					return echo.NewHTTPError(http.StatusForbidden, "Invalid or expired token")
				default:
					// Store failure during lookup; let the error handler render a 500.
					return err
				}
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}
