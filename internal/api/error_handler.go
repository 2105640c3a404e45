package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskloop/todo-system/internal/core/domain"
)

// errorEnvelope is the canonical failure envelope for all API errors.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders validation failures with field-level detail in the errors array.
//   - Logs unexpected errors internally; in production the client only sees a
//     generic message.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, fields := resolveError(err, log, c, production)
		_ = c.JSON(code, errorEnvelope{Success: false, Message: msg, Errors: fields})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, production bool) (int, string, any) {
	// Field-level validation failures carry their detail with them.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, "Validation failed", ve.Fields
	}

	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials", nil
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusForbidden, "Invalid or expired token", nil
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "User with this email or username already exists", nil
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found", nil
	case errors.Is(err, domain.ErrTodoNotFound):
		return http.StatusNotFound, "Todo not found", nil
	case errors.Is(err, domain.ErrNoUpdatableFields):
		return http.StatusBadRequest, "No fields to update", nil
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	if production {
		return http.StatusInternalServerError, "Internal server error", nil
	}
	return http.StatusInternalServerError, err.Error(), nil
}
