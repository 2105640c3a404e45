package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskloop/todo-system/internal/api/middleware"
	"github.com/taskloop/todo-system/internal/core/domain"
)

// currentUser extracts the user attached by the session guard. Its absence
// means the middleware never ran for this route — reject rather than proceed
// with no identity.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}
	return user, nil
}
