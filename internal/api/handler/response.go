package handler

import "github.com/labstack/echo/v4"

// envelope is the uniform JSON wrapper on every API response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// respond writes a success envelope with the given payload.
func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}
