package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/backlog/internal/domain"
)

// Envelope is the standard API response wrapper.
type Envelope struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Code    string       `json:"code,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a field-level validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JSON writes a successful JSON response with the standard envelope.
func JSON(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

// NewHTTPErrorHandler returns the global error handler for echo.
// When exposeInternal is set, unexpected errors carry their text in the response.
func NewHTTPErrorHandler(exposeInternal bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, env := mapError(err, exposeInternal)
		if jsonErr := c.JSON(status, env); jsonErr != nil {
			slog.Error("failed to send error response", "error", jsonErr)
		}
	}
}

func mapError(err error, exposeInternal bool) (int, Envelope) {
	// Handle echo's own HTTP errors (404, 405, bind failures, etc.)
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, _ := echoErr.Message.(string)
		if echoErr.Code == http.StatusNotFound {
			msg = "endpoint not found"
		}
		if msg == "" {
			msg = http.StatusText(echoErr.Code)
		}
		return echoErr.Code, Envelope{
			Error: msg,
			Code:  http.StatusText(echoErr.Code),
		}
	}

	var validationErr *domain.ValidationError
	var notFoundErr *domain.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, Envelope{
			Error: validationErr.Message,
			Code:  "validation_error",
			Details: []FieldError{
				{Field: validationErr.Field, Message: validationErr.Message},
			},
		}
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, Envelope{
			Error: notFoundErr.Error(),
			Code:  "not_found",
		}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, Envelope{
			Error: "The requested resource was not found",
			Code:  "not_found",
		}
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, Envelope{
			Error: "The request body is invalid",
			Code:  "invalid_input",
		}
	default:
		slog.Error("unhandled error", "error", err)
		env := Envelope{
			Error: "An unexpected error occurred",
			Code:  "internal_error",
		}
		if exposeInternal {
			env.Error = err.Error()
		}
		return http.StatusInternalServerError, env
	}
}
