package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"minascan/pkg/logger"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInvalid      = errors.New("invalid input")
	ErrConflict     = errors.New("already exists")
	ErrTooMany      = errors.New("too many attempts")
	ErrUpstream     = errors.New("upstream service failed")
)

// Status maps a service error onto its HTTP status.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrTooMany):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// JSON writes {"error": msg}.
func JSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// Respond writes err with its mapped status. 5xx errors are logged.
func Respond(c echo.Context, module string, err error) error {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		logger.LogError(logger.Get(), module, c.Request().Method+" "+c.Path(), "request failed",
			map[string]any{"request_id": c.Response().Header().Get(echo.HeaderXRequestID)}, err)
	}
	return JSON(c, status, err.Error())
}

type tagged struct {
	kind  error
	cause error
}

func (e *tagged) Error() string   { return e.cause.Error() }
func (e *tagged) Unwrap() []error { return []error{e.kind, e.cause} }

// Tag classifies cause as kind while keeping cause's message.
func Tag(kind, cause error) error {
	if cause == nil {
		return nil
	}
	return &tagged{kind: kind, cause: cause}
}
