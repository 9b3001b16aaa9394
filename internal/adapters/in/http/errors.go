package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the body of every non-2xx response.
type Error struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// StatusFor classifies a core error. Anything unrecognised is a server fault.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrInsufficientReturnQuantity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// flatten splits errors.Join trees into their leaf messages.
func flatten(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			if e != nil {
				out = append(out, flatten(e)...)
			}
		}
		return out
	}
	return []string{err.Error()}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("path", ctx.Path()),
			zap.Error(err))
		return ctx.JSON(status, Error{
			Message: http.StatusText(status),
			Errors:  []string{},
		})
	}

	details := flatten(err)
	message := details[0]
	if len(details) > 1 {
		message = "request has multiple problems"
	}
	return ctx.JSON(status, Error{Message: message, Errors: details})
}

// badRequest reports a malformed request that never reached the core.
func badRequest(ctx echo.Context, message string, cause error) error {
	body := Error{Message: message, Errors: []string{}}
	if cause != nil {
		body.Errors = append(body.Errors, cause.Error())
	}
	return ctx.JSON(http.StatusBadRequest, body)
}
