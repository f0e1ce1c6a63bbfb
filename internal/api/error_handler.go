package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/saaprojects/setlist/internal/core/domain"
	"github.com/saaprojects/setlist/internal/core/service"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrWeakPassword):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicateUsername),
		errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrAccountDeactivated):
		// Deliberately uninformative: which part of the credential failed
		// is never exposed to the caller.
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenMalformed),
		errors.Is(err, domain.ErrTokenRevoked):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "account not found"
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, "artist profile not found"
	case errors.Is(err, domain.ErrCollaborationNotFound):
		return http.StatusNotFound, "collaboration not found"
	case errors.Is(err, domain.ErrDuplicatePendingCollaboration):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidCollaborationTransition):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, service.ErrSelfCollaboration):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidPicture):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
