package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/saaprojects/setlist/internal/core/domain"
	"github.com/saaprojects/setlist/internal/core/service"
)

func TestHTTPErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{domain.ErrWeakPassword, http.StatusUnprocessableEntity, domain.ErrWeakPassword.Error()},
		{domain.ErrDuplicateEmail, http.StatusBadRequest, domain.ErrDuplicateEmail.Error()},
		{domain.ErrDuplicateUsername, http.StatusBadRequest, domain.ErrDuplicateUsername.Error()},
		{domain.ErrInvalidRole, http.StatusBadRequest, domain.ErrInvalidRole.Error()},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrAccountDeactivated, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrTokenExpired, http.StatusUnauthorized, "invalid token"},
		{domain.ErrTokenInvalid, http.StatusUnauthorized, "invalid token"},
		{domain.ErrTokenRevoked, http.StatusUnauthorized, "invalid token"},
		{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{domain.ErrAccountNotFound, http.StatusNotFound, "account not found"},
		{domain.ErrProfileNotFound, http.StatusNotFound, "artist profile not found"},
		{domain.ErrCollaborationNotFound, http.StatusNotFound, "collaboration not found"},
		{domain.ErrDuplicatePendingCollaboration, http.StatusConflict, domain.ErrDuplicatePendingCollaboration.Error()},
		{domain.ErrInvalidCollaborationTransition, http.StatusUnprocessableEntity, domain.ErrInvalidCollaborationTransition.Error()},
		{service.ErrSelfCollaboration, http.StatusBadRequest, service.ErrSelfCollaboration.Error()},
		{service.ErrInvalidPicture, http.StatusBadRequest, service.ErrInvalidPicture.Error()},
	}

	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handle(tc.err, c)

		if rec.Code != tc.wantCode {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.wantCode, rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%v: invalid json: %v", tc.err, err)
		}
		if resp["error"] != tc.wantMsg {
			t.Fatalf("%v: expected message %q, got %q", tc.err, tc.wantMsg, resp["error"])
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handle(fmt.Errorf("%w (from accepted to declined)", domain.ErrInvalidCollaborationTransition), c)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handle(echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"), c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "missing authorization header" {
		t.Fatalf("unexpected message: %q", resp["error"])
	}
}

func TestHTTPErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handle(fmt.Errorf("pq: connection reset by peer"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "internal server error" {
		t.Fatalf("internal detail leaked: %q", resp["error"])
	}
}
