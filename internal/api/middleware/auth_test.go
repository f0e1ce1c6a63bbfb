package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/saaprojects/setlist/internal/core/domain"
	"github.com/saaprojects/setlist/internal/core/ports"
)

type stubAuthService struct {
	account *domain.Account
	err     error
	token   string
}

func (s *stubAuthService) AuthenticateByToken(_ context.Context, token string) (*domain.Account, error) {
	s.token = token
	if s.err != nil {
		return nil, s.err
	}
	return s.account, nil
}

func (s *stubAuthService) AuthenticateByPassword(context.Context, string, string) (*domain.Account, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.LoginResult, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) Logout(context.Context, string) error { return nil }

func (s *stubAuthService) Deactivate(context.Context, string) error { return nil }

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	svc := &stubAuthService{account: &domain.Account{
		ID:       "acc-1",
		Username: "mina",
		Role:     domain.RoleArtist,
		Active:   true,
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(svc)(func(c echo.Context) error {
		called = true
		account, ok := c.Get(ContextAccount).(*domain.Account)
		if !ok || account.Username != "mina" {
			t.Fatalf("account not set: %+v", c.Get(ContextAccount))
		}
		if c.Get(ContextRole) != "artist" {
			t.Fatalf("role not set")
		}
		if c.Get(ContextUsername) != "mina" {
			t.Fatalf("username not set")
		}
		if c.Get(ContextToken) != "some-token" {
			t.Fatalf("token not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if svc.token != "some-token" {
		t.Fatalf("token not forwarded to service: %q", svc.token)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(&stubAuthService{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(&stubAuthService{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	e := echo.New()
	for _, cause := range []error{
		domain.ErrTokenExpired,
		domain.ErrTokenInvalid,
		domain.ErrTokenRevoked,
		domain.ErrAccountDeactivated,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer whatever")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := Auth(&stubAuthService{err: cause})(func(c echo.Context) error {
			t.Fatalf("should not reach next for %v", cause)
			return nil
		})

		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("cause %v: expected 401, got %d", cause, rec.Code)
		}
	}
}
