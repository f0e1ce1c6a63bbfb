package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saaprojects/setlist/internal/api/middleware"
	"github.com/saaprojects/setlist/internal/core/domain"
)

// ctxAccount extracts the account injected by the Auth middleware. Its
// presence proves the middleware ran; a handler reached without it is a
// routing mistake and is rejected as unauthenticated rather than served.
func ctxAccount(c echo.Context) (*domain.Account, error) {
	account, _ := c.Get(middleware.ContextAccount).(*domain.Account)
	if account == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return account, nil
}

// ctxToken returns the raw bearer token the Auth middleware validated.
func ctxToken(c echo.Context) string {
	token, _ := c.Get(middleware.ContextToken).(string)
	return token
}
