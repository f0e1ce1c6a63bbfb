package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/saaprojects/setlist/internal/core/ports"
)

// Context keys set by Auth for downstream middleware and handlers.
const (
	ContextAccount  = "account"
	ContextRole     = "role"
	ContextUsername = "username"
	ContextToken    = "token"
)

// Auth authenticates the bearer token and injects the resolved account into
// the request context. Expired, tampered, revoked, and unresolvable tokens
// all yield the same 401; the distinction lives in the service logs only.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			account, err := auth.AuthenticateByToken(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextAccount, account)
			c.Set(ContextRole, string(account.Role))
			c.Set(ContextUsername, account.Username)
			c.Set(ContextToken, parts[1])

			return next(c)
		}
	}
}
