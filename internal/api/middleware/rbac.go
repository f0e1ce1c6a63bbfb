package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saaprojects/setlist/internal/core/domain"
)

// RequireRole enforces role-based access control by exact role equality.
// There is no hierarchy: a promoter is not an artist, and nothing bypasses
// the check. Compose after Auth.
func RequireRole(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if domain.Role(role) != required {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
