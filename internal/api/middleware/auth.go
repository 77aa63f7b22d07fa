package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/caresync/patient-records/internal/core/domain"
	"github.com/caresync/patient-records/internal/core/ports"
)

// Auth verifies the bearer token on every request and injects the decoded
// identity into context. Nothing downstream runs when verification fails, so
// unauthenticated requests can never cause side effects.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrTokenMissing
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrTokenInvalid
			}

			identity, err := tokens.Verify(parts[1])
			if err != nil {
				return err
			}

			c.Set("username", identity.Username)
			c.Set("role", identity.Role)

			return next(c)
		}
	}
}
