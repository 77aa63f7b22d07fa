package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/caresync/patient-records/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty role proves
// the middleware ran on this request.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	role, _ := c.Get("role").(domain.Role)
	if role == "" {
		return domain.Identity{}, domain.ErrTokenMissing
	}

	username, _ := c.Get("username").(string)
	return domain.Identity{Username: username, Role: role}, nil
}
