package middleware

import (
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/matchday/club-api/internal/core/domain"
)

// RequireRole narrows a route behind RequireUser to the given principal roles.
// It must run after an auth gate.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFrom(c)
			if p == nil {
				return domain.ErrTokenMissing
			}
			if !slices.Contains(roles, p.Role) {
				return &domain.RoleMismatchError{Required: roles[0]}
			}
			return next(c)
		}
	}
}
