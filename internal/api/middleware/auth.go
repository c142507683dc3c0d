package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/matchday/club-api/internal/api/metrics"
	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
	"github.com/matchday/club-api/pkg/logger"
)

const principalKey = "principal"

// RequireAdmin accepts admin tokens only.
func RequireAdmin(authz ports.Authorizer) echo.MiddlewareFunc {
	return require(authz, "admin", domain.RoleAdmin)
}

// RequireUser accepts user and admin tokens. Admins are attached in the same
// principal shape as users.
func RequireUser(authz ports.Authorizer) echo.MiddlewareFunc {
	return require(authz, "user", domain.RoleUser, domain.RoleAdmin)
}

func require(authz ports.Authorizer, gate string, allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			values := c.Request().Header.Values(echo.HeaderAuthorization)
			if len(values) == 0 {
				metrics.AuthDecisionsTotal.WithLabelValues(gate, outcome(domain.ErrTokenMissing)).Inc()
				return domain.ErrTokenMissing
			}

			token := bearerToken(values[0])
			if token == "" {
				metrics.AuthDecisionsTotal.WithLabelValues(gate, outcome(domain.ErrTokenInvalid)).Inc()
				return domain.ErrTokenInvalid
			}

			// The credential row is read on every request so deactivation and
			// profile edits apply before the token expires.
			p, err := authz.Authorize(c.Request().Context(), token, allowed...)
			metrics.AuthDecisionsTotal.WithLabelValues(gate, outcome(err)).Inc()
			if err != nil {
				return err
			}

			attach(c, p)
			return next(c)
		}
	}
}

// OptionalAuth attaches a user principal when the request carries a valid user
// token and proceeds anonymously otherwise. It never rejects a request.
func OptionalAuth(authz ports.Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				metrics.AuthDecisionsTotal.WithLabelValues("optional", "anonymous").Inc()
				return next(c)
			}

			p, err := authz.Authorize(c.Request().Context(), token, domain.RoleUser)
			if err != nil {
				if outcome(err) == "error" {
					logger.Ctx(c.Request().Context()).Warn().Err(err).Msg("optional auth failed, continuing anonymously")
				}
				metrics.AuthDecisionsTotal.WithLabelValues("optional", "anonymous").Inc()
				return next(c)
			}

			metrics.AuthDecisionsTotal.WithLabelValues("optional", "allowed").Inc()
			attach(c, p)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal attached by an auth gate, or nil.
func PrincipalFrom(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}

func attach(c echo.Context, p *domain.Principal) {
	c.Set(principalKey, p)
	req := c.Request()
	l := logger.Ctx(req.Context()).With().Str("role", string(p.Role)).Int64("principal_id", p.ID).Logger()
	c.SetRequest(req.WithContext(logger.WithContext(req.Context(), l)))
}

// bearerToken strips an optional "Bearer" scheme; anything else is taken as
// the raw token.
func bearerToken(header string) string {
	v := strings.TrimSpace(header)
	if len(v) >= len("bearer") && strings.EqualFold(v[:len("bearer")], "bearer") {
		rest := v[len("bearer"):]
		if rest == "" {
			return ""
		}
		if rest[0] == ' ' || rest[0] == '\t' {
			return strings.TrimSpace(rest)
		}
	}
	return v
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "allowed"
	case errors.Is(err, domain.ErrTokenMissing):
		return "missing"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenInvalid):
		return "invalid"
	case errors.Is(err, domain.ErrRoleMismatch):
		return "role_mismatch"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAccountDisabled):
		return "disabled"
	default:
		return "error"
	}
}
