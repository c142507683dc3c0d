package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/matchday/club-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the failure envelope: {"success": false, "message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := Resolve(err)
		if code == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = Fail(c, code, msg)
	}
}

// Resolve maps err to a status code and a client-safe message.
func Resolve(err error) (int, string) {
	// Echo's own errors (bind failures, 404 from router, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, http.StatusText(he.Code)
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Message
	}

	var rm *domain.RoleMismatchError
	if errors.As(err, &rm) {
		return http.StatusForbidden, rm.Error()
	}

	switch {
	case errors.Is(err, domain.ErrTokenMissing),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, sentinelMessage(err)
	case errors.Is(err, domain.ErrAccountDisabled),
		errors.Is(err, domain.ErrRoleMismatch),
		errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, sentinelMessage(err)
	case errors.Is(err, domain.ErrUnsupportedMediaType),
		errors.Is(err, domain.ErrFileTooLarge),
		errors.Is(err, domain.ErrTooManyFiles),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrNoFiles),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, sentinelMessage(err)
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAdminNotFound),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, sentinelMessage(err)
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrSoldOut),
		errors.Is(err, domain.ErrNotOnSale),
		errors.Is(err, domain.ErrPurchaseInProgress):
		return http.StatusConflict, sentinelMessage(err)
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, err.Error()
	}

	return http.StatusInternalServerError, "internal server error"
}

var sentinels = []error{
	domain.ErrTokenMissing, domain.ErrTokenInvalid, domain.ErrTokenExpired,
	domain.ErrAccountNotFound, domain.ErrAccountDisabled, domain.ErrRoleMismatch,
	domain.ErrInvalidCredentials, domain.ErrUserExists, domain.ErrUserNotFound,
	domain.ErrAdminNotFound, domain.ErrUnsupportedMediaType, domain.ErrFileTooLarge,
	domain.ErrTooManyFiles, domain.ErrInvalidCategory, domain.ErrNoFiles,
	domain.ErrInvalidInput, domain.ErrNotFound, domain.ErrForbidden,
	domain.ErrSoldOut, domain.ErrNotOnSale,
}

// sentinelMessage returns the text of the domain sentinel err wraps, so
// wrapping context added by lower layers never reaches the client.
func sentinelMessage(err error) string {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}
