package handler

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/matchday/club-api/internal/api/middleware"
	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

// bindValid binds the request body into req and runs the validator.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Invalid(domain.ErrInvalidInput, "invalid payload")
	}
	return c.Validate(req)
}

// ctxPrincipal returns the principal attached by the auth gate. Routes using
// it sit behind RequireUser or RequireAdmin, so a nil principal means the
// route was wired without a gate.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		return nil, domain.ErrTokenMissing
	}
	return p, nil
}

// idParam parses the positive integer :id route parameter.
func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(domain.ErrInvalidInput, "id must be a positive integer")
	}
	return id, nil
}

// pageParams reads page and per_page; bad values fall back to defaults.
func pageParams(c echo.Context) ports.Page {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))
	return ports.Page{Page: page, PerPage: perPage}.Normalize()
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}
