// Package response renders the API envelope: {"success":true, ...fields} on
// success and {"success":false,"message":"..."} on failure.
package response

import (
	"github.com/labstack/echo/v4"

	"github.com/matchday/club-api/internal/core/ports"
)

// ErrorBody is the failure envelope.
type ErrorBody struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"invalid token"`
}

// MessageBody is a success envelope carrying only a message.
type MessageBody struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"deleted"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// OK writes a success envelope with the given named fields.
func OK(c echo.Context, code int, fields echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range fields {
		if k == "success" {
			continue
		}
		body[k] = v
	}
	return c.JSON(code, body)
}

// Message writes a success envelope with a message.
func Message(c echo.Context, code int, msg string) error {
	return c.JSON(code, MessageBody{Success: true, Message: msg})
}

// List writes a page of items under key together with pagination metadata.
func List(c echo.Context, code int, key string, items any, page ports.Page, total int64) error {
	p := page.Normalize()
	return OK(c, code, echo.Map{
		key: items,
		"pagination": Pagination{
			Page:       p.Page,
			PerPage:    p.PerPage,
			Total:      total,
			TotalPages: p.TotalPages(total),
		},
	})
}

// Fail writes a failure envelope.
func Fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, ErrorBody{Success: false, Message: msg})
}
