package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matchday/club-api/internal/api/response"
	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

type ComplaintHandler struct {
	service ports.ComplaintService
}

func NewComplaintHandler(service ports.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

// File records a complaint from the caller.
//
// @Summary      File a complaint
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      complaintRequest  true  "Complaint"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  response.ErrorBody
// @Router       /complaints [post]
func (h *ComplaintHandler) File(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req complaintRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	complaint, err := h.service.File(c.Request().Context(), p.ID, req.Subject, req.Message)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, echo.Map{"complaint": complaint})
}

// @Summary      My complaints
// @Tags         complaints
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /complaints/mine [get]
func (h *ComplaintHandler) Mine(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	complaints, err := h.service.ListMine(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, echo.Map{"complaints": complaints})
}

// List pages through complaints, optionally by status.
//
// @Summary      List complaints
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "open, in_progress or resolved"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        per_page  query     int     false  "Page size (max 100)"
// @Success      200       {object}  map[string]any
// @Failure      400       {object}  response.ErrorBody
// @Router       /admin/complaints [get]
func (h *ComplaintHandler) List(c echo.Context) error {
	page := pageParams(c)
	status := domain.ComplaintStatus(c.QueryParam("status"))
	complaints, total, err := h.service.List(c.Request().Context(), status, page)
	if err != nil {
		return err
	}
	return response.List(c, http.StatusOK, "complaints", complaints, page, total)
}

// Respond answers a complaint and optionally moves its status.
//
// @Summary      Respond to a complaint
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "Complaint ID"
// @Param        body  body      complaintResponseRequest  true  "Answer"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  response.ErrorBody
// @Failure      404   {object}  response.ErrorBody
// @Router       /admin/complaints/{id} [patch]
func (h *ComplaintHandler) Respond(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req complaintResponseRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	complaint, err := h.service.Respond(c.Request().Context(), id, req.Status, req.Response)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, echo.Map{"complaint": complaint})
}
