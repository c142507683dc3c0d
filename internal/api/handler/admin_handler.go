package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/matchday/club-api/internal/api/response"
	"github.com/matchday/club-api/internal/core/ports"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AdminHandler serves the back-office account endpoints.
type AdminHandler struct {
	authService ports.AuthService
	audit       ports.AuditReader
}

// NewAdminHandler builds the handler. audit may be nil when the audit trail
// is only logged.
func NewAdminHandler(authService ports.AuthService, audit ports.AuditReader) *AdminHandler {
	return &AdminHandler{authService: authService, audit: audit}
}

// Login authenticates an admin.
//
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      adminLoginRequest  true  "Admin credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  response.ErrorBody
// @Failure      401   {object}  response.ErrorBody
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req adminLoginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	session, err := h.authService.AdminLogin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, echo.Map{"token": session.Token, "user": session.Principal})
}

// Me returns the calling admin.
//
// @Summary      Current admin
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  principalResponse
// @Failure      401  {object}  response.ErrorBody
// @Failure      403  {object}  response.ErrorBody
// @Router       /admin/me [get]
func (h *AdminHandler) Me(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, echo.Map{"user": p})
}

// ListUsers pages through supporter accounts.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int  false  "Page (1-based)"
// @Param        per_page  query     int  false  "Page size (max 100)"
// @Success      200       {object}  userListResponse
// @Failure      401       {object}  response.ErrorBody
// @Failure      403       {object}  response.ErrorBody
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page := pageParams(c)
	users, total, err := h.authService.ListUsers(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return response.List(c, http.StatusOK, "users", users, page, total)
}

// SetUserStatus activates or deactivates a supporter account. A deactivated
// user is rejected by the auth gate on their next request.
//
// @Summary      Activate or deactivate a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User ID"
// @Param        body  body      userStatusRequest  true  "New status"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  response.ErrorBody
// @Failure      404   {object}  response.ErrorBody
// @Router       /admin/users/{id}/status [patch]
func (h *AdminHandler) SetUserStatus(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req userStatusRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	user, err := h.authService.SetUserActive(c.Request().Context(), actor, id, *req.Active)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, echo.Map{"user": user})
}

// Audit returns the most recent audit entries.
//
// @Summary      Recent audit entries
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        action  query     string  false  "Filter by action (e.g. auth.login)"
// @Param        limit   query     int     false  "Maximum entries (default 50, max 500)"
// @Success      200     {object}  auditListResponse
// @Failure      401     {object}  response.ErrorBody
// @Failure      403     {object}  response.ErrorBody
// @Failure      503     {object}  response.ErrorBody
// @Router       /admin/audit [get]
func (h *AdminHandler) Audit(c echo.Context) error {
	if h.audit == nil {
		return response.Fail(c, http.StatusServiceUnavailable, "audit trail is not configured")
	}

	limit, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if err != nil || limit <= 0 {
		limit = defaultAuditLimit
	}
	limit = min(limit, maxAuditLimit)

	entries, err := h.audit.Recent(c.Request().Context(), c.QueryParam("action"), limit)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, echo.Map{"entries": entries})
}
