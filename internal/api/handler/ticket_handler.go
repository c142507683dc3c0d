package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/matchday/club-api/internal/api/response"
	"github.com/matchday/club-api/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// maxIdempotencyKeyLen bounds the client key before it is used in a store key.
const maxIdempotencyKeyLen = 128

type TicketHandler struct {
	service ports.TicketService
}

func NewTicketHandler(service ports.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

// Purchase buys one seat for a scheduled match.
//
// @Summary      Buy a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string           false  "Repeat-safe purchase key"
// @Param        body             body      purchaseRequest  true   "Ticket request"
// @Success      201              {object}  ticketResponse
// @Success      200              {object}  ticketResponse   "Replayed purchase"
// @Failure      400              {object}  response.ErrorBody
// @Failure      404              {object}  response.ErrorBody
// @Failure      409              {object}  response.ErrorBody
// @Router       /tickets [post]
func (h *TicketHandler) Purchase(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req purchaseRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	key := strings.TrimSpace(c.Request().Header.Get(headerIdempotencyKey))
	if len(key) > maxIdempotencyKeyLen {
		key = key[:maxIdempotencyKeyLen]
	}

	result, err := h.service.Purchase(c.Request().Context(), ports.PurchaseInput{
		UserID:         p.ID,
		MatchID:        req.MatchID,
		SeatSection:    req.SeatSection,
		IdempotencyKey: key,
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return response.OK(c, status, echo.Map{"ticket": result.Ticket})
}

// Mine lists the caller's tickets.
//
// @Summary      My tickets
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  response.ErrorBody
// @Router       /tickets/mine [get]
func (h *TicketHandler) Mine(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.ListMine(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, echo.Map{"tickets": tickets})
}

// Cancel voids one of the caller's tickets and returns its seat.
//
// @Summary      Cancel a ticket
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Ticket ID"
// @Success      200  {object}  ticketResponse
// @Failure      403  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Failure      409  {object}  response.ErrorBody
// @Router       /tickets/{id}/cancel [patch]
func (h *TicketHandler) Cancel(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.Cancel(c.Request().Context(), p.ID, id)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, echo.Map{"ticket": ticket})
}

// ListAll pages through every ticket sold.
//
// @Summary      List all tickets
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int  false  "Page (1-based)"
// @Param        per_page  query     int  false  "Page size (max 100)"
// @Success      200       {object}  map[string]any
// @Router       /admin/tickets [get]
func (h *TicketHandler) ListAll(c echo.Context) error {
	page := pageParams(c)
	tickets, total, err := h.service.ListAll(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return response.List(c, http.StatusOK, "tickets", tickets, page, total)
}
