package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

func TestTicketHandler_Purchase(t *testing.T) {
	var got ports.PurchaseInput
	replay := false
	stub := &stubTicketService{
		purchaseFn: func(ctx context.Context, in ports.PurchaseInput) (*ports.PurchaseResult, error) {
			got = in
			return &ports.PurchaseResult{
				Ticket:         &domain.Ticket{ID: 11, UserID: in.UserID, MatchID: in.MatchID, Code: "ABCD234567", Status: domain.TicketActive},
				AlreadyExisted: replay,
			}, nil
		},
	}
	handler := NewTicketHandler(stub)

	c := newCall(http.MethodPost, "/api/tickets", `{"match_id":3,"seat_section":"North"}`).as(testUser)
	c.c.Request().Header.Set("Idempotency-Key", "  order-1  ")
	body := c.run(t, handler.Purchase)
	expectStatus(t, c, http.StatusCreated)
	if got.UserID != testUser.ID || got.MatchID != 3 || got.SeatSection != "North" || got.IdempotencyKey != "order-1" {
		t.Fatalf("unexpected input %+v", got)
	}
	if body["ticket"].(map[string]any)["code"] != "ABCD234567" {
		t.Fatalf("unexpected body %v", body)
	}

	replay = true
	c = newCall(http.MethodPost, "/api/tickets", `{"match_id":3,"seat_section":"North"}`).as(testUser)
	c.c.Request().Header.Set("Idempotency-Key", strings.Repeat("k", 300))
	c.run(t, handler.Purchase)
	expectStatus(t, c, http.StatusOK)
	if len(got.IdempotencyKey) != maxIdempotencyKeyLen {
		t.Fatalf("key not truncated: %d", len(got.IdempotencyKey))
	}
}

func TestTicketHandler_PurchaseErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrSoldOut, http.StatusConflict, "match is sold out"},
		{domain.ErrNotOnSale, http.StatusConflict, "tickets are not on sale for this match"},
		{domain.ErrPurchaseInProgress, http.StatusConflict, "a purchase with this idempotency key is still in progress"},
		{domain.ErrNotFound, http.StatusNotFound, "resource not found"},
	}
	for _, tc := range cases {
		stub := &stubTicketService{
			purchaseFn: func(ctx context.Context, in ports.PurchaseInput) (*ports.PurchaseResult, error) {
				return nil, tc.err
			},
		}
		c := newCall(http.MethodPost, "/api/tickets", `{"match_id":3,"seat_section":"North"}`).as(testUser)
		body := c.run(t, NewTicketHandler(stub).Purchase)
		expectFailure(t, c, body, tc.code, tc.msg)
	}

	c := newCall(http.MethodPost, "/api/tickets", `{"seat_section":"North"}`).as(testUser)
	body := c.run(t, NewTicketHandler(&stubTicketService{}).Purchase)
	expectFailure(t, c, body, http.StatusBadRequest, "match_id is required")
}

func TestTicketHandler_Cancel(t *testing.T) {
	stub := &stubTicketService{
		cancelFn: func(ctx context.Context, userID, ticketID int64) (*domain.Ticket, error) {
			if userID != testUser.ID {
				return nil, domain.ErrForbidden
			}
			return &domain.Ticket{ID: ticketID, Status: domain.TicketCancelled}, nil
		},
	}
	handler := NewTicketHandler(stub)

	c := newCall(http.MethodPatch, "/api/tickets/11/cancel", "").as(testUser).param("id", "11")
	body := c.run(t, handler.Cancel)
	expectStatus(t, c, http.StatusOK)
	if body["ticket"].(map[string]any)["status"] != "cancelled" {
		t.Fatalf("unexpected body %v", body)
	}

	other := &domain.Principal{ID: 99, Role: domain.RoleUser}
	c = newCall(http.MethodPatch, "/api/tickets/11/cancel", "").as(other).param("id", "11")
	body = c.run(t, handler.Cancel)
	expectFailure(t, c, body, http.StatusForbidden, "access forbidden")
}

func TestTicketHandler_Mine(t *testing.T) {
	stub := &stubTicketService{
		mineFn: func(ctx context.Context, userID int64) ([]domain.Ticket, error) {
			return []domain.Ticket{{ID: 1, UserID: userID}, {ID: 2, UserID: userID}}, nil
		},
	}
	c := newCall(http.MethodGet, "/api/tickets/mine", "").as(testUser)
	body := c.run(t, NewTicketHandler(stub).Mine)
	expectStatus(t, c, http.StatusOK)
	if len(body["tickets"].([]any)) != 2 {
		t.Fatalf("unexpected body %v", body)
	}
}
