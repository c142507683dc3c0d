package ports

import (
	"context"
	"time"

	"github.com/matchday/club-api/internal/core/domain"
)

// TicketRepository persists tickets together with match seat counts.
type TicketRepository interface {
	// Purchase inserts the ticket and takes one seat from the match atomically.
	Purchase(ctx context.Context, ticket *domain.Ticket) error
	// Cancel marks the ticket cancelled and returns its seat atomically.
	Cancel(ctx context.Context, ticketID int64, at time.Time) error
	FindByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Ticket, error)
	List(ctx context.Context, page Page) ([]domain.Ticket, int64, error)
	// MatchIDsForUser returns the matches the user holds an active ticket for.
	MatchIDsForUser(ctx context.Context, userID int64) ([]int64, error)
}

// IdempotencyClaim is the outcome of reserving an Idempotency-Key. Exactly
// one caller gets Reserved; the others see the ticket the holder produced, or
// neither field set while the holder is still purchasing.
type IdempotencyClaim struct {
	Reserved bool
	TicketID int64
}

// IdempotencyStore reserves Idempotency-Keys before a purchase and records
// which ticket each one produced.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (IdempotencyClaim, error)
	// Complete binds a reserved key to the ticket it produced.
	Complete(ctx context.Context, key string, ticketID int64) error
	// Release drops a reservation whose purchase failed so the key can be
	// retried.
	Release(ctx context.Context, key string) error
}

// PurchaseInput is the request to buy a ticket.
type PurchaseInput struct {
	UserID         int64
	MatchID        int64
	SeatSection    string
	IdempotencyKey string
}

// PurchaseResult wraps a ticket and whether it was replayed.
type PurchaseResult struct {
	Ticket         *domain.Ticket
	AlreadyExisted bool
}

// TicketService covers the ticket office.
type TicketService interface {
	Purchase(ctx context.Context, in PurchaseInput) (*PurchaseResult, error)
	Cancel(ctx context.Context, userID, ticketID int64) (*domain.Ticket, error)
	ListMine(ctx context.Context, userID int64) ([]domain.Ticket, error)
	ListAll(ctx context.Context, page Page) ([]domain.Ticket, int64, error)
}
