package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	nanoid "github.com/jaevor/go-nanoid"
	"github.com/rs/zerolog"

	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

// Ticket codes avoid look-alike characters so they can be read out at the gate.
const (
	ticketCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	ticketCodeLength   = 10
)

type TicketService struct {
	tickets ports.TicketRepository
	matches ports.MatchRepository
	idem    ports.IdempotencyStore
	audit   ports.AuditRecorder
	logger  zerolog.Logger
	code    func() string
	now     func() time.Time
}

// NewTicketService builds the ticket office. idem may be nil, in which case
// Idempotency-Key headers are ignored.
func NewTicketService(
	tickets ports.TicketRepository,
	matches ports.MatchRepository,
	idem ports.IdempotencyStore,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) (*TicketService, error) {
	gen, err := nanoid.CustomASCII(ticketCodeAlphabet, ticketCodeLength)
	if err != nil {
		return nil, fmt.Errorf("ticket code generator: %w", err)
	}
	return &TicketService{
		tickets: tickets,
		matches: matches,
		idem:    idem,
		audit:   audit,
		logger:  logger,
		code:    gen,
		now:     time.Now,
	}, nil
}

// Purchase buys one seat. An Idempotency-Key is reserved before the seat is
// taken: a repeat of a completed purchase returns the ticket it produced, and
// a repeat arriving while the first is still running gets
// ErrPurchaseInProgress instead of a second seat.
func (s *TicketService) Purchase(ctx context.Context, in ports.PurchaseInput) (*ports.PurchaseResult, error) {
	section := strings.TrimSpace(in.SeatSection)
	if in.MatchID <= 0 || section == "" {
		return nil, domain.Invalid(domain.ErrInvalidInput, "match_id and seat_section are required")
	}

	reserved := false
	if in.IdempotencyKey != "" && s.idem != nil {
		claim, err := s.idem.Reserve(ctx, s.idemKey(in))
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("idempotency store unavailable, purchasing anyway")
		case claim.Reserved:
			reserved = true
		case claim.TicketID == 0:
			return nil, domain.ErrPurchaseInProgress
		default:
			existing, err := s.tickets.FindByID(ctx, claim.TicketID)
			if err == nil {
				s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Int64("ticket_id", existing.ID).Msg("idempotent replay")
				return &ports.PurchaseResult{Ticket: existing, AlreadyExisted: true}, nil
			}
			s.logger.Warn().Err(err).Int64("ticket_id", claim.TicketID).Msg("remembered ticket not found, purchasing anyway")
			reserved = true
		}
	}

	ticket, err := s.buy(ctx, in.UserID, in.MatchID, section)
	if reserved {
		s.settle(ctx, in, ticket, err)
	}
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditTicketBought, in.UserID, ticket)
	s.logger.Info().Int64("ticket_id", ticket.ID).Int64("match_id", ticket.MatchID).Int64("user_id", in.UserID).Msg("ticket purchased")

	return &ports.PurchaseResult{Ticket: ticket}, nil
}

func (s *TicketService) buy(ctx context.Context, userID, matchID int64, section string) (*domain.Ticket, error) {
	match, err := s.matches.FindByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.OnSale() {
		return nil, domain.ErrNotOnSale
	}
	if match.SeatsAvailable <= 0 {
		return nil, domain.ErrSoldOut
	}

	now := s.now().UTC()
	ticket := &domain.Ticket{
		UserID:      userID,
		MatchID:     match.ID,
		SeatSection: section,
		Price:       match.TicketPrice,
		Code:        s.code(),
		Status:      domain.TicketActive,
		PurchasedAt: now,
		UpdatedAt:   now,
	}
	if err := s.tickets.Purchase(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// settle binds a reserved key to the new ticket, or frees it when the
// purchase failed so the client can retry with the same key.
func (s *TicketService) settle(ctx context.Context, in ports.PurchaseInput, ticket *domain.Ticket, purchaseErr error) {
	ctx = context.WithoutCancel(ctx)
	key := s.idemKey(in)
	if purchaseErr != nil {
		if err := s.idem.Release(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to release idempotency key")
		}
		return
	}
	if err := s.idem.Complete(ctx, key, ticket.ID); err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to remember idempotency key")
	}
}

// Cancel voids a ticket owned by userID and returns its seat.
func (s *TicketService) Cancel(ctx context.Context, userID, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if ticket.Status == domain.TicketCancelled {
		return nil, fmt.Errorf("ticket already cancelled: %w", domain.ErrConflict)
	}

	now := s.now().UTC()
	if err := s.tickets.Cancel(ctx, ticketID, now); err != nil {
		return nil, err
	}
	ticket.Status = domain.TicketCancelled
	ticket.UpdatedAt = now

	s.record(domain.AuditTicketVoided, userID, ticket)
	return ticket, nil
}

func (s *TicketService) ListMine(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	return s.tickets.ListByUser(ctx, userID)
}

func (s *TicketService) ListAll(ctx context.Context, page ports.Page) ([]domain.Ticket, int64, error) {
	return s.tickets.List(ctx, page.Normalize())
}

// idemKey scopes a client key to its user so keys cannot collide across users.
func (s *TicketService) idemKey(in ports.PurchaseInput) string {
	return strconv.FormatInt(in.UserID, 10) + ":" + in.IdempotencyKey
}

func (s *TicketService) record(action string, userID int64, t *domain.Ticket) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		Action:    action,
		ActorRole: domain.RoleUser,
		ActorID:   userID,
		Subject:   t.Code,
		Detail: map[string]string{
			"ticket_id": strconv.FormatInt(t.ID, 10),
			"match_id":  strconv.FormatInt(t.MatchID, 10),
		},
		At: s.now().UTC(),
	})
}
