package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

// TicketRepository implements ports.TicketRepository. Seat counts live on
// the matches table and change in the same transaction as the ticket row.
type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Purchase(ctx context.Context, t *domain.Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Match{}).
			Where("id = ? AND status = ? AND seats_available > 0", t.MatchID, domain.MatchScheduled).
			UpdateColumn("seats_available", gorm.Expr("seats_available - 1"))
		if res.Error != nil {
			return fmt.Errorf("reserve seat: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			var m domain.Match
			if err := tx.First(&m, t.MatchID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrNotFound
				}
				return fmt.Errorf("reserve seat: %w", err)
			}
			if !m.OnSale() {
				return domain.ErrNotOnSale
			}
			return domain.ErrSoldOut
		}

		if err := tx.Create(t).Error; err != nil {
			return fmt.Errorf("insert ticket: %w", err)
		}
		return nil
	})
}

func (r *TicketRepository) Cancel(ctx context.Context, ticketID int64, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t domain.Ticket
		if err := tx.First(&t, ticketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("find ticket: %w", err)
		}

		res := tx.Model(&domain.Ticket{}).
			Where("id = ? AND status = ?", ticketID, domain.TicketActive).
			UpdateColumns(map[string]any{"status": domain.TicketCancelled, "updated_at": at})
		if res.Error != nil {
			return fmt.Errorf("cancel ticket: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("ticket already cancelled: %w", domain.ErrConflict)
		}

		if err := tx.Model(&domain.Match{}).Where("id = ?", t.MatchID).
			UpdateColumn("seats_available", gorm.Expr("seats_available + 1")).Error; err != nil {
			return fmt.Errorf("release seat: %w", err)
		}
		return nil
	})
}

func (r *TicketRepository) FindByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return &t, nil
}

func (r *TicketRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	var out []domain.Ticket
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchased_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list user tickets: %w", err)
	}
	return out, nil
}

func (r *TicketRepository) List(ctx context.Context, page ports.Page) ([]domain.Ticket, int64, error) {
	var out []domain.Ticket
	total, err := paginate(r.db.WithContext(ctx).Model(&domain.Ticket{}), "purchased_at DESC, id DESC", page, &out)
	if err != nil {
		return nil, 0, fmt.Errorf("list tickets: %w", err)
	}
	return out, total, nil
}

func (r *TicketRepository) MatchIDsForUser(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Ticket{}).
		Where("user_id = ? AND status = ?", userID, domain.TicketActive).
		Distinct().
		Pluck("match_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list ticket matches: %w", err)
	}
	return ids, nil
}
