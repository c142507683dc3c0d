package service

import (
	"context"
	"fmt"
	"time"

	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

// catalog delegates the shared CRUD surface to a store. Not-found is reported
// by the store as domain.ErrNotFound.
type catalog[T any] struct {
	store ports.Store[T]
}

func (c catalog[T]) Get(ctx context.Context, id int64) (*T, error) {
	return c.store.FindByID(ctx, id)
}

func (c catalog[T]) Create(ctx context.Context, item *T) error {
	return c.store.Create(ctx, item)
}

func (c catalog[T]) Update(ctx context.Context, item *T) error {
	return c.store.Update(ctx, item)
}

func (c catalog[T]) Delete(ctx context.Context, id int64) error {
	return c.store.Delete(ctx, id)
}

// MatchService serves fixtures.
type MatchService struct {
	catalog[domain.Match]
	matches ports.MatchRepository
	tickets ports.TicketRepository
}

func NewMatchService(matches ports.MatchRepository, tickets ports.TicketRepository) *MatchService {
	return &MatchService{
		catalog: catalog[domain.Match]{store: matches},
		matches: matches,
		tickets: tickets,
	}
}

// Create defaults an unset status to scheduled.
func (s *MatchService) Create(ctx context.Context, m *domain.Match) error {
	if m.Status == "" {
		m.Status = domain.MatchScheduled
	}
	return s.matches.Create(ctx, m)
}

// List flags matches the viewer holds an active ticket for. Anonymous viewers
// and admins get no flags.
func (s *MatchService) List(ctx context.Context, viewer *domain.Principal, page ports.Page) ([]ports.MatchListing, int64, error) {
	matches, total, err := s.matches.List(ctx, page.Normalize())
	if err != nil {
		return nil, 0, err
	}

	owned := map[int64]struct{}{}
	if viewer != nil && viewer.Role == domain.RoleUser {
		ids, err := s.tickets.MatchIDsForUser(ctx, viewer.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("list matches: %w", err)
		}
		for _, id := range ids {
			owned[id] = struct{}{}
		}
	}

	out := make([]ports.MatchListing, 0, len(matches))
	for _, m := range matches {
		_, has := owned[m.ID]
		out = append(out, ports.MatchListing{Match: m, HasTicket: has})
	}
	return out, total, nil
}

// PlayerService serves the roster.
type PlayerService struct {
	catalog[domain.Player]
	players ports.PlayerRepository
}

func NewPlayerService(players ports.PlayerRepository) *PlayerService {
	return &PlayerService{catalog: catalog[domain.Player]{store: players}, players: players}
}

func (s *PlayerService) List(ctx context.Context, page ports.Page) ([]domain.Player, int64, error) {
	return s.players.List(ctx, page.Normalize())
}

// ProductService serves the shop.
type ProductService struct {
	catalog[domain.Product]
	products ports.ProductRepository
}

func NewProductService(products ports.ProductRepository) *ProductService {
	return &ProductService{catalog: catalog[domain.Product]{store: products}, products: products}
}

func (s *ProductService) List(ctx context.Context, category string, page ports.Page) ([]domain.Product, int64, error) {
	return s.products.List(ctx, category, page.Normalize())
}

// NewsService serves articles and stamps their publication time.
type NewsService struct {
	catalog[domain.NewsArticle]
	news ports.NewsRepository
	now  func() time.Time
}

func NewNewsService(news ports.NewsRepository) *NewsService {
	return &NewsService{catalog: catalog[domain.NewsArticle]{store: news}, news: news, now: time.Now}
}

func (s *NewsService) List(ctx context.Context, publishedOnly bool, page ports.Page) ([]domain.NewsArticle, int64, error) {
	return s.news.List(ctx, publishedOnly, page.Normalize())
}

func (s *NewsService) Create(ctx context.Context, a *domain.NewsArticle) error {
	s.stamp(a)
	return s.news.Create(ctx, a)
}

func (s *NewsService) Update(ctx context.Context, a *domain.NewsArticle) error {
	s.stamp(a)
	return s.news.Update(ctx, a)
}

func (s *NewsService) stamp(a *domain.NewsArticle) {
	switch {
	case a.Published && a.PublishedAt == nil:
		now := s.now().UTC()
		a.PublishedAt = &now
	case !a.Published:
		a.PublishedAt = nil
	}
}
