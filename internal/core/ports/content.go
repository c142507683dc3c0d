package ports

import (
	"context"

	"github.com/matchday/club-api/internal/core/domain"
)

// Store is the CRUD surface shared by the club content repositories.
type Store[T any] interface {
	Create(ctx context.Context, item *T) error
	FindByID(ctx context.Context, id int64) (*T, error)
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id int64) error
}

// MatchRepository persists fixtures.
type MatchRepository interface {
	Store[domain.Match]
	List(ctx context.Context, page Page) ([]domain.Match, int64, error)
}

// PlayerRepository persists the roster.
type PlayerRepository interface {
	Store[domain.Player]
	List(ctx context.Context, page Page) ([]domain.Player, int64, error)
}

// ProductRepository persists shop items.
type ProductRepository interface {
	Store[domain.Product]
	// List filters by category when it is non-empty.
	List(ctx context.Context, category string, page Page) ([]domain.Product, int64, error)
}

// NewsRepository persists articles.
type NewsRepository interface {
	Store[domain.NewsArticle]
	List(ctx context.Context, publishedOnly bool, page Page) ([]domain.NewsArticle, int64, error)
}

// Catalog is the admin-editable surface of one kind of club content.
type Catalog[T any] interface {
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id int64) error
}

// MatchListing is a fixture as seen by a particular viewer.
type MatchListing struct {
	domain.Match
	HasTicket bool `json:"has_ticket"`
}

// MatchService lists fixtures, flagging those the viewer holds tickets for.
type MatchService interface {
	Catalog[domain.Match]
	// List accepts a nil viewer for anonymous callers.
	List(ctx context.Context, viewer *domain.Principal, page Page) ([]MatchListing, int64, error)
}

type PlayerService interface {
	Catalog[domain.Player]
	List(ctx context.Context, page Page) ([]domain.Player, int64, error)
}

type ProductService interface {
	Catalog[domain.Product]
	List(ctx context.Context, category string, page Page) ([]domain.Product, int64, error)
}

type NewsService interface {
	Catalog[domain.NewsArticle]
	List(ctx context.Context, publishedOnly bool, page Page) ([]domain.NewsArticle, int64, error)
}
