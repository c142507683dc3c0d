package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

// MatchRepository implements ports.MatchRepository.
type MatchRepository struct {
	store[domain.Match]
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{store[domain.Match]{db: db, name: "match"}}
}

func (r *MatchRepository) List(ctx context.Context, page ports.Page) ([]domain.Match, int64, error) {
	var out []domain.Match
	total, err := paginate(r.db.WithContext(ctx).Model(&domain.Match{}), "kickoff_at ASC, id ASC", page, &out)
	if err != nil {
		return nil, 0, fmt.Errorf("list matches: %w", err)
	}
	return out, total, nil
}

// PlayerRepository implements ports.PlayerRepository.
type PlayerRepository struct {
	store[domain.Player]
}

func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{store[domain.Player]{db: db, name: "player"}}
}

func (r *PlayerRepository) List(ctx context.Context, page ports.Page) ([]domain.Player, int64, error) {
	var out []domain.Player
	total, err := paginate(r.db.WithContext(ctx).Model(&domain.Player{}), "number ASC, id ASC", page, &out)
	if err != nil {
		return nil, 0, fmt.Errorf("list players: %w", err)
	}
	return out, total, nil
}

// ProductRepository implements ports.ProductRepository.
type ProductRepository struct {
	store[domain.Product]
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{store[domain.Product]{db: db, name: "product"}}
}

func (r *ProductRepository) List(ctx context.Context, category string, page ports.Page) ([]domain.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var out []domain.Product
	total, err := paginate(q, "name ASC, id ASC", page, &out)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return out, total, nil
}

// NewsRepository implements ports.NewsRepository.
type NewsRepository struct {
	store[domain.NewsArticle]
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{store[domain.NewsArticle]{db: db, name: "news article"}}
}

func (r *NewsRepository) List(ctx context.Context, publishedOnly bool, page ports.Page) ([]domain.NewsArticle, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.NewsArticle{})
	if publishedOnly {
		q = q.Where("published = ?", true)
	}

	var out []domain.NewsArticle
	total, err := paginate(q, "COALESCE(published_at, created_at) DESC, id DESC", page, &out)
	if err != nil {
		return nil, 0, fmt.Errorf("list news: %w", err)
	}
	return out, total, nil
}
