package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

// store implements ports.Store for any gorm-mapped content entity.
type store[T any] struct {
	db   *gorm.DB
	name string
}

func (s store[T]) Create(ctx context.Context, item *T) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create %s: %w", s.name, err)
	}
	return nil
}

func (s store[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", s.name, err)
	}
	return &item, nil
}

// Update writes every column except id and created_at.
func (s store[T]) Update(ctx context.Context, item *T) error {
	res := s.db.WithContext(ctx).Model(item).Select("*").Omit("id", "created_at").Updates(item)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrMissingWhereClause) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update %s: %w", s.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s store[T]) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return fmt.Errorf("delete %s: still referenced: %w", s.name, domain.ErrConflict)
		}
		return fmt.Errorf("delete %s: %w", s.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// paginate counts the rows q matches and loads one ordered page of them.
func paginate[T any](q *gorm.DB, order string, page ports.Page, out *[]T) (int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}
	page = page.Normalize()
	if err := q.Session(&gorm.Session{}).Order(order).Offset(page.Offset()).Limit(page.PerPage).Find(out).Error; err != nil {
		return 0, err
	}
	return total, nil
}
