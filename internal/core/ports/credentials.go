package ports

import (
	"context"

	"github.com/matchday/club-api/internal/core/domain"
)

// UserRepository persists supporter accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update writes name, email, phone and avatar.
	Update(ctx context.Context, user *domain.User) error
	SetActive(ctx context.Context, id int64, active bool) error
	List(ctx context.Context, page Page) ([]*domain.User, int64, error)
}

// AdminRepository persists back-office accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	FindByID(ctx context.Context, id int64) (*domain.Admin, error)
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
}
