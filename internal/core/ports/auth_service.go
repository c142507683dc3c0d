package ports

import (
	"context"

	"github.com/matchday/club-api/internal/core/domain"
)

// RegisterInput carries the fields a supporter signs up with.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// ProfileInput carries profile fields; empty values are left unchanged.
type ProfileInput struct {
	Name  string
	Email string
	Phone string
}

// Session is what a successful login or registration returns.
type Session struct {
	Token     string
	Principal *domain.Principal
}

// AuthService covers account registration, login and profile management.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	AdminLogin(ctx context.Context, username, password string) (*Session, error)
	UpdateProfile(ctx context.Context, userID int64, in ProfileInput) (*domain.Principal, error)
	SetAvatar(ctx context.Context, userID int64, ref string) (*domain.Principal, error)
	ListUsers(ctx context.Context, page Page) ([]*domain.User, int64, error)
	SetUserActive(ctx context.Context, actor *domain.Principal, userID int64, active bool) (*domain.User, error)
}

// Authorizer resolves a bearer token into a principal, accepting only the
// given roles.
type Authorizer interface {
	Authorize(ctx context.Context, token string, allowed ...domain.Role) (*domain.Principal, error)
}
