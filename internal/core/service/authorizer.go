package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

// TokenVerifier decodes bearer tokens.
type TokenVerifier interface {
	Verify(token string) (domain.TokenSubject, error)
}

// Authorizer resolves bearer tokens into principals.
//
// Every call re-reads the credential row. There is deliberately no principal
// cache: deactivation and profile edits must take effect on the next request,
// not when the token expires. Adding a cache requires invalidating it on every
// credential write.
type Authorizer struct {
	tokens TokenVerifier
	users  ports.UserRepository
	admins ports.AdminRepository
}

func NewAuthorizer(tokens TokenVerifier, users ports.UserRepository, admins ports.AdminRepository) *Authorizer {
	return &Authorizer{tokens: tokens, users: users, admins: admins}
}

// Authorize verifies token, checks its role against allowed (any role when
// allowed is empty) and loads the matching account.
func (a *Authorizer) Authorize(ctx context.Context, token string, allowed ...domain.Role) (*domain.Principal, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	subject, err := a.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	if len(allowed) > 0 && !slices.Contains(allowed, subject.Role) {
		return nil, &domain.RoleMismatchError{Required: allowed[0]}
	}

	switch subject.Role {
	case domain.RoleAdmin:
		admin, err := a.admins.FindByID(ctx, subject.ID)
		if err != nil {
			if errors.Is(err, domain.ErrAdminNotFound) {
				return nil, domain.ErrAccountNotFound
			}
			return nil, fmt.Errorf("authorize: load admin %d: %w", subject.ID, err)
		}
		return domain.PrincipalFromAdmin(admin), nil

	case domain.RoleUser:
		user, err := a.users.FindByID(ctx, subject.ID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.ErrAccountNotFound
			}
			return nil, fmt.Errorf("authorize: load user %d: %w", subject.ID, err)
		}
		if !user.IsActive {
			return nil, domain.ErrAccountDisabled
		}
		return domain.PrincipalFromUser(user), nil
	}

	return nil, domain.ErrTokenInvalid
}
