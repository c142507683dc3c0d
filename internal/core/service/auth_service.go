package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

const minPasswordLength = 6

// TokenIssuer mints bearer tokens.
type TokenIssuer interface {
	Issue(subject domain.TokenSubject) (string, error)
}

// AuthService implements registration, login and account management.
type AuthService struct {
	users  ports.UserRepository
	admins ports.AdminRepository
	tokens TokenIssuer
	audit  ports.AuditRecorder
	logger zerolog.Logger
	now    func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	admins ports.AdminRepository,
	tokens TokenIssuer,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		admins: admins,
		tokens: tokens,
		audit:  audit,
		logger: logger,
		now:    time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.Session, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || len(in.Password) < minPasswordLength {
		return nil, domain.Invalid(domain.ErrInvalidInput, "name, email and a password of at least %d characters are required", minPasswordLength)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(in.Phone),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditRegister, domain.RoleUser, created.ID, email, nil)
	s.logger.Info().Int64("user_id", created.ID).Msg("user registered")

	return s.session(domain.PrincipalFromUser(created))
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(domain.AuditLoginFailed, domain.RoleUser, 0, email, map[string]string{"reason": "unknown_email"})
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.record(domain.AuditLoginFailed, domain.RoleUser, user.ID, email, map[string]string{"reason": "bad_password"})
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.record(domain.AuditLoginFailed, domain.RoleUser, user.ID, email, map[string]string{"reason": "disabled"})
		return nil, domain.ErrAccountDisabled
	}

	s.record(domain.AuditLogin, domain.RoleUser, user.ID, email, nil)
	return s.session(domain.PrincipalFromUser(user))
}

func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (*ports.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			s.record(domain.AuditLoginFailed, domain.RoleAdmin, 0, username, map[string]string{"reason": "unknown_username"})
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("admin login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		s.record(domain.AuditLoginFailed, domain.RoleAdmin, admin.ID, username, map[string]string{"reason": "bad_password"})
		return nil, domain.ErrInvalidCredentials
	}

	s.record(domain.AuditLogin, domain.RoleAdmin, admin.ID, username, nil)
	return s.session(domain.PrincipalFromAdmin(admin))
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, in ports.ProfileInput) (*domain.Principal, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		user.Phone = phone
	}
	if email := normalizeEmail(in.Email); email != "" && email != user.Email {
		other, err := s.users.FindByEmail(ctx, email)
		switch {
		case err == nil && other.ID != user.ID:
			return nil, domain.ErrUserExists
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return nil, fmt.Errorf("update profile: %w", err)
		}
		user.Email = email
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return domain.PrincipalFromUser(user), nil
}

func (s *AuthService) SetAvatar(ctx context.Context, userID int64, ref string) (*domain.Principal, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Avatar = ref
	user.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return domain.PrincipalFromUser(user), nil
}

func (s *AuthService) ListUsers(ctx context.Context, page ports.Page) ([]*domain.User, int64, error) {
	return s.users.List(ctx, page.Normalize())
}

func (s *AuthService) SetUserActive(ctx context.Context, actor *domain.Principal, userID int64, active bool) (*domain.User, error) {
	if err := s.users.SetActive(ctx, userID, active); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var actorID int64
	if actor != nil {
		actorID = actor.ID
	}
	s.record(domain.AuditAccountStatus, domain.RoleAdmin, actorID, user.Email, map[string]string{
		"user_id": strconv.FormatInt(userID, 10),
		"active":  strconv.FormatBool(active),
	})
	s.logger.Info().Int64("user_id", userID).Bool("active", active).Msg("user status changed")

	return user, nil
}

// EnsureAdmin creates the admin account if no admin with username exists.
// It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) (*domain.Admin, bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < minPasswordLength {
		return nil, false, domain.Invalid(domain.ErrInvalidInput, "admin username and a password of at least %d characters are required", minPasswordLength)
	}

	existing, err := s.admins.FindByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrAdminNotFound) {
		return nil, false, fmt.Errorf("ensure admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("ensure admin: hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.admins.Create(ctx, &domain.Admin{
		Username:     username,
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

func (s *AuthService) session(p *domain.Principal) (*ports.Session, error) {
	token, err := s.tokens.Issue(domain.TokenSubject{Role: p.Role, ID: p.ID})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &ports.Session{Token: token, Principal: p}, nil
}

func (s *AuthService) record(action string, role domain.Role, id int64, subject string, detail map[string]string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		Action:    action,
		ActorRole: role,
		ActorID:   id,
		Subject:   subject,
		Detail:    detail,
		At:        s.now().UTC(),
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
