package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/matchday/club-api/internal/core/domain"
)

// Default token lifetimes. Admin tokens are kept shorter to contain a leaked
// back-office credential.
const (
	DefaultUserTokenTTL  = 30 * 24 * time.Hour
	DefaultAdminTokenTTL = 7 * 24 * time.Hour
)

var errMissingSecret = errors.New("tokens: signing secret is required")

// TokenConfig configures a TokenManager.
type TokenConfig struct {
	Secret   string
	UserTTL  time.Duration
	AdminTTL time.Duration
}

// tokenClaims is the wire form of a bearer token.
type tokenClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret   []byte
	userTTL  time.Duration
	adminTTL time.Duration
	now      func() time.Time
}

func NewTokenManager(cfg TokenConfig) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, errMissingSecret
	}
	if cfg.UserTTL <= 0 {
		cfg.UserTTL = DefaultUserTokenTTL
	}
	if cfg.AdminTTL <= 0 {
		cfg.AdminTTL = DefaultAdminTokenTTL
	}
	return &TokenManager{
		secret:   []byte(cfg.Secret),
		userTTL:  cfg.UserTTL,
		adminTTL: cfg.AdminTTL,
		now:      time.Now,
	}, nil
}

// TTL returns the lifetime of tokens issued for role.
func (m *TokenManager) TTL(role domain.Role) time.Duration {
	if role == domain.RoleAdmin {
		return m.adminTTL
	}
	return m.userTTL
}

// Issue signs a token for subject.
func (m *TokenManager) Issue(subject domain.TokenSubject) (string, error) {
	if !subject.Role.Valid() || subject.ID <= 0 {
		return "", domain.ErrTokenInvalid
	}

	now := m.now()
	claims := tokenClaims{
		Type: string(subject.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subject.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL(subject.Role))),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify checks signature and expiry and decodes the token into a
// TokenSubject. Expiry is reported as ErrTokenExpired; every other failure,
// including an unknown type or a non-numeric subject, as ErrTokenInvalid.
func (m *TokenManager) Verify(token string) (domain.TokenSubject, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.TokenSubject{}, domain.ErrTokenExpired
		}
		return domain.TokenSubject{}, domain.ErrTokenInvalid
	}

	role := domain.Role(claims.Type)
	if !role.Valid() {
		return domain.TokenSubject{}, domain.ErrTokenInvalid
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return domain.TokenSubject{}, domain.ErrTokenInvalid
	}

	return domain.TokenSubject{Role: role, ID: id}, nil
}
