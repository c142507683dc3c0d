package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/matchday/club-api/internal/api/response"
	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

type tokenGrant struct {
	principal *domain.Principal
	err       error
}

// stubAuthorizer resolves tokens from a fixed table, applying role checks the
// way the real authorizer does.
type stubAuthorizer struct {
	grants map[string]tokenGrant
	seen   []string
}

func (s *stubAuthorizer) Authorize(_ context.Context, token string, allowed ...domain.Role) (*domain.Principal, error) {
	s.seen = append(s.seen, token)
	g, ok := s.grants[token]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	if g.err != nil {
		return nil, g.err
	}
	if len(allowed) > 0 && !slices.Contains(allowed, g.principal.Role) {
		return nil, &domain.RoleMismatchError{Required: allowed[0]}
	}
	return g.principal, nil
}

var (
	alice = &domain.Principal{ID: 7, DisplayName: "Alice", Email: "alice@example.com", Role: domain.RoleUser}
	root  = &domain.Principal{ID: 1, DisplayName: "root", Email: "root@example.com", Role: domain.RoleAdmin}
)

func newStubAuthorizer() *stubAuthorizer {
	return &stubAuthorizer{grants: map[string]tokenGrant{
		"user-token":     {principal: alice},
		"admin-token":    {principal: root},
		"expired-token":  {err: domain.ErrTokenExpired},
		"disabled-token": {err: domain.ErrAccountDisabled},
		"ghost-token":    {err: domain.ErrAccountNotFound},
		"broken-token":   {err: errors.New("sqlite: database is locked")},
	}}
}

type stubUploader struct {
	mu       sync.Mutex
	category string
	parts    []ports.UploadPart
	stored   []domain.StoredFile
	err      error
	calls    int
}

func (s *stubUploader) Store(_ context.Context, category string, parts []ports.UploadPart) ([]domain.StoredFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.category = category
	s.parts = parts
	if s.err != nil {
		return nil, s.err
	}
	if category == "" {
		category = domain.DefaultUploadCategory
	}
	out := make([]domain.StoredFile, 0, len(parts))
	for _, p := range parts {
		out = append(out, domain.StoredFile{
			Category:     category,
			Filename:     "stored-" + p.Filename,
			OriginalName: p.Filename,
			MimeType:     p.ContentType,
			Size:         p.Size,
			URL:          "/uploads/" + category + "/stored-" + p.Filename,
		})
	}
	s.stored = out
	return out, nil
}

type stubRecorder struct {
	entries []domain.AuditEntry
}

func (r *stubRecorder) Record(e domain.AuditEntry) {
	r.entries = append(r.entries, e)
}

// serve runs req through mw and a terminal handler using the production error
// handler, returning the recorder.
func serve(req *http.Request, terminal echo.HandlerFunc, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	e.HTTPErrorHandler = response.NewHTTPErrorHandler(zerolog.Nop())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := terminal
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}
