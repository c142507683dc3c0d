package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/matchday/club-api/internal/api/response"
	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

var (
	testUser  = &domain.Principal{ID: 7, DisplayName: "Alice", Email: "alice@example.com", Role: domain.RoleUser}
	testAdmin = &domain.Principal{ID: 1, DisplayName: "root", Email: "root@example.com", Role: domain.RoleAdmin}
)

type call struct {
	e   *echo.Echo
	c   echo.Context
	rec *httptest.ResponseRecorder
}

// newCall builds an echo context with the production validator. A non-empty
// body is sent as JSON.
func newCall(method, target, body string) *call {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = response.NewHTTPErrorHandler(zerolog.Nop())

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return &call{e: e, c: e.NewContext(req, rec), rec: rec}
}

func (c *call) as(p *domain.Principal) *call {
	c.c.Set("principal", p)
	return c
}

func (c *call) param(name, value string) *call {
	c.c.SetParamNames(name)
	c.c.SetParamValues(value)
	return c
}

// run invokes h and renders any returned error the way the server would.
func (c *call) run(t *testing.T, h echo.HandlerFunc) map[string]any {
	t.Helper()
	if err := h(c.c); err != nil {
		c.e.HTTPErrorHandler(err, c.c)
	}
	var body map[string]any
	if err := json.Unmarshal(c.rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", c.rec.Body.String(), err)
	}
	return body
}

func expectStatus(t *testing.T, c *call, want int) {
	t.Helper()
	if c.rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, c.rec.Code, c.rec.Body.String())
	}
}

func expectFailure(t *testing.T, c *call, body map[string]any, code int, msg string) {
	t.Helper()
	expectStatus(t, c, code)
	if body["success"] != false || body["message"] != msg {
		t.Fatalf("expected failure %q, got %v", msg, body)
	}
}

// --- Service stubs ---

type stubAuthService struct {
	registerFn      func(ctx context.Context, in ports.RegisterInput) (*ports.Session, error)
	loginFn         func(ctx context.Context, email, password string) (*ports.Session, error)
	adminLoginFn    func(ctx context.Context, username, password string) (*ports.Session, error)
	updateProfileFn func(ctx context.Context, userID int64, in ports.ProfileInput) (*domain.Principal, error)
	setAvatarFn     func(ctx context.Context, userID int64, ref string) (*domain.Principal, error)
	listUsersFn     func(ctx context.Context, page ports.Page) ([]*domain.User, int64, error)
	setActiveFn     func(ctx context.Context, actor *domain.Principal, userID int64, active bool) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.Session, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) AdminLogin(ctx context.Context, username, password string) (*ports.Session, error) {
	return s.adminLoginFn(ctx, username, password)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID int64, in ports.ProfileInput) (*domain.Principal, error) {
	return s.updateProfileFn(ctx, userID, in)
}

func (s *stubAuthService) SetAvatar(ctx context.Context, userID int64, ref string) (*domain.Principal, error) {
	return s.setAvatarFn(ctx, userID, ref)
}

func (s *stubAuthService) ListUsers(ctx context.Context, page ports.Page) ([]*domain.User, int64, error) {
	return s.listUsersFn(ctx, page)
}

func (s *stubAuthService) SetUserActive(ctx context.Context, actor *domain.Principal, userID int64, active bool) (*domain.User, error) {
	return s.setActiveFn(ctx, actor, userID, active)
}

type stubTicketService struct {
	purchaseFn func(ctx context.Context, in ports.PurchaseInput) (*ports.PurchaseResult, error)
	cancelFn   func(ctx context.Context, userID, ticketID int64) (*domain.Ticket, error)
	mineFn     func(ctx context.Context, userID int64) ([]domain.Ticket, error)
	listAllFn  func(ctx context.Context, page ports.Page) ([]domain.Ticket, int64, error)
}

func (s *stubTicketService) Purchase(ctx context.Context, in ports.PurchaseInput) (*ports.PurchaseResult, error) {
	return s.purchaseFn(ctx, in)
}

func (s *stubTicketService) Cancel(ctx context.Context, userID, ticketID int64) (*domain.Ticket, error) {
	return s.cancelFn(ctx, userID, ticketID)
}

func (s *stubTicketService) ListMine(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	return s.mineFn(ctx, userID)
}

func (s *stubTicketService) ListAll(ctx context.Context, page ports.Page) ([]domain.Ticket, int64, error) {
	return s.listAllFn(ctx, page)
}

type stubComplaintService struct {
	fileFn    func(ctx context.Context, userID int64, subject, message string) (*domain.Complaint, error)
	mineFn    func(ctx context.Context, userID int64) ([]domain.Complaint, error)
	listFn    func(ctx context.Context, status domain.ComplaintStatus, page ports.Page) ([]domain.Complaint, int64, error)
	respondFn func(ctx context.Context, id int64, status domain.ComplaintStatus, response string) (*domain.Complaint, error)
}

func (s *stubComplaintService) File(ctx context.Context, userID int64, subject, message string) (*domain.Complaint, error) {
	return s.fileFn(ctx, userID, subject, message)
}

func (s *stubComplaintService) ListMine(ctx context.Context, userID int64) ([]domain.Complaint, error) {
	return s.mineFn(ctx, userID)
}

func (s *stubComplaintService) List(ctx context.Context, status domain.ComplaintStatus, page ports.Page) ([]domain.Complaint, int64, error) {
	return s.listFn(ctx, status, page)
}

func (s *stubComplaintService) Respond(ctx context.Context, id int64, status domain.ComplaintStatus, response string) (*domain.Complaint, error) {
	return s.respondFn(ctx, id, status, response)
}

// memCatalog is an in-memory ports.Catalog used by the content stubs.
type memCatalog[T any] struct {
	items   map[int64]*T
	updated *T
	deleted []int64
}

func newMemCatalog[T any](items map[int64]*T) *memCatalog[T] {
	if items == nil {
		items = map[int64]*T{}
	}
	return &memCatalog[T]{items: items}
}

func (m *memCatalog[T]) Get(_ context.Context, id int64) (*T, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *item
	return &c, nil
}

func (m *memCatalog[T]) Create(_ context.Context, item *T) error {
	m.items[int64(len(m.items)+1)] = item
	return nil
}

func (m *memCatalog[T]) Update(_ context.Context, item *T) error {
	m.updated = item
	return nil
}

func (m *memCatalog[T]) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type stubMatchService struct {
	*memCatalog[domain.Match]
	viewer *domain.Principal
	page   ports.Page
}

func (s *stubMatchService) List(_ context.Context, viewer *domain.Principal, page ports.Page) ([]ports.MatchListing, int64, error) {
	s.viewer = viewer
	s.page = page
	out := make([]ports.MatchListing, 0, len(s.items))
	for _, m := range s.items {
		out = append(out, ports.MatchListing{Match: *m, HasTicket: viewer != nil})
	}
	return out, int64(len(out)), nil
}

type stubNewsService struct {
	*memCatalog[domain.NewsArticle]
	publishedOnly bool
}

func (s *stubNewsService) List(_ context.Context, publishedOnly bool, _ ports.Page) ([]domain.NewsArticle, int64, error) {
	s.publishedOnly = publishedOnly
	return nil, 0, nil
}

type stubProductService struct {
	*memCatalog[domain.Product]
	category string
}

func (s *stubProductService) List(_ context.Context, category string, _ ports.Page) ([]domain.Product, int64, error) {
	s.category = category
	return []domain.Product{}, 0, nil
}

type stubAuditReader struct {
	action string
	limit  int64
}

func (s *stubAuditReader) Recent(_ context.Context, action string, limit int64) ([]domain.AuditEntry, error) {
	s.action = action
	s.limit = limit
	return []domain.AuditEntry{{Action: domain.AuditLogin, ActorRole: domain.RoleUser, ActorID: 7}}, nil
}

var (
	_ ports.MatchService   = (*stubMatchService)(nil)
	_ ports.NewsService    = (*stubNewsService)(nil)
	_ ports.ProductService = (*stubProductService)(nil)
)
