package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"sync"
	"time"

	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Credential stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[int64]*domain.User
	nextID  int64
	findErr error
	reads   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	c := cloneUser(u)
	c.ID = r.nextID
	r.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (r *stubUserRepo) List(_ context.Context, page ports.Page) ([]*domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

type stubAdminRepo struct {
	admins map[int64]*domain.Admin
	nextID int64
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[int64]*domain.Admin)}
}

func (r *stubAdminRepo) Create(_ context.Context, a *domain.Admin) (*domain.Admin, error) {
	for _, existing := range r.admins {
		if existing.Username == a.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	c := *a
	c.ID = r.nextID
	r.admins[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubAdminRepo) FindByID(_ context.Context, id int64) (*domain.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	c := *a
	return &c, nil
}

func (r *stubAdminRepo) FindByUsername(_ context.Context, username string) (*domain.Admin, error) {
	for _, a := range r.admins {
		if a.Username == username {
			c := *a
			return &c, nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

type stubAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (a *stubAudit) Record(e domain.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

func (a *stubAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action)
	}
	return out
}

// ---------------------------------------------------------------------------
// Upload stubs
// ---------------------------------------------------------------------------

type memFileStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	failOn  int // fail the n-th Save (1-based); 0 disables
	saves   int
	removed []string
}

func newMemFileStore() *memFileStore {
	return &memFileStore{files: make(map[string][]byte)}
}

func (s *memFileStore) Save(_ context.Context, category, name string, r io.Reader) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.failOn > 0 && s.saves == s.failOn {
		return 0, errors.New("disk full")
	}
	if _, taken := s.files[category+"/"+name]; taken {
		return 0, fmt.Errorf("save %s/%s: %w", category, name, fs.ErrExist)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.files[category+"/"+name] = b
	return int64(len(b)), nil
}

func (s *memFileStore) Remove(category, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, category+"/"+name)
	s.removed = append(s.removed, category+"/"+name)
	return nil
}

func (s *memFileStore) URL(category, name string) string {
	return "/uploads/" + category + "/" + name
}

func (s *memFileStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

func part(name, contentType string, data []byte) ports.UploadPart {
	return ports.UploadPart{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// pngBytes is a minimal PNG header followed by padding; enough for sniffing.
func pngBytes(size int) []byte {
	b := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}
	if size > len(b) {
		b = append(b, make([]byte, size-len(b))...)
	}
	return b
}

// ---------------------------------------------------------------------------
// Ticket stubs
// ---------------------------------------------------------------------------

type stubMatchRepo struct {
	matches map[int64]*domain.Match
}

func newStubMatchRepo(ms ...domain.Match) *stubMatchRepo {
	r := &stubMatchRepo{matches: make(map[int64]*domain.Match)}
	for i := range ms {
		m := ms[i]
		r.matches[m.ID] = &m
	}
	return r
}

func (r *stubMatchRepo) Create(_ context.Context, m *domain.Match) error {
	m.ID = int64(len(r.matches) + 1)
	c := *m
	r.matches[m.ID] = &c
	return nil
}

func (r *stubMatchRepo) FindByID(_ context.Context, id int64) (*domain.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *m
	return &c, nil
}

func (r *stubMatchRepo) Update(_ context.Context, m *domain.Match) error {
	if _, ok := r.matches[m.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *m
	r.matches[m.ID] = &c
	return nil
}

func (r *stubMatchRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.matches[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.matches, id)
	return nil
}

func (r *stubMatchRepo) List(_ context.Context, _ ports.Page) ([]domain.Match, int64, error) {
	out := make([]domain.Match, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

// stubTicketRepo shares seat counts with a stubMatchRepo the way the real
// transaction does.
type stubTicketRepo struct {
	matches *stubMatchRepo
	tickets map[int64]*domain.Ticket
}

func newStubTicketRepo(matches *stubMatchRepo) *stubTicketRepo {
	return &stubTicketRepo{matches: matches, tickets: make(map[int64]*domain.Ticket)}
}

func (r *stubTicketRepo) Purchase(_ context.Context, t *domain.Ticket) error {
	m, ok := r.matches.matches[t.MatchID]
	if !ok {
		return domain.ErrNotFound
	}
	if m.SeatsAvailable <= 0 {
		return domain.ErrSoldOut
	}
	m.SeatsAvailable--
	t.ID = int64(len(r.tickets) + 1)
	c := *t
	r.tickets[t.ID] = &c
	return nil
}

func (r *stubTicketRepo) Cancel(_ context.Context, id int64, at time.Time) error {
	t, ok := r.tickets[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Status = domain.TicketCancelled
	t.UpdatedAt = at
	r.matches.matches[t.MatchID].SeatsAvailable++
	return nil
}

func (r *stubTicketRepo) FindByID(_ context.Context, id int64) (*domain.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (r *stubTicketRepo) ListByUser(_ context.Context, userID int64) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, t := range r.tickets {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTicketRepo) List(_ context.Context, _ ports.Page) ([]domain.Ticket, int64, error) {
	var out []domain.Ticket
	for _, t := range r.tickets {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *stubTicketRepo) MatchIDsForUser(_ context.Context, userID int64) ([]int64, error) {
	var out []int64
	for _, t := range r.tickets {
		if t.UserID == userID && t.Status == domain.TicketActive {
			out = append(out, t.MatchID)
		}
	}
	return out, nil
}

// stubIdem stores 0 for a pending reservation.
type stubIdem struct {
	mu         sync.Mutex
	keys       map[string]int64
	reserveErr error
	released   []string
}

func newStubIdem() *stubIdem {
	return &stubIdem{keys: make(map[string]int64)}
}

func (s *stubIdem) Reserve(_ context.Context, key string) (ports.IdempotencyClaim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reserveErr != nil {
		return ports.IdempotencyClaim{}, s.reserveErr
	}
	if id, ok := s.keys[key]; ok {
		return ports.IdempotencyClaim{TicketID: id}, nil
	}
	s.keys[key] = 0
	return ports.IdempotencyClaim{Reserved: true}, nil
}

func (s *stubIdem) Complete(_ context.Context, key string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = id
	return nil
}

func (s *stubIdem) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys[key] == 0 {
		delete(s.keys, key)
	}
	s.released = append(s.released, key)
	return nil
}
