package service

import (
	"context"
	"errors"
	"testing"

	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

type stubComplaintRepo struct {
	items map[int64]*domain.Complaint
}

func newStubComplaintRepo() *stubComplaintRepo {
	return &stubComplaintRepo{items: make(map[int64]*domain.Complaint)}
}

func (r *stubComplaintRepo) Create(_ context.Context, c *domain.Complaint) error {
	c.ID = int64(len(r.items) + 1)
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *stubComplaintRepo) FindByID(_ context.Context, id int64) (*domain.Complaint, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubComplaintRepo) Update(_ context.Context, c *domain.Complaint) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *stubComplaintRepo) ListByUser(_ context.Context, userID int64) ([]domain.Complaint, error) {
	var out []domain.Complaint
	for _, c := range r.items {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubComplaintRepo) List(_ context.Context, status domain.ComplaintStatus, _ ports.Page) ([]domain.Complaint, int64, error) {
	var out []domain.Complaint
	for _, c := range r.items {
		if status == "" || c.Status == status {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func TestComplaintService_File(t *testing.T) {
	svc := NewComplaintService(newStubComplaintRepo())

	c, err := svc.File(context.Background(), 3, " Parking ", "No spaces left")
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if c.ID == 0 || c.UserID != 3 || c.Subject != "Parking" || c.Status != domain.ComplaintOpen {
		t.Fatalf("unexpected complaint: %+v", c)
	}

	if _, err := svc.File(context.Background(), 3, "", "body"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestComplaintService_Respond(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := NewComplaintService(repo)
	c, _ := svc.File(context.Background(), 3, "Parking", "No spaces left")

	got, err := svc.Respond(context.Background(), c.ID, domain.ComplaintResolved, "Extra lot opens Saturday")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if got.Status != domain.ComplaintResolved || got.Response != "Extra lot opens Saturday" {
		t.Fatalf("unexpected complaint: %+v", got)
	}

	got, err = svc.Respond(context.Background(), c.ID, "", "")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if got.Status != domain.ComplaintResolved || got.Response == "" {
		t.Fatalf("empty fields must leave the complaint unchanged: %+v", got)
	}

	if _, err := svc.Respond(context.Background(), c.ID, "closed", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Respond(context.Background(), 99, domain.ComplaintResolved, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestComplaintService_List(t *testing.T) {
	svc := NewComplaintService(newStubComplaintRepo())
	a, _ := svc.File(context.Background(), 1, "A", "a")
	svc.File(context.Background(), 2, "B", "b")
	svc.Respond(context.Background(), a.ID, domain.ComplaintInProgress, "")

	open, total, err := svc.List(context.Background(), domain.ComplaintOpen, ports.Page{})
	if err != nil || total != 1 || open[0].UserID != 2 {
		t.Fatalf("unexpected open list: %+v %d %v", open, total, err)
	}
	if _, _, err := svc.List(context.Background(), "bogus", ports.Page{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	mine, err := svc.ListMine(context.Background(), 1)
	if err != nil || len(mine) != 1 {
		t.Fatalf("ListMine: %+v %v", mine, err)
	}
}
