package service

import (
	"context"
	"strings"
	"time"

	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

type ComplaintService struct {
	repo ports.ComplaintRepository
	now  func() time.Time
}

func NewComplaintService(repo ports.ComplaintRepository) *ComplaintService {
	return &ComplaintService{repo: repo, now: time.Now}
}

func (s *ComplaintService) File(ctx context.Context, userID int64, subject, message string) (*domain.Complaint, error) {
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if subject == "" || message == "" {
		return nil, domain.Invalid(domain.ErrInvalidInput, "subject and message are required")
	}

	now := s.now().UTC()
	c := &domain.Complaint{
		UserID:    userID,
		Subject:   subject,
		Message:   message,
		Status:    domain.ComplaintOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ComplaintService) ListMine(ctx context.Context, userID int64) ([]domain.Complaint, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ComplaintService) List(ctx context.Context, status domain.ComplaintStatus, page ports.Page) ([]domain.Complaint, int64, error) {
	if status != "" && !validComplaintStatus(status) {
		return nil, 0, domain.Invalid(domain.ErrInvalidInput, "unknown complaint status %q", status)
	}
	return s.repo.List(ctx, status, page.Normalize())
}

// Respond records the club's answer. An empty status leaves it unchanged.
func (s *ComplaintService) Respond(ctx context.Context, id int64, status domain.ComplaintStatus, response string) (*domain.Complaint, error) {
	if status != "" && !validComplaintStatus(status) {
		return nil, domain.Invalid(domain.ErrInvalidInput, "unknown complaint status %q", status)
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if status != "" {
		c.Status = status
	}
	if r := strings.TrimSpace(response); r != "" {
		c.Response = r
	}
	c.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func validComplaintStatus(s domain.ComplaintStatus) bool {
	switch s {
	case domain.ComplaintOpen, domain.ComplaintInProgress, domain.ComplaintResolved:
		return true
	}
	return false
}
