package ports

import (
	"context"

	"github.com/matchday/club-api/internal/core/domain"
)

// ComplaintRepository persists complaints.
type ComplaintRepository interface {
	Create(ctx context.Context, c *domain.Complaint) error
	FindByID(ctx context.Context, id int64) (*domain.Complaint, error)
	Update(ctx context.Context, c *domain.Complaint) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Complaint, error)
	// List filters by status when it is non-empty.
	List(ctx context.Context, status domain.ComplaintStatus, page Page) ([]domain.Complaint, int64, error)
}

// ComplaintService covers filing and answering complaints.
type ComplaintService interface {
	File(ctx context.Context, userID int64, subject, message string) (*domain.Complaint, error)
	ListMine(ctx context.Context, userID int64) ([]domain.Complaint, error)
	List(ctx context.Context, status domain.ComplaintStatus, page Page) ([]domain.Complaint, int64, error)
	Respond(ctx context.Context, id int64, status domain.ComplaintStatus, response string) (*domain.Complaint, error)
}
