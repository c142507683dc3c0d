package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

// ComplaintRepository implements ports.ComplaintRepository.
type ComplaintRepository struct {
	store[domain.Complaint]
}

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{store[domain.Complaint]{db: db, name: "complaint"}}
}

func (r *ComplaintRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Complaint, error) {
	var out []domain.Complaint
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list user complaints: %w", err)
	}
	return out, nil
}

func (r *ComplaintRepository) List(ctx context.Context, status domain.ComplaintStatus, page ports.Page) ([]domain.Complaint, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Complaint{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []domain.Complaint
	total, err := paginate(q, "created_at DESC, id DESC", page, &out)
	if err != nil {
		return nil, 0, fmt.Errorf("list complaints: %w", err)
	}
	return out, total, nil
}
