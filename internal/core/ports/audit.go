package ports

import (
	"context"

	"github.com/matchday/club-api/internal/core/domain"
)

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}

// AuditRecorder accepts audit entries without blocking the caller on storage.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuditReader lists recorded entries, newest first. An empty action matches
// every action.
type AuditReader interface {
	Recent(ctx context.Context, action string, limit int64) ([]domain.AuditEntry, error)
}
