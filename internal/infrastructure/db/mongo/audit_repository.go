package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matchday/club-api/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates an AuditRepository on the audit_events collection.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// EnsureIndexes creates the indexes the admin trail queries rely on.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "actor_role", Value: 1}, {Key: "actor_id", Value: 1}, {Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "action", Value: 1}, {Key: "at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}
	return nil
}

type auditDoc struct {
	Action     string            `bson:"action"`
	ActorRole  string            `bson:"actor_role"`
	ActorID    int64             `bson:"actor_id,omitempty"`
	Subject    string            `bson:"subject,omitempty"`
	Detail     map[string]string `bson:"detail,omitempty"`
	At         time.Time         `bson:"at"`
	RecordedAt time.Time         `bson:"recorded_at"`
}

// Insert persists one audit entry.
func (r *AuditRepository) Insert(ctx context.Context, entry domain.AuditEntry) error {
	doc := auditDoc{
		Action:     entry.Action,
		ActorRole:  string(entry.ActorRole),
		ActorID:    entry.ActorID,
		Subject:    entry.Subject,
		Detail:     entry.Detail,
		At:         entry.At.UTC(),
		RecordedAt: time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries for one action, newest first.
func (r *AuditRepository) Recent(ctx context.Context, action string, limit int64) ([]domain.AuditEntry, error) {
	filter := bson.M{}
	if action != "" {
		filter["action"] = action
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}
	defer cur.Close(ctx)

	var docs []auditDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode audit entries: %w", err)
	}

	out := make([]domain.AuditEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.AuditEntry{
			Action:    d.Action,
			ActorRole: domain.Role(d.ActorRole),
			ActorID:   d.ActorID,
			Subject:   d.Subject,
			Detail:    d.Detail,
			At:        d.At.UTC(),
		})
	}
	return out, nil
}
