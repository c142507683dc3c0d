package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/matchday/club-api/internal/core/domain"
)

// LogRepository writes audit entries to the structured log. It stands in
// for MongoDB when no audit database is configured.
type LogRepository struct {
	log zerolog.Logger
}

func NewLogRepository(log zerolog.Logger) *LogRepository {
	return &LogRepository{log: log.With().Str("component", "audit").Logger()}
}

func (r *LogRepository) Insert(_ context.Context, entry domain.AuditEntry) error {
	ev := r.log.Info().
		Str("action", entry.Action).
		Str("actor_role", string(entry.ActorRole)).
		Time("at", entry.At)
	if entry.ActorID != 0 {
		ev = ev.Int64("actor_id", entry.ActorID)
	}
	if entry.Subject != "" {
		ev = ev.Str("subject", entry.Subject)
	}
	if len(entry.Detail) > 0 {
		d := zerolog.Dict()
		for k, v := range entry.Detail {
			d = d.Str(k, v)
		}
		ev = ev.Dict("detail", d)
	}
	ev.Msg("audit")
	return nil
}
