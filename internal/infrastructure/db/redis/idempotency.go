package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matchday/club-api/internal/api/metrics"
	"github.com/matchday/club-api/internal/core/ports"
)

const (
	idempotencyTTL = 24 * time.Hour
	// pendingTTL bounds how long a crashed purchase can hold its key.
	pendingTTL   = time.Minute
	pendingValue = "pending"
)

// releaseScript deletes a key only while it still marks a pending purchase.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// IdempotencyStore reserves purchase Idempotency-Keys and remembers which
// ticket each one produced. Key format: idem:ticket:<user_id>:<client_key>.
// A reserved key holds "pending" until the purchase completes.
type IdempotencyStore struct {
	client     *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewIdempotencyStore wraps the given Redis client. Completed keys expire
// after 24h.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL, pendingTTL: pendingTTL}
}

// Reserve claims key with SETNX. Only the caller that set it gets Reserved.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (ports.IdempotencyClaim, error) {
	k := s.key(key)
	ok, err := s.client.SetNX(ctx, k, pendingValue, s.pendingTTL).Result()
	if err != nil {
		metrics.IdempotencyTotal.WithLabelValues("error").Inc()
		return ports.IdempotencyClaim{}, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		metrics.IdempotencyTotal.WithLabelValues("miss").Inc()
		return ports.IdempotencyClaim{Reserved: true}, nil
	}

	v, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) || v == pendingValue {
		// redis.Nil: the holder released or expired between the two calls.
		metrics.IdempotencyTotal.WithLabelValues("in_progress").Inc()
		return ports.IdempotencyClaim{}, nil
	}
	if err != nil {
		metrics.IdempotencyTotal.WithLabelValues("error").Inc()
		return ports.IdempotencyClaim{}, fmt.Errorf("idempotency reserve: %w", err)
	}

	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		metrics.IdempotencyTotal.WithLabelValues("error").Inc()
		return ports.IdempotencyClaim{}, fmt.Errorf("idempotency reserve: corrupt value %q", v)
	}
	metrics.IdempotencyTotal.WithLabelValues("hit").Inc()
	return ports.IdempotencyClaim{TicketID: id}, nil
}

// Complete stores ticketID under key for the full retention period.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, ticketID int64) error {
	if err := s.client.Set(ctx, s.key(key), strconv.FormatInt(ticketID, 10), s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release frees a pending reservation. A completed key is left alone.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := releaseScript.Run(ctx, s.client, []string{s.key(key)}, pendingValue).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(key string) string {
	return "idem:ticket:" + key
}
