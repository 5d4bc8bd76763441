package projection

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultIdempotencyTTL bounds how long a claimed message_id is remembered.
// Long enough to outlast any plausible redelivery window from a lagging
// durable consumer, short enough not to grow the key space without bound.
const DefaultIdempotencyTTL = 72 * time.Hour

// IdempotencyStore enforces spec.md §4.10's "a projection must be
// idempotent on message_id" using Redis SETNX, following the
// redis.NewClient(redis.ParseURL(...)) wiring apps/public-api-service's
// main.go uses for its own Redis client.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: DefaultIdempotencyTTL}
}

// Claim returns true the first time it is called for (projectionName,
// messageID); every subsequent call for the same pair returns false until
// the claim's TTL expires, without performing the projection's work again.
func (s *IdempotencyStore) Claim(ctx context.Context, projectionName, messageID string) (bool, error) {
	key := fmt.Sprintf("idempotency:%s:%s", projectionName, messageID)
	claimed, err := s.client.SetNX(ctx, key, 1, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency claim %s: %w", key, err)
	}
	return claimed, nil
}
