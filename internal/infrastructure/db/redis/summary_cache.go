package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSummaryTTL = 15 * time.Minute

// SummaryCache stores generated summaries keyed by patient and history
// digest, so the gateway is only called when the record has changed or the
// entry has expired.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a SummaryCache wrapping the given Redis client.
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	return &SummaryCache{client: client, ttl: ttl}
}

// Get returns the cached text and whether the key was present.
func (c *SummaryCache) Get(ctx context.Context, key string) (string, bool, error) {
	text, err := c.client.Get(ctx, "summary:"+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("summary cache get: %w", err)
	}
	return text, true, nil
}

// Set stores the text with the configured TTL.
func (c *SummaryCache) Set(ctx context.Context, key, text string) error {
	return c.client.Set(ctx, "summary:"+key, text, c.ttl).Err()
}
