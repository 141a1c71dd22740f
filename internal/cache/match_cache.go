package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/carenotes/internal/domain"
)

const matchKeyPrefix = "match:request:"

// ErrMiss is returned when no cached result exists for a request.
var ErrMiss = errors.New("match cache miss")

// MatchCache stores ranked match results per placement request. Entries
// expire after the configured TTL and are flushed whenever organization
// data changes, since any write can alter scores.
type MatchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMatchCache builds a cache over the shared Redis client.
func NewMatchCache(client *redis.Client, ttl time.Duration) *MatchCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &MatchCache{client: client, ttl: ttl}
}

// Get returns the cached ranking for a request, or ErrMiss.
func (c *MatchCache) Get(ctx context.Context, requestID string) ([]domain.MatchScore, error) {
	if c == nil || c.client == nil {
		return nil, ErrMiss
	}
	raw, err := c.client.Get(ctx, matchKeyPrefix+requestID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	var scores []domain.MatchScore
	if err := json.Unmarshal(raw, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

// Set stores the ranking for a request with the configured TTL.
func (c *MatchCache) Set(ctx context.Context, requestID string, scores []domain.MatchScore) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, matchKeyPrefix+requestID, raw, c.ttl).Err()
}

// InvalidateAll drops every cached ranking.
func (c *MatchCache) InvalidateAll(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, matchKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Invalidate drops the cached ranking for one request.
func (c *MatchCache) Invalidate(ctx context.Context, requestID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, matchKeyPrefix+requestID).Err()
}
