package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/carenotes/internal/domain"
)

func newTestCache(t *testing.T) (*MatchCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewMatchCache(client, 5*time.Minute), mr
}

func sampleScores() []domain.MatchScore {
	return []domain.MatchScore{
		{OrganizationID: "org-1", OrganizationName: "Oak House", Percentage: 92.5, Suitability: domain.SuitabilityExcellent},
		{OrganizationID: "org-2", OrganizationName: "Elm Lodge", Percentage: 61.0, Suitability: domain.SuitabilityAdequate},
	}
}

func TestMatchCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.Get(context.Background(), "request-1")
	require.ErrorIs(t, err, ErrMiss)
}

func TestMatchCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "request-1", sampleScores()))

	got, err := c.Get(ctx, "request-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "org-1", got[0].OrganizationID)
	assert.InDelta(t, 92.5, got[0].Percentage, 0.001)
	assert.Equal(t, domain.SuitabilityAdequate, got[1].Suitability)
}

func TestMatchCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "request-1", sampleScores()))
	mr.FastForward(6 * time.Minute)

	_, err := c.Get(ctx, "request-1")
	require.ErrorIs(t, err, ErrMiss)
}

func TestMatchCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "request-1", sampleScores()))
	require.NoError(t, c.Set(ctx, "request-2", sampleScores()))

	require.NoError(t, c.Invalidate(ctx, "request-1"))

	_, err := c.Get(ctx, "request-1")
	require.ErrorIs(t, err, ErrMiss)
	_, err = c.Get(ctx, "request-2")
	require.NoError(t, err)
}

func TestMatchCacheInvalidateAll(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "request-1", sampleScores()))
	require.NoError(t, c.Set(ctx, "request-2", sampleScores()))

	require.NoError(t, c.InvalidateAll(ctx))

	_, err := c.Get(ctx, "request-1")
	require.ErrorIs(t, err, ErrMiss)
	_, err = c.Get(ctx, "request-2")
	require.ErrorIs(t, err, ErrMiss)
}

func TestMatchCacheNilSafe(t *testing.T) {
	var c *MatchCache
	ctx := context.Background()

	_, err := c.Get(ctx, "request-1")
	require.ErrorIs(t, err, ErrMiss)
	require.NoError(t, c.Set(ctx, "request-1", sampleScores()))
	require.NoError(t, c.Invalidate(ctx, "request-1"))
	require.NoError(t, c.InvalidateAll(ctx))
}
