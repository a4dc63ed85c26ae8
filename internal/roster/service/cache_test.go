package roster_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-checkin/internal/models"
	roster "ms-checkin/internal/roster/service"
)

func setupCache(t *testing.T, ttl time.Duration) (*roster.Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return roster.NewCache(client, ttl), mr
}

func TestCacheRoundTrip(t *testing.T) {
	cache, _ := setupCache(t, time.Minute)
	ctx := context.Background()

	_, ok := cache.Get(ctx)
	assert.False(t, ok)

	want := sampleRoster()
	require.NoError(t, cache.Set(ctx, want))

	got, ok := cache.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCacheExpires(t *testing.T) {
	cache, mr := setupCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, sampleRoster()))

	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx)
	assert.False(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	cache, _ := setupCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, sampleRoster()))
	require.NoError(t, cache.Invalidate(ctx))

	_, ok := cache.Get(ctx)
	assert.False(t, ok)
}

func TestCacheUnavailableRedis(t *testing.T) {
	cache, mr := setupCache(t, time.Minute)
	ctx := context.Background()

	mr.Close()

	// A broken cache is a miss, never an error surfaced to resolve.
	_, ok := cache.Get(ctx)
	assert.False(t, ok)
	assert.Error(t, cache.Set(ctx, sampleRoster()))
}

func TestNilCacheIsMiss(t *testing.T) {
	var cache *roster.Cache

	_, ok := cache.Get(context.Background())
	assert.False(t, ok)
	assert.NoError(t, cache.Set(context.Background(), []models.Attendee{}))
}

func TestServiceServesFromCache(t *testing.T) {
	cache, _ := setupCache(t, time.Minute)
	db := &MockRosterDB{roster: sampleRoster()}
	svc := roster.NewService(db, cache, nil)

	first, err := svc.Roster(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 3)

	// A later DB failure is invisible while the snapshot is fresh.
	db.errorToReturn = assert.AnError
	second, err := svc.Roster(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
