package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlog/internal/config"
	"watchlog/internal/microservices/http-api/models"
)

func newTestCache(t *testing.T) (*RedisWatchlistCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisWatchlistCache(client, time.Minute), mr
}

func TestRedisWatchlistCache_RoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, hit, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, hit)

	season := 2
	entries := []models.WatchEntry{
		{ID: 7, UserID: 1, ContentType: models.ContentSeries, ContentID: 3, Status: models.StatusWatching, CurrentSeason: &season, WatchedEpisodes: 4, TotalEpisodes: 10},
	}
	version, err := c.Version(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, version)
	require.NoError(t, c.Set(ctx, 1, version, entries))
	assert.True(t, mr.Exists("watchlist:user:1"))
	assert.Equal(t, time.Minute, mr.TTL("watchlist:user:1"))

	got, hit, err := c.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].ID)
	assert.Equal(t, 2, *got[0].CurrentSeason)
	assert.Equal(t, 40.0, got[0].PercentageWatched())

	require.NoError(t, c.Invalidate(ctx, 1))
	_, hit, err = c.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisWatchlistCache_InvalidateBumpsVersion(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Invalidate(ctx, 1))
	require.NoError(t, c.Invalidate(ctx, 1))

	version, err := c.Version(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
	got, err := mr.Get("watchlist:user:1:version")
	require.NoError(t, err)
	assert.Equal(t, "2", got)

	other, err := c.Version(ctx, 2)
	require.NoError(t, err)
	assert.Zero(t, other)
}

func TestRedisWatchlistCache_SetAfterInvalidateIsDropped(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	stale := []models.WatchEntry{{ID: 1, UserID: 1, ContentType: models.ContentMovie, ContentID: 1, WatchedEpisodes: 0, TotalEpisodes: 1}}

	version, err := c.Version(ctx, 1)
	require.NoError(t, err)

	// a write lands between the reader's database load and its Set
	require.NoError(t, c.Invalidate(ctx, 1))

	require.NoError(t, c.Set(ctx, 1, version, stale))
	assert.False(t, mr.Exists("watchlist:user:1"))

	current, err := c.Version(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, 1, current, stale))
	assert.True(t, mr.Exists("watchlist:user:1"))
}

func TestRedisWatchlistCache_VersionError(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("watchlist:user:1:version", "abc"))

	_, err := c.Version(context.Background(), 1)
	assert.Error(t, err)
}

func TestRedisWatchlistCache_CorruptValueIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("watchlist:user:5", "not json"))

	_, hit, err := c.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, mr.Exists("watchlist:user:5"))
}

func TestRedisWatchlistCache_NilIsNoop(t *testing.T) {
	var c *RedisWatchlistCache
	ctx := context.Background()

	_, hit, err := c.Get(ctx, 1)
	assert.NoError(t, err)
	assert.False(t, hit)
	v, err := c.Version(ctx, 1)
	assert.NoError(t, err)
	assert.Zero(t, v)
	assert.NoError(t, c.Set(ctx, 1, 0, nil))
	assert.NoError(t, c.Invalidate(ctx, 1))
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(&config.Config{RedisURL: "redis://" + mr.Addr() + "/0"})
	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, client.Ping(context.Background()).Err())

	_, err = NewRedisClient(&config.Config{RedisURL: "://bad"})
	assert.Error(t, err)
}
