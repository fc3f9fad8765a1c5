package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"watchlog/internal/config"
	"watchlog/internal/microservices/http-api/models"
)

// WatchlistCache keeps a user's watchlist between reads. Any write to the
// user's entries must call Invalidate, which also bumps the user's version.
//
// A reader takes Version before loading from the database and passes it to
// Set. Set stores nothing when the version moved in between, so a load that
// raced a write cannot repopulate the cache with the old list.
type WatchlistCache interface {
	Get(ctx context.Context, userID int64) ([]models.WatchEntry, bool, error)
	Version(ctx context.Context, userID int64) (int64, error)
	Set(ctx context.Context, userID, version int64, entries []models.WatchEntry) error
	Invalidate(ctx context.Context, userID int64) error
}

// NopCache is used when Redis is not configured. It never hits.
type NopCache struct{}

func (NopCache) Get(context.Context, int64) ([]models.WatchEntry, bool, error) { return nil, false, nil }
func (NopCache) Version(context.Context, int64) (int64, error)                { return 0, nil }
func (NopCache) Set(context.Context, int64, int64, []models.WatchEntry) error { return nil }
func (NopCache) Invalidate(context.Context, int64) error                      { return nil }

// errStaleVersion aborts a Set whose version was bumped by an Invalidate.
var errStaleVersion = errors.New("watchlist version changed")

type RedisWatchlistCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient parses REDIS_URL and verifies the connection.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func NewRedisWatchlistCache(client *redis.Client, ttl time.Duration) *RedisWatchlistCache {
	return &RedisWatchlistCache{client: client, ttl: ttl}
}

func watchlistKey(userID int64) string {
	return fmt.Sprintf("watchlist:user:%d", userID)
}

func versionKey(userID int64) string {
	return fmt.Sprintf("watchlist:user:%d:version", userID)
}

func (c *RedisWatchlistCache) Get(ctx context.Context, userID int64) ([]models.WatchEntry, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}

	raw, err := c.client.Get(ctx, watchlistKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get watchlist cache: %w", err)
	}

	var entries []models.WatchEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		// a corrupt value is dropped and treated as a miss
		_ = c.client.Del(ctx, watchlistKey(userID)).Err()
		return nil, false, nil
	}
	return entries, true, nil
}

// Version returns the user's current watchlist version, 0 before the first
// invalidation.
func (c *RedisWatchlistCache) Version(ctx context.Context, userID int64) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	v, err := c.client.Get(ctx, versionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get watchlist version: %w", err)
	}
	return v, nil
}

// Set stores entries only while the user's version still equals version.
// A stale or conflicting write is skipped without error.
func (c *RedisWatchlistCache) Set(ctx context.Context, userID, version int64, entries []models.WatchEntry) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}

	vKey := versionKey(userID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleVersion
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, watchlistKey(userID), raw, c.ttl)
			return nil
		})
		return err
	}, vKey)
	if errors.Is(err, errStaleVersion) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("set watchlist cache: %w", err)
	}
	return nil
}

func (c *RedisWatchlistCache) Invalidate(ctx context.Context, userID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(userID))
		pipe.Del(ctx, watchlistKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate watchlist cache: %w", err)
	}
	return nil
}
