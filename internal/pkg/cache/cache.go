package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCache stores computed reports. Invalidate drops every entry at once by
// moving to a new generation; old entries expire on their own.
//
// Get reports the generation it looked under. Callers pass it back to Set so a
// report computed from data read before an Invalidate lands in the old
// generation and is never served.
type ReportCache interface {
	Get(ctx context.Context, key string, dst interface{}) (Generation, bool, error)
	Set(ctx context.Context, gen Generation, key string, value interface{}) error
	Invalidate(ctx context.Context) error
}

type Generation int64

const generationKey = "facility:report:generation"

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects and pings the server.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	slog.Info("Successfully connected to Redis", "addr", addr)
	return rdb, nil
}

func NewRedisReportCache(client *redis.Client, ttl time.Duration) ReportCache {
	return &redisReportCache{client: client, ttl: ttl}
}

func (c *redisReportCache) generation(ctx context.Context) (Generation, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return Generation(gen), nil
}

func dataKey(gen Generation, key string) string {
	return fmt.Sprintf("facility:report:g%d:%s", gen, key)
}

func (c *redisReportCache) Get(ctx context.Context, key string, dst interface{}) (Generation, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return 0, false, err
	}

	raw, err := c.client.Get(ctx, dataKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return gen, false, nil
	}
	if err != nil {
		return gen, false, fmt.Errorf("failed to read cached report: %w", err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return gen, false, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return gen, true, nil
}

func (c *redisReportCache) Set(ctx context.Context, gen Generation, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report for cache: %w", err)
	}

	if err := c.client.Set(ctx, dataKey(gen, key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

func (c *redisReportCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("failed to bump cache generation: %w", err)
	}
	return nil
}

type noopReportCache struct{}

// NewNoopReportCache is used when no Redis address is configured.
func NewNoopReportCache() ReportCache {
	return noopReportCache{}
}

func (noopReportCache) Get(context.Context, string, interface{}) (Generation, bool, error) {
	return 0, false, nil
}
func (noopReportCache) Set(context.Context, Generation, string, interface{}) error { return nil }
func (noopReportCache) Invalidate(context.Context) error { return nil }
