package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-assistant-client/internal/entity"

	"github.com/redis/go-redis/v9"
)

// IDashboardCache keeps the last dashboard snapshot so a new session can render
// something before its first reload returns.
type IDashboardCache interface {
	Save(ctx context.Context, snapshot entity.DashboardSnapshot) error
	// Load returns nil, nil when nothing is cached.
	Load(ctx context.Context) (*entity.DashboardSnapshot, error)
}

type redisDashboardCache struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

func NewRedisDashboardCache(rdb *redis.Client, namespace string, ttl time.Duration) IDashboardCache {
	return &redisDashboardCache{
		rdb: rdb,
		key: fmt.Sprintf("assistant:%s:dashboard", namespace),
		ttl: ttl,
	}
}

func (c *redisDashboardCache) Save(ctx context.Context, snapshot entity.DashboardSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal dashboard snapshot: %w", err)
	}
	if err := c.rdb.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache dashboard snapshot: %w", err)
	}
	return nil
}

func (c *redisDashboardCache) Load(ctx context.Context) (*entity.DashboardSnapshot, error) {
	data, err := c.rdb.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cached dashboard: %w", err)
	}

	var snapshot entity.DashboardSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode cached dashboard: %w", err)
	}
	return &snapshot, nil
}

// NewRedisClient parses a redis URL, falling back to treating it as a plain address.
func NewRedisClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	return redis.NewClient(opt)
}
