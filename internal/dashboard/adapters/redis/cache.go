package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"firehose-dashboard/internal/dashboard/core/domain"
	"firehose-dashboard/internal/dashboard/core/ports"

	goredis "github.com/go-redis/redis/v8"
)

// ErrCacheMiss reports that a key does not exist or has expired.
var ErrCacheMiss = errors.New("cache miss")

// KVStore is the slice of Redis the snapshot cache needs; tests swap in an
// in-memory version.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type RedisKVStore struct {
	client *goredis.Client
}

func NewRedisKVStore(client *goredis.Client) *RedisKVStore {
	return &RedisKVStore{client: client}
}

func (r *RedisKVStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

func (r *RedisKVStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

type Options struct {
	Addr     string
	Password string
	DB       int
}

func NewClient(opts Options) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

// SnapshotCache stores built dashboards as JSON with a TTL.
type SnapshotCache struct {
	kv KVStore
}

var _ ports.SnapshotCachePort = (*SnapshotCache)(nil)

func NewSnapshotCache(kv KVStore) *SnapshotCache {
	return &SnapshotCache{kv: kv}
}

func (c *SnapshotCache) Get(ctx context.Context, key string) (*domain.Dashboard, bool, error) {
	raw, err := c.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get snapshot: %w", err)
	}

	var d domain.Dashboard
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return &d, true, nil
}

func (c *SnapshotCache) Set(ctx context.Context, key string, d *domain.Dashboard, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := c.kv.Set(ctx, key, string(data), ttl); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}
