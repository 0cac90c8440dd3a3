package redis_test

import (
	"context"
	"sync"
	"time"

	cache "firehose-dashboard/internal/dashboard/adapters/redis"
)

// fakeKVStore is an in-memory KVStore with TTL, for tests only.
type fakeKVStore struct {
	mu   sync.Mutex
	data map[string]fakeKVItem
	now  func() time.Time
	err  error
}

type fakeKVItem struct {
	value   string
	expires time.Time
}

func newFakeKVStore() *fakeKVStore {
	return &fakeKVStore{
		data: make(map[string]fakeKVItem),
		now:  time.Now,
	}
}

func (f *fakeKVStore) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}
	item, ok := f.data[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	if !item.expires.IsZero() && f.now().After(item.expires) {
		delete(f.data, key)
		return "", cache.ErrCacheMiss
	}
	return item.value, nil
}

func (f *fakeKVStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	var exp time.Time
	if ttl > 0 {
		exp = f.now().Add(ttl)
	}
	f.data[key] = fakeKVItem{value: value, expires: exp}
	return nil
}
