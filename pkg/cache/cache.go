// Package cache provides a small in-process freshness cache: values are
// fetched on demand and reused until a fixed TTL expires.
package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	gocachestore "github.com/eko/gocache/store/go_cache/v4"
	gocacheclient "github.com/patrickmn/go-cache"
)

// Cache memoises a fetch function per key. A successful fetch is stored
// even when the fetched value is nil, so "the upstream has no such thing"
// is remembered just like real data. Failed fetches are never stored; the
// next Get for that key retries.
type Cache[K comparable, V any] struct {
	fetch func(K) (V, error)
	cache *gocache.Cache[V]
}

// New builds a cache over an in-process store. The zero cleanup interval
// leaves eviction lazy: expired entries linger until the access that finds
// them.
func New[K comparable, V any](ttl time.Duration, fetch func(K) (V, error)) *Cache[K, V] {
	client := gocacheclient.New(ttl, 0)
	cacheStore := gocachestore.NewGoCache(client, store.WithExpiration(ttl))

	return &Cache[K, V]{
		fetch: fetch,
		cache: gocache.New[V](cacheStore),
	}
}

// Get returns the cached value for key, fetching it first if the key is
// missing or its entry has outlived the TTL. Concurrent misses for the
// same key may each fetch; the last one to finish wins.
func (c *Cache[K, V]) Get(key K) (V, error) {
	cacheKey := fmt.Sprintf("%v", key)

	value, err := c.cache.Get(context.Background(), cacheKey)
	if err == nil {
		return value, nil
	}

	value, err = c.fetch(key)
	if err != nil {
		var zero V
		return zero, err
	}

	c.cache.Set(context.Background(), cacheKey, value)

	return value, nil
}
