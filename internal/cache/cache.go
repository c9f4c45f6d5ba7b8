// Package cache holds short-lived copies of computed responses.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/dedupe"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/observe"
)

// DefaultSize bounds the number of entries a cache keeps.
const DefaultSize = 1024

// Option configures a TTLCache.
type Option func(*TTLCache)

// WithSize bounds the cache to n entries; the least recently used entry is
// evicted first. Non-positive n keeps DefaultSize.
func WithSize(n int) Option {
	return func(c *TTLCache) {
		if n > 0 {
			c.size = n
		}
	}
}

// WithGroup sets the singleflight group used to collapse concurrent misses.
// Defaults to dedupe.PageGroup.
func WithGroup(g *singleflight.Group) Option {
	return func(c *TTLCache) { c.group = g }
}

// WithMetrics records hits and misses on m.
func WithMetrics(m *observe.Metrics) Option {
	return func(c *TTLCache) { c.metrics = m }
}

// TTLCache maps keys to values that expire after a fixed TTL, holding at
// most a fixed number of entries. A TTL of zero disables storage; concurrent
// loads for one key are still collapsed.
type TTLCache struct {
	ttl     time.Duration
	size    int
	group   *singleflight.Group
	metrics *observe.Metrics
	lru     *expirable.LRU[string, interface{}]
}

func New(ttl time.Duration, opts ...Option) *TTLCache {
	c := &TTLCache{
		ttl:   ttl,
		size:  DefaultSize,
		group: &dedupe.PageGroup,
	}
	for _, o := range opts {
		o(c)
	}
	c.lru = expirable.NewLRU[string, interface{}](c.size, nil, ttl)
	return c
}

// Get returns the cached value for key, calling load on a miss. The
// returned bool reports whether the value came from the cache. Load errors
// are not cached.
func (c *TTLCache) Get(ctx context.Context, key string, load func() (interface{}, error)) (interface{}, bool, error) {
	if v, ok := c.lru.Get(key); ok {
		c.record(ctx, true)
		return v, true, nil
	}
	c.record(ctx, false)

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// another caller may have stored it while we queued
		if v, ok := c.lru.Get(key); ok {
			return v, nil
		}
		v, err := load()
		if err != nil {
			return nil, err
		}
		if c.ttl > 0 {
			c.lru.Add(key, v)
		}
		return v, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v, false, nil
}

// Len returns the number of stored entries, including expired ones not yet
// swept.
func (c *TTLCache) Len() int {
	return c.lru.Len()
}

// Purge drops every entry.
func (c *TTLCache) Purge() {
	c.lru.Purge()
}

func (c *TTLCache) record(ctx context.Context, hit bool) {
	if c.metrics != nil {
		c.metrics.RecordCacheLookup(ctx, hit)
	}
}
