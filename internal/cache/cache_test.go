package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/singleflight"
)

func newTestCache(ttl time.Duration, opts ...Option) *TTLCache {
	return New(ttl, append([]Option{WithGroup(&singleflight.Group{})}, opts...)...)
}

func TestGet_HitAndExpiry(t *testing.T) {
	c := newTestCache(50 * time.Millisecond)
	calls := 0
	load := func() (interface{}, error) {
		calls++
		return calls, nil
	}
	ctx := context.Background()

	v, hit, err := c.Get(ctx, "k", load)
	if err != nil || hit || v.(int) != 1 {
		t.Fatalf("first get: v=%v hit=%v err=%v", v, hit, err)
	}
	v, hit, err = c.Get(ctx, "k", load)
	if err != nil || !hit || v.(int) != 1 {
		t.Fatalf("second get: v=%v hit=%v err=%v", v, hit, err)
	}

	time.Sleep(100 * time.Millisecond)
	v, hit, err = c.Get(ctx, "k", load)
	if err != nil || hit || v.(int) != 2 {
		t.Fatalf("after expiry: v=%v hit=%v err=%v", v, hit, err)
	}
}

func TestGet_BoundedSize(t *testing.T) {
	c := newTestCache(time.Minute, WithSize(10))
	ctx := context.Background()
	for i := 0; i < 500; i++ {
		key := fmt.Sprintf("pokemons:%d:10", i)
		if _, _, err := c.Get(ctx, key, func() (interface{}, error) { return i, nil }); err != nil {
			t.Fatalf("get %s: %v", key, err)
		}
	}
	if n := c.Len(); n > 10 {
		t.Fatalf("expected at most 10 entries, got %d", n)
	}
	// the most recent key survives, the oldest was evicted
	if _, hit, _ := c.Get(ctx, "pokemons:499:10", func() (interface{}, error) { return nil, nil }); !hit {
		t.Fatalf("expected most recent key to be cached")
	}
	if _, hit, _ := c.Get(ctx, "pokemons:0:10", func() (interface{}, error) { return 0, nil }); hit {
		t.Fatalf("expected oldest key to be evicted")
	}
}

func TestGet_ZeroTTLDoesNotStore(t *testing.T) {
	c := newTestCache(0)
	calls := 0
	load := func() (interface{}, error) {
		calls++
		return "x", nil
	}
	for i := 0; i < 3; i++ {
		if _, hit, _ := c.Get(context.Background(), "k", load); hit {
			t.Fatalf("unexpected hit with zero ttl")
		}
	}
	if calls != 3 || c.Len() != 0 {
		t.Fatalf("expected 3 loads and no entries, got %d loads, %d entries", calls, c.Len())
	}
}

func TestGet_ErrorNotCached(t *testing.T) {
	c := newTestCache(time.Minute)
	boom := errors.New("boom")
	if _, _, err := c.Get(context.Background(), "k", func() (interface{}, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	v, hit, err := c.Get(context.Background(), "k", func() (interface{}, error) { return "ok", nil })
	if err != nil || hit || v.(string) != "ok" {
		t.Fatalf("unexpected result: v=%v hit=%v err=%v", v, hit, err)
	}
}

func TestGet_CollapsesConcurrentMisses(t *testing.T) {
	c := newTestCache(time.Minute)
	var calls int32
	release := make(chan struct{})
	load := func() (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "page", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _, err := c.Get(context.Background(), "k", load)
			if err != nil || v.(string) != "page" {
				t.Errorf("unexpected result: v=%v err=%v", v, err)
			}
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected a single load, got %d", n)
	}
}

func TestPurge(t *testing.T) {
	c := newTestCache(time.Minute)
	_, _, _ = c.Get(context.Background(), "k", func() (interface{}, error) { return 1, nil })
	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("expected empty cache after purge")
	}
}
