// Package fx caches display exchange rates. Rates never enter settlement
// math; the cache exists so the lookup collaborator isn't hit per request.
package fx

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// RateSource is the external FX lookup collaborator.
type RateSource interface {
	Rate(ctx context.Context, base, quote string) (float64, error)
}

type cacheEntry struct {
	rate      float64
	fetchedAt time.Time
}

// Cache memoizes rates with an explicit TTL against an injected clock. The
// clock injection is what makes expiry testable; no global time reads.
type Cache struct {
	src RateSource
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

func NewCache(src RateSource, ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{src: src, ttl: ttl, now: now, entries: map[string]cacheEntry{}}
}

func (c *Cache) Rate(ctx context.Context, base, quote string) (float64, error) {
	base = strings.ToUpper(base)
	quote = strings.ToUpper(quote)
	key := base + "/" + quote

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) < c.ttl {
		return e.rate, nil
	}

	rate, err := c.src.Rate(ctx, base, quote)
	if err != nil {
		return 0, fmt.Errorf("fx lookup %s: %w", key, err)
	}
	c.entries[key] = cacheEntry{rate: rate, fetchedAt: c.now()}
	return rate, nil
}

// StaticSource serves a fixed rate table, keyed "BASE/QUOTE". Stand-in for
// the real lookup service in local runs and tests.
type StaticSource map[string]float64

func (s StaticSource) Rate(_ context.Context, base, quote string) (float64, error) {
	if base == quote {
		return 1, nil
	}
	if r, ok := s[base+"/"+quote]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("no rate for %s/%s", base, quote)
}
