// Package ratelimit keeps one token bucket per client key in a bounded LRU.
package ratelimit

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

const DefaultCacheSize = 10_000

type visitor struct {
	limiter *rate.Limiter
	last    time.Time
}

type PerKey struct {
	mu       sync.Mutex
	visitors *lru.Cache[string, *visitor]
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time
}

func NewPerKey(rps, burst, cacheSize int, ttl time.Duration) *PerKey {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	// only fails for a non-positive size
	visitors, _ := lru.New[string, *visitor](cacheSize)
	return &PerKey{
		visitors: visitors,
		limit:    rate.Limit(rps),
		burst:    burst,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Allow consumes one token for key. Visitors idle longer than ttl start over.
func (p *PerKey) Allow(key string) bool {
	now := p.now()

	p.mu.Lock()
	v, ok := p.visitors.Get(key)
	if !ok || (p.ttl > 0 && now.Sub(v.last) > p.ttl) {
		v = &visitor{limiter: rate.NewLimiter(p.limit, p.burst)}
		p.visitors.Add(key, v)
	}
	v.last = now
	p.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// Evict drops visitors idle longer than ttl.
func (p *PerKey) Evict() int {
	now := p.now()
	p.mu.Lock()
	defer p.mu.Unlock()

	removed := 0
	for _, key := range p.visitors.Keys() {
		if v, ok := p.visitors.Peek(key); ok && now.Sub(v.last) > p.ttl {
			p.visitors.Remove(key)
			removed++
		}
	}
	return removed
}

func (p *PerKey) len() int {
	return p.visitors.Len()
}

// RunEviction calls Evict every ttl until ctx is done.
func (p *PerKey) RunEviction(ctx context.Context) {
	if p.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(p.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Evict()
		}
	}
}
