// Package cache holds raw model responses keyed by request fingerprint so
// identical generation attempts within the TTL share one model call.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// ComputeFunc produces the value for a missing key
type ComputeFunc func(ctx context.Context) (string, error)

// ResponseCache is a concurrent get-or-compute cache. At most one compute
// runs per key at a time; concurrent callers for that key share its result.
// The shared compute is detached from any single caller's cancellation, and
// a caller whose context ends stops waiting without affecting the others.
// Failed computations are never stored.
type ResponseCache interface {
	GetOrCompute(ctx context.Context, key string, compute ComputeFunc) (value string, hit bool, err error)
}

// MemoryCache is an in-process LRU with per-entry expiry
type MemoryCache struct {
	lru   *expirable.LRU[string, string]
	group singleflight.Group
}

var _ ResponseCache = (*MemoryCache)(nil)

// NewMemoryCache creates a cache holding at most size entries for ttl
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = 128
	}
	return &MemoryCache{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

// GetOrCompute returns the cached value for key or computes and stores it
func (c *MemoryCache) GetOrCompute(ctx context.Context, key string, compute ComputeFunc) (string, bool, error) {
	if v, ok := c.lru.Get(key); ok {
		return v, true, nil
	}

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		if v, ok := c.lru.Get(key); ok {
			return flightResult{value: v, cached: true}, nil
		}
		v, err := compute(detached)
		if err != nil {
			return nil, err
		}
		c.lru.Add(key, v)
		return flightResult{value: v}, nil
	})
	return await(ctx, ch)
}

// Len reports the number of live entries
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

type flightResult struct {
	value  string
	cached bool
}

// await waits for a shared computation or for ctx to end, whichever is first
func await(ctx context.Context, ch <-chan singleflight.Result) (string, bool, error) {
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", false, res.Err
		}
		r := res.Val.(flightResult)
		return r.value, r.cached, nil
	}
}
