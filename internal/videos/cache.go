package videos

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	details Details
	expires time.Time
}

// CachingProvider wraps another Provider with a TTL-based in-memory cache
// keyed by video id.
type CachingProvider struct {
	base Provider
	ttl  time.Duration

	mu    sync.RWMutex
	items map[string]cacheEntry
}

// NewCachingProvider returns a Provider that caches lookups for the provided TTL.
func NewCachingProvider(base Provider, ttl time.Duration) *CachingProvider {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachingProvider{
		base:  base,
		ttl:   ttl,
		items: make(map[string]cacheEntry),
	}
}

// Lookup returns cached details when available, otherwise it delegates to the
// underlying provider and stores the result. Failed lookups are not cached.
func (c *CachingProvider) Lookup(ctx context.Context, videoID string) (Details, error) {
	if c == nil || c.base == nil {
		return Details{}, ErrProviderUnavailable
	}

	now := time.Now()

	c.mu.RLock()
	entry, ok := c.items[videoID]
	c.mu.RUnlock()
	if ok && now.Before(entry.expires) {
		return entry.details, nil
	}

	details, err := c.base.Lookup(ctx, videoID)
	if err != nil {
		return Details{}, err
	}

	c.mu.Lock()
	c.items[videoID] = cacheEntry{details: details, expires: now.Add(c.ttl)}
	c.mu.Unlock()

	return details, nil
}
