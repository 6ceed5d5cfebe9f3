package insight

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"time"

	"go-hpp-dashboard/internal/cache"
)

// CachedGenerator memoizes commentary per prompt for a short TTL. Cache
// errors are ignored; the upstream generator is the source of truth.
type CachedGenerator struct {
	next  Generator
	cache cache.InsightCache
	ttl   time.Duration
}

func NewCachedGenerator(next Generator, cacheStore cache.InsightCache, ttl time.Duration) *CachedGenerator {
	if cacheStore == nil {
		cacheStore = cache.NoopInsightCache{}
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedGenerator{next: next, cache: cacheStore, ttl: ttl}
}

func (g *CachedGenerator) GenerateInsights(ctx context.Context, systemRole, prompt string) (string, error) {
	key := cacheKey(systemRole, prompt)
	if cached, ok, err := g.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	}

	text, err := g.next.GenerateInsights(ctx, systemRole, prompt)
	if err != nil {
		return "", err
	}

	_ = g.cache.Set(ctx, key, text, g.ttl)
	return text, nil
}

func cacheKey(systemRole, prompt string) string {
	sum := sha1.Sum([]byte(systemRole + "\x00" + prompt))
	return "insight:" + hex.EncodeToString(sum[:])
}
