package generation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "linkctx:"

// ContextCache stores fetched page text keyed by URL so a retry of a failed
// draft does not re-fetch the posting. A cache miss or a Redis error is never
// fatal; the fetcher just goes to the network.
type ContextCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewContextCache creates a cache over the given Redis client.
func NewContextCache(client redis.UniversalClient, ttl time.Duration) *ContextCache {
	return &ContextCache{client: client, ttl: ttl}
}

// Get returns the cached page text for url, or "" on miss.
func (c *ContextCache) Get(ctx context.Context, url string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}

	// redis.Nil and Redis trouble both read as a miss.
	val, err := c.client.Get(ctx, cacheKey(url)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Put stores page text for url with the configured TTL, best effort.
func (c *ContextCache) Put(ctx context.Context, url, text string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, cacheKey(url), text, c.ttl).Err()
}

func cacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
