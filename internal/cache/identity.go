package cache

import (
	"context"
	"time"
)

const (
	// identityCachePrefix is the Redis key prefix for verified-token cache.
	identityCachePrefix = "auth:identity:"
	// identityCacheTTL is the ceiling for cached identities. Entries
	// are additionally bounded by the token's remaining lifetime, so
	// an entry never outlives its token.
	identityCacheTTL = 5 * time.Minute
)

// GetIdentity retrieves the username previously resolved for a token
// cache key. Returns empty string on cache miss; a miss is not an error.
func (c *Cache) GetIdentity(ctx context.Context, cacheKey string) (string, error) {
	key := identityCachePrefix + cacheKey

	username, err := c.client.Get(ctx, key).Result()
	if err != nil {
		// Cache miss is not an error
		return "", nil //nolint:nilerr
	}

	return username, nil
}

// SetIdentity caches the username resolved from a verified token.
// The entry lives for the smaller of ttl (the token's remaining
// lifetime) and the cache ceiling; a non-positive ttl means no bound
// was supplied and the ceiling applies.
func (c *Cache) SetIdentity(ctx context.Context, cacheKey, username string, ttl time.Duration) error {
	if ttl <= 0 || ttl > identityCacheTTL {
		ttl = identityCacheTTL
	}
	key := identityCachePrefix + cacheKey
	return c.client.Set(ctx, key, username, ttl).Err()
}

// DeleteIdentity removes a cached identity.
func (c *Cache) DeleteIdentity(ctx context.Context, cacheKey string) error {
	key := identityCachePrefix + cacheKey
	return c.client.Del(ctx, key).Err()
}
