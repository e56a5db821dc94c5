// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"smartpletude_backend/internal/feature/roster/usecase"
)

// CachingCountsRepository decorates a CountsRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingCountsRepository struct {
	inner     usecase.CountsRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that the decorator still satisfies the interface.
var _ usecase.CountsRepository = (*CachingCountsRepository)(nil)

// NewCachingCountsRepository decorates a CountsRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "roster".
func NewCachingCountsRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CountsRepository, namespace string) *CachingCountsRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "roster"
	}
	return &CachingCountsRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// cacheKey returns the Redis key for a role's headcount.
func (c *CachingCountsRepository) cacheKey(userType string) string {
	return fmt.Sprintf("%s:%s", c.namespace, userType)
}

// CountByType returns the headcount for a role, checking the cache first and
// falling back to the database. Headcounts tolerate staleness up to the TTL.
func (c *CachingCountsRepository) CountByType(ctx context.Context, userType string) (int64, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.CountByType(ctx, userType)
	}

	key := c.cacheKey(userType)

	// 1) Check cache
	if s, err := c.rdb.Get(ctx, key).Result(); err == nil {
		if n, perr := strconv.ParseInt(s, 10, 64); perr == nil {
			return n, nil
		}
		// Corrupt entry: fall through to the database and rewrite it.
	}

	// 2) Miss: query the underlying repository
	n, err := c.inner.CountByType(ctx, userType)
	if err != nil {
		return 0, err
	}

	// 3) Populate the cache. Best effort: a cache write failure never fails
	// the request.
	_ = c.rdb.Set(ctx, key, strconv.FormatInt(n, 10), c.ttl).Err()

	return n, nil
}
