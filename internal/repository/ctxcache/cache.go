// Package ctxcache memoizes assembled context blocks by request fingerprint.
//
// The cache is pure memoization: a hit must be bit-identical to what a miss
// would have produced at write time. It is also strictly optional. Any
// backend failure degrades to a miss on read and a silent discard on write,
// never an error surfaced to the caller.
package ctxcache

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/shahtirth07/pagepal/internal/db"
	"github.com/shahtirth07/pagepal/internal/domain"
)

var cacheKeyPrefix = domain.KeyPrefix + "ctx_cache:"

// DefaultTTL bounds staleness of cached context.
const DefaultTTL = time.Hour

// store is the consumer interface for the context cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache stores assembled context strings with TTL eviction.
type Cache struct {
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a context cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns the cached context for a fingerprint. Expiry is passive: the
// backend drops expired keys, so a stale entry can never be returned. Any
// backend error reads as a miss.
func (c *Cache) Get(ctx context.Context, fingerprint string) (string, bool) {
	key := cacheKeyPrefix + fingerprint

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to read context cache", zap.String("key", key), zap.Error(err))
		}
		c.incCache("miss")
		return "", false
	}
	if len(data) == 0 {
		c.incCache("miss")
		return "", false
	}

	c.incCache("hit")
	return string(data), true
}

// Put stores an assembled context string. Write failures are logged and
// swallowed: losing a cache write costs a recomputation, nothing more.
func (c *Cache) Put(ctx context.Context, fingerprint, contextText string) {
	key := cacheKeyPrefix + fingerprint
	if err := c.store.SetWithTTL(ctx, key, []byte(contextText), c.ttl); err != nil {
		c.logger.Warn("Failed to write context cache", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
