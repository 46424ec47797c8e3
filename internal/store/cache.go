package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/common/metrics"
)

const countsCacheKey = "jobs:application_counts"

// CountCache puts a Redis cache-aside layer in front of a CountFetcher.
// Redis failures are logged and the read falls through to the source.
type CountCache struct {
	next   CountFetcher
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCountCache(next CountFetcher, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CountCache {
	return &CountCache{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"cache": countsCacheKey}),
	}
}

func (c *CountCache) FetchApplicationCounts(ctx context.Context) (map[string]int, error) {
	val, err := c.redis.Get(ctx, countsCacheKey).Result()
	switch {
	case err == nil:
		var counts map[string]int
		if jerr := json.Unmarshal([]byte(val), &counts); jerr == nil {
			metrics.ApplicationCountsCache.WithLabelValues("hit").Inc()
			return counts, nil
		}
		c.logger.Warn("discarding unreadable cached counts", nil)
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("redis get failed", map[string]interface{}{"error": err})
	}
	metrics.ApplicationCountsCache.WithLabelValues("miss").Inc()

	counts, err := c.next.FetchApplicationCounts(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(counts)
	if err == nil {
		if err := c.redis.Set(ctx, countsCacheKey, data, c.ttl).Err(); err != nil {
			c.logger.Warn("redis set failed", map[string]interface{}{"error": err})
		}
	}
	return counts, nil
}
