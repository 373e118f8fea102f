// Package cache keeps the derived portfolio summary in redis so repeated
// reads skip the full ledger replay. The service flushes the key on every
// ledger or valuation mutation; correctness never depends on the cache.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
)

const summaryKey = "portfolio:summary"

type RedisCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{redis: client, ttl: ttl}
}

func (c *RedisCache) GetPortfolioSummary(ctx context.Context) (model.PortfolioSummary, error) {
	raw, err := c.redis.Get(ctx, summaryKey).Bytes()
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	var summary model.PortfolioSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return model.PortfolioSummary{}, err
	}
	return summary, nil
}

func (c *RedisCache) SetPortfolioSummary(ctx context.Context, summary model.PortfolioSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, summaryKey, raw, c.ttl).Err()
}

func (c *RedisCache) FlushPortfolioSummary(ctx context.Context) error {
	return c.redis.Del(ctx, summaryKey).Err()
}
