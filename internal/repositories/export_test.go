package repository

import (
	"time"

	"github.com/aaravmahajanofficial/storefront-api/internal/config"
	"github.com/redis/go-redis/v9"
)

var ProductFilterClause = productFilterClause

func NewRateLimitRepoWithClock(client redis.Cmdable, cfg config.RateConfig, now func() time.Time) RateLimitRepository {
	return &redisRateLimiter{client: client, limit: cfg.MaxAttempts, window: cfg.WindowSize, now: now}
}
