package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront-api/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// RateLimitDecision is the outcome of one attempt against a sliding window.
type RateLimitDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type RateLimitRepository interface {
	Allow(ctx context.Context, scope, subject string) (RateLimitDecision, error)
}

type redisRateLimiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	redisURL := cfg.RedisConnect.GetDSN()
	slog.Info("Connecting to Redis", slog.String("url",
		fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.RedisConnect.Username, cfg.RedisConnect.Host, cfg.RedisConnect.Port)))

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")

	return client, nil
}

func NewRateLimitRepo(client redis.Cmdable, cfg config.RateConfig) RateLimitRepository {
	return &redisRateLimiter{client: client, limit: cfg.MaxAttempts, window: cfg.WindowSize, now: time.Now}
}

// Allow records an attempt for subject within scope and reports whether it
// fits in the window. Rejected attempts are recorded too, so hammering the
// endpoint keeps the window full.
func (r *redisRateLimiter) Allow(ctx context.Context, scope, subject string) (RateLimitDecision, error) {
	logger := middleware.LoggerFromContext(ctx)

	key := fmt.Sprintf("rate:%s:%s", scope, subject)
	now := r.now()
	windowStart := now.Add(-r.window)

	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixMilli(), 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMilli()), Member: strconv.FormatInt(now.UnixNano(), 10)})
	count := pipe.ZCard(ctx, key)
	oldest := pipe.ZRangeWithScores(ctx, key, 0, 0)
	pipe.Expire(ctx, key, r.window)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", slog.String("key", key), slog.Any("error", err))
		return RateLimitDecision{}, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()
	if attempts <= r.limit {
		return RateLimitDecision{Allowed: true, Remaining: int(r.limit - attempts)}, nil
	}

	retryAfter := r.window
	if scores := oldest.Val(); len(scores) > 0 {
		oldestAt := time.UnixMilli(int64(scores[0].Score))
		retryAfter = max(oldestAt.Add(r.window).Sub(now), 0)
	}

	logger.Warn("Rate limit exceeded", slog.String("scope", scope), slog.Int64("attempts", attempts))

	return RateLimitDecision{Allowed: false, RetryAfter: retryAfter}, nil
}
