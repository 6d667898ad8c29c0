package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-api/internal/metrics"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	MenuKey       = "catalog:menu"
	FacetsKey     = "catalog:facets"
	CategoriesKey = "catalog:categories"
	HomeKeyPrefix = "catalog:home"

	ProductKeyPrefix    = "catalog:product"
	CollectionKeyPrefix = "catalog:collection"
)

// Fetch reads key through c and falls back to load on a miss. Cache errors
// are logged and never fail the read; a nil Cache always loads.
func Fetch[T any](ctx context.Context, c Cache, logger *slog.Logger, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var value T

	if c != nil {
		found, err := c.Get(ctx, key, &value)
		if err != nil {
			logger.Warn("Cache read failed, falling back to database", slog.String("key", key), slog.Any("error", err))
		} else if found {
			metrics.RecordCacheLookup(true)
			logger.Debug("Cache hit", slog.String("key", key))

			return value, nil
		}

		metrics.RecordCacheLookup(false)
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if c != nil {
		if err := c.Set(ctx, key, value, ttl); err != nil {
			logger.Warn("Failed to populate cache", slog.String("key", key), slog.Any("error", err))
		}
	}

	return value, nil
}
