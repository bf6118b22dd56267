package tagcloud_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/metrics"
	"personal-site-service/internal/model"
)

const (
	cloudCacheKey = "tagcloud:all"
	cloudCacheTTL = 5 * time.Minute
)

// Cache is the key/value surface the decorator needs; the redis client
// implements it.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CacheDecorator caches the full aggregation. Content services call
// InvalidateAggregation synchronously on every mutation touching tags
// or tagged items, so readers never see a stale cloud past a write.
type CacheDecorator struct {
	service Service
	cache   Cache
	log     *logger.Logger
	metrics metrics.Provider
}

func NewCacheDecorator(service Service, cache Cache, log *logger.Logger, metrics metrics.Provider) *CacheDecorator {
	return &CacheDecorator{service: service, cache: cache, log: log, metrics: metrics}
}

func (d *CacheDecorator) Aggregate(ctx context.Context) ([]*model.TagCount, error) {
	var cached []*model.TagCount
	err := d.cache.Get(ctx, cloudCacheKey, &cached)
	if err == nil {
		d.metrics.IncCacheHits()
		return cached, nil
	}
	if !errors.Is(err, custom_errors.ErrCacheMiss) {
		d.log.Warn("Tag cloud cache read failed", slog.String("error", err.Error()))
	}
	d.metrics.IncCacheMisses()

	result, err := d.service.Aggregate(ctx)
	if err != nil {
		return nil, err
	}

	if err := d.cache.Set(ctx, cloudCacheKey, result, cloudCacheTTL); err != nil {
		d.log.Warn("Failed to cache tag cloud", slog.String("error", err.Error()))
	}
	return result, nil
}

// AggregateKind is not cached; per-kind clouds are rare requests.
func (d *CacheDecorator) AggregateKind(ctx context.Context, kind model.ContentKind) ([]*model.TagCount, error) {
	return d.service.AggregateKind(ctx, kind)
}

func (d *CacheDecorator) ListTags(ctx context.Context) ([]*model.Tag, error) {
	return d.service.ListTags(ctx)
}

func (d *CacheDecorator) InvalidateAggregation(ctx context.Context) {
	if err := d.cache.Delete(ctx, cloudCacheKey); err != nil {
		d.log.Warn("Failed to invalidate tag cloud cache", slog.String("error", err.Error()))
	}
}
