package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/nexjob/nexjob-api/pkg/errors"
)

// CacheStore is the raw redis-backed store.
type CacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService wraps the redis store with hit/miss accounting. It satisfies
// FilterCache so the SEO and sitemap services can consume it directly.
type CacheService struct {
	store   CacheStore
	metrics *MetricsService
	logger  *zap.Logger
}

// NewCacheService wires the cache service.
func NewCacheService(store CacheStore, metrics *MetricsService, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{store: store, metrics: metrics, logger: logger}
}

// Get reads a cached JSON payload, counting the hit or miss.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	err := s.store.Get(ctx, key, dest)
	if err == nil {
		s.metrics.RecordCacheOperation(true)
		return nil
	}

	s.metrics.RecordCacheOperation(false)
	if !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Set stores a JSON payload with the given TTL. Write failures are logged and
// swallowed: a broken cache must never fail the request.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if err := s.store.Set(ctx, key, value, ttl); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// Invalidate removes every key matching the pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) error {
	return s.store.DeleteByPattern(ctx, pattern)
}
