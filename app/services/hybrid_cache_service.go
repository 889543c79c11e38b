package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tire-advisor/app/models"
)

// HybridCacheService layers the in-process LRU (L1) over Redis (L2). A
// Redis outage degrades to L1-only behavior instead of failing requests.
type HybridCacheService struct {
	l1     *MemoryCacheService
	l2     *RedisCacheService
	logger *zap.Logger
}

// NewHybridCacheService creates the layered cache.
func NewHybridCacheService(l1 *MemoryCacheService, l2 *RedisCacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{l1: l1, l2: l2, logger: logger}
}

// Get checks L1 first, then L2; an L2 hit is promoted into L1 off the
// request path.
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.ExtractedSpec, bool, error) {
	spec, found, err := hcs.l1.Get(ctx, key)
	if err == nil && found {
		return spec, true, nil
	}

	spec, found, err = hcs.l2.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("redis cache error, serving without L2", zap.Error(err))
		return nil, false, nil
	}
	if !found {
		return nil, false, nil
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hcs.l1.Set(bgCtx, key, spec); err != nil {
			hcs.logger.Warn("promote to L1 failed", zap.String("key", key), zap.Error(err))
		}
	}()

	return spec, true, nil
}

// Set writes to both layers.
func (hcs *HybridCacheService) Set(ctx context.Context, key string, spec *models.ExtractedSpec) error {
	if err := hcs.l1.Set(ctx, key, spec); err != nil {
		return err
	}
	if err := hcs.l2.Set(ctx, key, spec); err != nil {
		hcs.logger.Warn("redis cache set failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// Delete removes the key from both layers.
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	err1 := hcs.l1.Delete(ctx, key)
	err2 := hcs.l2.Delete(ctx, key)
	if err1 != nil || err2 != nil {
		return fmt.Errorf("hybrid delete: l1=%v l2=%v", err1, err2)
	}
	return nil
}

// Clear empties both layers.
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	if err := hcs.l1.Clear(ctx); err != nil {
		return err
	}
	return hcs.l2.Clear(ctx)
}

// GetStats combines statistics from both layers.
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	l1Stats, err := hcs.l1.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	l2Stats, err := hcs.l2.GetStats(ctx)
	if err != nil {
		return l1Stats, nil
	}

	stats := &CacheStats{
		TotalHits:  l1Stats.TotalHits + l2Stats.TotalHits,
		TotalMiss:  l2Stats.TotalMiss, // a real miss missed both layers
		TotalItems: l1Stats.TotalItems,
	}
	if total := stats.TotalHits + stats.TotalMiss; total > 0 {
		stats.HitRate = float64(stats.TotalHits) / float64(total)
	}
	return stats, nil
}

// Close closes the Redis connection.
func (hcs *HybridCacheService) Close() error {
	if err := hcs.l1.Close(); err != nil {
		return err
	}
	return hcs.l2.Close()
}
