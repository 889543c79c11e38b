package services

import (
	"context"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tire-advisor/app/models"
)

// MemoryCacheService in-process LRU cache for extraction results.
type MemoryCacheService struct {
	cache *lru.Cache[string, *models.ExtractedSpec]

	hits   int64
	misses int64
}

// NewMemoryCacheService creates an LRU cache holding up to size entries.
func NewMemoryCacheService(size int) (*MemoryCacheService, error) {
	cache, err := lru.New[string, *models.ExtractedSpec](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCacheService{cache: cache}, nil
}

// Get returns the cached spec for key, if present.
func (cs *MemoryCacheService) Get(ctx context.Context, key string) (*models.ExtractedSpec, bool, error) {
	if spec, ok := cs.cache.Get(key); ok {
		atomic.AddInt64(&cs.hits, 1)
		return spec, true, nil
	}
	atomic.AddInt64(&cs.misses, 1)
	return nil, false, nil
}

// Set stores a spec under key, evicting the least recently used entry if
// the cache is full.
func (cs *MemoryCacheService) Set(ctx context.Context, key string, spec *models.ExtractedSpec) error {
	cs.cache.Add(key, spec)
	return nil
}

// Delete removes one key.
func (cs *MemoryCacheService) Delete(ctx context.Context, key string) error {
	cs.cache.Remove(key)
	return nil
}

// Clear removes all entries.
func (cs *MemoryCacheService) Clear(ctx context.Context) error {
	cs.cache.Purge()
	return nil
}

// GetStats returns hit statistics.
func (cs *MemoryCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits := atomic.LoadInt64(&cs.hits)
	misses := atomic.LoadInt64(&cs.misses)
	stats := &CacheStats{
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(cs.cache.Len()),
	}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats, nil
}

// Close is a no-op for the in-memory cache.
func (cs *MemoryCacheService) Close() error {
	return nil
}
