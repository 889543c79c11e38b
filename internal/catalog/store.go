package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/tire-advisor/app/models"
)

// Fetcher is the catalog acquisition boundary; satisfied by *Client.
type Fetcher interface {
	Fetch(ctx context.Context) ([]models.TireRecord, error)
}

// Store caches catalog generations with a fixed TTL. A generation is
// replaced wholesale, never mutated in place, so readers always observe
// either the fresh fetch or the most recent complete generation.
type Store struct {
	fetcher Fetcher
	ttl     time.Duration
	logger  *zap.Logger

	mu       sync.RWMutex
	records  []models.TireRecord
	loadedAt time.Time
	loaded   bool

	// Collapses concurrent refreshes of a stale cache into one fetch.
	group singleflight.Group
}

// NewStore creates a Store around the given fetcher.
func NewStore(fetcher Fetcher, ttl time.Duration, logger *zap.Logger) *Store {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Store{fetcher: fetcher, ttl: ttl, logger: logger}
}

// Records returns the current catalog generation, refreshing it when the
// TTL has elapsed. On refresh failure the previous generation is reused
// silently; models.ErrDataSource is returned only when no generation has
// ever been loaded.
func (s *Store) Records(ctx context.Context) ([]models.TireRecord, error) {
	s.mu.RLock()
	if s.loaded && time.Since(s.loadedAt) < s.ttl {
		records := s.records
		s.mu.RUnlock()
		return records, nil
	}
	s.mu.RUnlock()

	result, err, _ := s.group.Do("refresh", func() (interface{}, error) {
		// Another caller may have refreshed while this one queued.
		s.mu.RLock()
		if s.loaded && time.Since(s.loadedAt) < s.ttl {
			records := s.records
			s.mu.RUnlock()
			return records, nil
		}
		s.mu.RUnlock()

		records, err := s.fetcher.Fetch(ctx)
		if err != nil {
			s.mu.RLock()
			stale := s.records
			hasStale := s.loaded
			s.mu.RUnlock()
			if hasStale {
				s.logger.Warn("catalog refresh failed, serving previous generation",
					zap.Error(err))
				return stale, nil
			}
			return nil, fmt.Errorf("%w: %v", models.ErrDataSource, err)
		}

		s.mu.Lock()
		s.records = records
		s.loadedAt = time.Now()
		s.loaded = true
		s.mu.Unlock()
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.TireRecord), nil
}

// Invalidate drops the cached generation, forcing the next read to fetch.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.loaded = false
	s.loadedAt = time.Time{}
}

// Stats reports the cache generation state for health output.
func (s *Store) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"loaded":      s.loaded,
		"records":     len(s.records),
		"loaded_at":   s.loadedAt.Format(time.RFC3339),
		"ttl_seconds": int(s.ttl.Seconds()),
	}
}
