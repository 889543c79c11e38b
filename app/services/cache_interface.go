package services

import (
	"context"

	"github.com/tire-advisor/app/models"
)

// CacheStats cache hit statistics.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService caches extraction results keyed by the fingerprint of the
// normalized text. Extraction is deterministic, so entries never go stale;
// backends may still evict or expire them freely.
type ICacheService interface {
	// Get returns the cached spec and whether the key was found.
	Get(ctx context.Context, key string) (*models.ExtractedSpec, bool, error)

	// Set stores an extraction result.
	Set(ctx context.Context, key string, spec *models.ExtractedSpec) error

	// Delete removes one key.
	Delete(ctx context.Context, key string) error

	// Clear removes everything.
	Clear(ctx context.Context) error

	// GetStats returns hit statistics.
	GetStats(ctx context.Context) (*CacheStats, error)

	// Close releases backend connections, if any.
	Close() error
}
