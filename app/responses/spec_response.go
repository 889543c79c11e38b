package responses

import "github.com/tire-advisor/app/models"

// ExtractSpecResponse result of one extraction call.
type ExtractSpecResponse struct {
	Spec             *models.ExtractedSpec `json:"spec"`
	ProcessingTimeMs int64                 `json:"processing_time_ms"`
	CacheHit         bool                  `json:"cache_hit"`
}

// CandidatesResponse completion hints for a partial spec.
type CandidatesResponse struct {
	Candidates []*models.ExtractedSpec `json:"candidates"`
}

// RecommendResponse ranked candidates plus the advisory layer.
type RecommendResponse struct {
	Result           *models.RecommendationResult `json:"result"`
	Safety           []models.SafetyReport        `json:"safety"`
	Advisories       []models.Advisory            `json:"advisories"`
	ProcessingTimeMs int64                        `json:"processing_time_ms"`
}

// ErrorResponse error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthCheckResponse health payload.
type HealthCheckResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Uptime    string                 `json:"uptime"`
	Version   string                 `json:"version"`
	Catalog   map[string]interface{} `json:"catalog"`
	Cache     *CacheStatsPayload     `json:"cache,omitempty"`
}

// CacheStatsPayload cache statistics in the health payload.
type CacheStatsPayload struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}
