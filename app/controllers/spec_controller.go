package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tire-advisor/app/requests"
	"github.com/tire-advisor/app/responses"
	"github.com/tire-advisor/app/services"
	"github.com/tire-advisor/internal/catalog"
)

// SpecController handles extraction, validation and candidate requests.
type SpecController struct {
	specService  *services.SpecService
	cacheService services.ICacheService
	catalogStore *catalog.Store
	logger       *zap.Logger
}

// NewSpecController creates a SpecController.
func NewSpecController(specService *services.SpecService, cacheService services.ICacheService, catalogStore *catalog.Store, logger *zap.Logger) *SpecController {
	return &SpecController{
		specService:  specService,
		cacheService: cacheService,
		catalogStore: catalogStore,
		logger:       logger,
	}
}

// Extract parses one recognized-text sample into a confidence-scored spec.
func (sc *SpecController) Extract(c *gin.Context) {
	var req requests.ExtractSpecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "invalid request: " + err.Error(),
		})
		return
	}

	startTime := time.Now()
	fingerprint := sc.specService.Fingerprint(req.Text)

	if req.Options.UseCache {
		if cached, found, err := sc.cacheService.Get(c.Request.Context(), fingerprint); err == nil && found {
			c.JSON(http.StatusOK, responses.ExtractSpecResponse{
				Spec:             cached,
				ProcessingTimeMs: time.Since(startTime).Milliseconds(),
				CacheHit:         true,
			})
			return
		}
	}

	spec := sc.specService.Extract(req.Text)

	if req.Options.UseCache {
		if err := sc.cacheService.Set(c.Request.Context(), fingerprint, spec); err != nil {
			sc.logger.Warn("cache set failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, responses.ExtractSpecResponse{
		Spec:             spec,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		CacheHit:         false,
	})
}

// Validate checks a possibly user-edited spec and reports invalid fields.
func (sc *SpecController) Validate(c *gin.Context) {
	var req requests.ValidateSpecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "invalid request: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, sc.specService.Validate(&req.Spec))
}

// Candidates proposes completions for fields extraction could not find.
func (sc *SpecController) Candidates(c *gin.Context) {
	var req requests.CandidatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "invalid request: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.CandidatesResponse{
		Candidates: sc.specService.Candidates(&req.Spec),
	})
}

// HealthCheck reports service, catalog cache and result cache status.
func (sc *SpecController) HealthCheck(c *gin.Context) {
	resp := responses.HealthCheckResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(sc.specService.StartTime()).String(),
		Version:   "1.0.0",
		Catalog:   sc.catalogStore.Stats(),
	}

	if stats, err := sc.cacheService.GetStats(c.Request.Context()); err == nil {
		resp.Cache = &responses.CacheStatsPayload{
			HitRate:    stats.HitRate,
			TotalHits:  stats.TotalHits,
			TotalMiss:  stats.TotalMiss,
			TotalItems: stats.TotalItems,
		}
	}

	c.JSON(http.StatusOK, resp)
}
