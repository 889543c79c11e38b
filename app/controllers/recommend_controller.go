package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tire-advisor/app/models"
	"github.com/tire-advisor/app/requests"
	"github.com/tire-advisor/app/responses"
	"github.com/tire-advisor/app/services"
)

// RecommendController handles recommendation requests.
type RecommendController struct {
	recommendService *services.RecommendService
	logger           *zap.Logger
}

// NewRecommendController creates a RecommendController.
func NewRecommendController(recommendService *services.RecommendService, logger *zap.Logger) *RecommendController {
	return &RecommendController{
		recommendService: recommendService,
		logger:           logger,
	}
}

// Recommend returns ranked, safety-filtered replacement candidates.
func (rc *RecommendController) Recommend(c *gin.Context) {
	var req requests.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "invalid request: " + err.Error(),
		})
		return
	}

	startTime := time.Now()
	query := req.ToQuery()

	result, advisories, err := rc.recommendService.Recommend(c.Request.Context(), query)
	if err != nil {
		rc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.RecommendResponse{
		Result:           result,
		Safety:           rc.recommendService.SafetyReports(query, result),
		Advisories:       advisories,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// MockRecommend serves the fixed demo query, the fallback path the UI
// takes when recognition fails outright.
func (rc *RecommendController) MockRecommend(c *gin.Context) {
	startTime := time.Now()

	result, advisories, err := rc.recommendService.MockRecommend(c.Request.Context())
	if err != nil {
		rc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.RecommendResponse{
		Result:           result,
		Safety:           rc.recommendService.SafetyReports(result.Query, result),
		Advisories:       advisories,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// respondError maps the engine's typed failures onto HTTP statuses so the
// presentation layer can choose recovery.
func (rc *RecommendController) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "VALIDATION_ERROR",
			Message: err.Error(),
		})
	case errors.Is(err, models.ErrDataSource):
		c.JSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Error:   "DATA_SOURCE_ERROR",
			Message: err.Error(),
		})
	default:
		rc.logger.Error("recommendation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "INTERNAL_ERROR",
			Message: err.Error(),
		})
	}
}
