package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tire-advisor/app/models"
	"github.com/tire-advisor/internal/recommend"
)

// RecommendService wraps the recommendation engine and attaches the
// advisory layer (seasonal suitability, per-item safety explanations).
type RecommendService struct {
	engine *recommend.Engine
	logger *zap.Logger
	now    func() time.Time
}

// NewRecommendService creates a RecommendService.
func NewRecommendService(engine *recommend.Engine, logger *zap.Logger) *RecommendService {
	return &RecommendService{
		engine: engine,
		logger: logger,
		now:    time.Now,
	}
}

// Recommend runs the engine and collects seasonal advisories for the
// requested season. Advisories are informational and never block.
func (rs *RecommendService) Recommend(ctx context.Context, query models.QuerySpec) (*models.RecommendationResult, []models.Advisory, error) {
	result, err := rs.engine.Recommend(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	advisories := []models.Advisory{}
	if query.Season != "" && query.Season != models.SeasonUnknown {
		advisories = recommend.CheckSeasonalSuitability(query.Season, int(rs.now().Month()))
	}

	rs.logger.Info("recommendation served",
		zap.String("size", query.Size),
		zap.Int("total_found", result.TotalFound),
		zap.Int("advisories", len(advisories)))

	return result, advisories, nil
}

// MockRecommend serves the demo fallback used when recognition fails: a
// fixed common query against the live catalog.
func (rs *RecommendService) MockRecommend(ctx context.Context) (*models.RecommendationResult, []models.Advisory, error) {
	li := 91
	return rs.Recommend(ctx, models.QuerySpec{
		Size:        "205/55R16",
		LoadIndex:   &li,
		SpeedRating: "V",
		Season:      models.SeasonSummer,
	})
}

// ValidateSafety exposes the engine's advisory safety check.
func (rs *RecommendService) ValidateSafety(query models.QuerySpec, candidate models.TireRecord) models.SafetyReport {
	return rs.engine.ValidateSafety(query, candidate)
}

// SafetyReports explains, item by item, why each returned candidate is
// safe relative to the query. Mirrors the order of result.Items.
func (rs *RecommendService) SafetyReports(query models.QuerySpec, result *models.RecommendationResult) []models.SafetyReport {
	reports := make([]models.SafetyReport, 0, len(result.Items))
	for _, item := range result.Items {
		reports = append(reports, rs.engine.ValidateSafety(query, models.TireRecord{
			LoadIndex:   item.LoadIndex,
			SpeedRating: item.SpeedRating,
		}))
	}
	return reports
}
