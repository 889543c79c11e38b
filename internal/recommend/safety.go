package recommend

import (
	"fmt"

	"github.com/tire-advisor/app/models"
)

// ValidateSafety re-checks a single candidate against the query and
// explains any load-index or speed-rating downgrade. The hard filter in
// Recommend already guarantees returned candidates pass; this advisory
// check exists separately so the caller can show why a candidate is safe.
func (e *Engine) ValidateSafety(query models.QuerySpec, candidate models.TireRecord) models.SafetyReport {
	warnings := []models.SafetyWarning{}

	if query.LoadIndex != nil && candidate.LoadIndex < *query.LoadIndex {
		warnings = append(warnings, models.SafetyWarning{
			Type:    models.WarningLIDowngrade,
			Message: fmt.Sprintf("load index downgrade (%d → %d)", *query.LoadIndex, candidate.LoadIndex),
		})
	}

	if query.SpeedRating != "" && models.SpeedRank(candidate.SpeedRating) < models.SpeedRank(query.SpeedRating) {
		warnings = append(warnings, models.SafetyWarning{
			Type:    models.WarningSSDowngrade,
			Message: fmt.Sprintf("speed rating downgrade (%s → %s)", query.SpeedRating, candidate.SpeedRating),
		})
	}

	return models.SafetyReport{Safe: len(warnings) == 0, Warnings: warnings}
}

// CheckSeasonalSuitability emits informational advisories when the
// requested season does not suit the current month: summer tires during
// months 10-3, winter tires during months 4-9. Advisories never block a
// recommendation.
func CheckSeasonalSuitability(season models.Season, currentMonth int) []models.Advisory {
	advisories := []models.Advisory{}

	if season == models.SeasonSummer && (currentMonth >= 10 || currentMonth <= 3) {
		advisories = append(advisories, models.Advisory{
			Type:    models.AdvisorySeasonalWarning,
			Message: "winter period: consider studless or all-season tires",
		})
	}

	if season == models.SeasonWinter && currentMonth >= 4 && currentMonth <= 9 {
		advisories = append(advisories, models.Advisory{
			Type:    models.AdvisorySeasonalInfo,
			Message: "summer period: consider switching to summer tires",
		})
	}

	return advisories
}
