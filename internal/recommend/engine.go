package recommend

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/tire-advisor/app/models"
)

// maxResults is the truncation limit after ranking.
const maxResults = 3

var reAllSpaces = regexp.MustCompile(`\s+`)

// NormalizeSize absorbs size-code notation differences: upper-case and
// strip all whitespace, so "225/50 R 18" and "225/50R18" compare equal.
// Exact equality on this form is the sole sizing match rule.
func NormalizeSize(s string) string {
	return reAllSpaces.ReplaceAllString(strings.ToUpper(s), "")
}

// RecordSource supplies the catalog; satisfied by *catalog.Store.
type RecordSource interface {
	Records(ctx context.Context) ([]models.TireRecord, error)
}

// Engine selects and ranks replacement candidates for a confirmed query
// spec. All state lives on the instance; there is no package-level cache.
type Engine struct {
	source RecordSource
	logger *zap.Logger
}

// NewEngine creates a recommendation engine over the given catalog source.
func NewEngine(source RecordSource, logger *zap.Logger) *Engine {
	return &Engine{source: source, logger: logger}
}

// Recommend returns the top-ranked, safety-filtered candidates for the
// query. The query must carry a size; load index, speed rating and season
// narrow the result but are optional.
func (e *Engine) Recommend(ctx context.Context, query models.QuerySpec) (*models.RecommendationResult, error) {
	if strings.TrimSpace(query.Size) == "" {
		return nil, models.ErrMissingSize
	}

	records, err := e.source.Records(ctx)
	if err != nil {
		return nil, err
	}

	target := NormalizeSize(query.Size)
	candidates := make([]models.TireRecord, 0)
	for _, rec := range records {
		if NormalizeSize(rec.SizeCode) != target {
			continue
		}
		// Safety floors: a replacement never downgrades load or speed
		// capability below the replaced tire.
		if query.LoadIndex != nil && rec.LoadIndex < *query.LoadIndex {
			continue
		}
		if query.SpeedRating != "" && models.SpeedRank(rec.SpeedRating) < models.SpeedRank(query.SpeedRating) {
			continue
		}
		candidates = append(candidates, rec)
	}

	if query.Season != "" && query.Season != models.SeasonUnknown {
		filtered := candidates[:0]
		for _, rec := range candidates {
			s := rec.Season()
			if s == query.Season || s == models.SeasonAllSeason {
				filtered = append(filtered, rec)
			}
		}
		candidates = filtered
	}

	e.rank(candidates, query.Season)

	totalFound := len(candidates)
	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	items := make([]models.RecommendedItem, 0, len(candidates))
	for _, rec := range candidates {
		items = append(items, toItem(rec))
	}

	e.logger.Debug("recommendation computed",
		zap.String("size", target),
		zap.Int("total_found", totalFound),
		zap.Int("returned", len(items)))

	return &models.RecommendationResult{
		Items:      items,
		TotalFound: totalFound,
		Query:      query,
	}, nil
}

// rank applies the deterministic multi-key comparator. The first unequal
// criterion decides; the final pattern-name key makes the order total for
// distinct names.
func (e *Engine) rank(candidates []models.TireRecord, season models.Season) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := &candidates[i], &candidates[j]

		if ar, br := a.IsRecommended(), b.IsRecommended(); ar != br {
			return ar
		}
		if as, bs := a.StockStatus.Rank(), b.StockStatus.Rank(); as != bs {
			return as > bs
		}
		if season != "" && season != models.SeasonUnknown {
			am, bm := a.Season() == season, b.Season() == season
			if am != bm {
				return am
			}
		}
		if a.QuietScore != b.QuietScore {
			return a.QuietScore > b.QuietScore
		}
		if a.EcoScore != b.EcoScore {
			return a.EcoScore > b.EcoScore
		}
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		return a.Pattern < b.Pattern
	})
}

func toItem(rec models.TireRecord) models.RecommendedItem {
	return models.RecommendedItem{
		Brand:       rec.Brand,
		Pattern:     rec.Pattern,
		Size:        rec.SizeCode,
		LoadIndex:   rec.LoadIndex,
		SpeedRating: rec.SpeedRating,
		Price:       rec.Price,
		Season:      rec.Season(),
		QuietScore:  rec.QuietScore,
		EcoScore:    rec.EcoScore,
		StockStatus: rec.StockStatus,
		SaleInfo:    rec.SaleInfo,
		Recommended: rec.Recommended,
		ProductURL:  rec.ProductURL,
		Summary:     rec.Summary,
	}
}
