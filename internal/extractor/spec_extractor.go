package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"

	"github.com/tire-advisor/app/models"
	"github.com/tire-advisor/internal/normalizer"
)

// Confidence constants per field strategy.
const (
	confSize         = 0.95
	confLITrailing   = 0.9
	confLIStandalone = 0.7
	confSSTrailing   = 0.9
	confSSCommon     = 0.8
	confSSRare       = 0.6
	confSeasonKeyed  = 0.9
	confSeasonSummer = 0.8
	confSeasonGuess  = 0.3
	confBrand        = 0.8
	confPattern      = 0.7
	confFuzzy        = 0.5
	confCandSize     = 0.3
	confCandValue    = 0.4
)

// Speed rating symbols considered common on passenger tires; standalone
// matches of these are trusted more than the rare symbols.
var commonSpeedRatings = map[string]bool{"H": true, "V": true, "W": true, "T": true, "Y": true}

// dictEntry pairs a dictionary name with its precomputed match forms.
type dictEntry struct {
	canonical string
	matchForm string // width-folded, upper-cased, for substring match
	asciiForm string // transliterated, for fuzzy match
}

// SpecExtractor turns normalized recognized text into a partial,
// confidence-scored tire specification. Field strategies are independent
// and never fail: a field that cannot be extracted is simply absent.
type SpecExtractor struct {
	dicts *normalizer.Dictionaries

	// Size pattern variants, tried in declared order, first plausible
	// match wins.
	sizePatterns []*regexp.Regexp

	reSizeWithLI *regexp.Regexp
	reLIToken    *regexp.Regexp
	reLIWithSS   *regexp.Regexp
	reSSToken    *regexp.Regexp

	brandEntries   []dictEntry
	patternEntries []dictEntry
}

// NewSpecExtractor creates a SpecExtractor over the given dictionaries.
func NewSpecExtractor(dicts *normalizer.Dictionaries) *SpecExtractor {
	tn := normalizer.NewTextNormalizer()
	return &SpecExtractor{
		dicts: dicts,
		sizePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(\d{3})/(\d{2})\s*R\s*(\d{2})`),       // base, spaces around rim marker
			regexp.MustCompile(`(\d{3})\s*/\s*(\d{2})\s*R\s*(\d{2})`), // spaces around separator too
			regexp.MustCompile(`(\d{3})\s*-\s*(\d{2})\s*R\s*(\d{2})`), // hyphen separator
			regexp.MustCompile(`(\d{3})\s+(\d{2})\s+R\s+(\d{2})`),     // fully space separated
		},
		reSizeWithLI: regexp.MustCompile(`\d{3}/\d{2}R?\d{2}\s*(\d{2,3})`),
		reLIToken:    regexp.MustCompile(`\b(\d{2,3})\b`),
		// OCR output never yields I or O as speed symbols, they read as 1/0
		reLIWithSS:     regexp.MustCompile(`(\d{2,3})\s*([ABCDEFGHJKLMNPQRSTUVWXYZ]{1,2})\b`),
		reSSToken:      regexp.MustCompile(`\b([ABCDEFGHJKLMNPQRSTUVWXYZ]{1,2})\b`),
		brandEntries:   buildEntries(dicts.Brands, tn),
		patternEntries: buildEntries(dicts.Patterns, tn),
	}
}

func buildEntries(names []string, tn *normalizer.TextNormalizer) []dictEntry {
	entries := make([]dictEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, dictEntry{
			canonical: name,
			matchForm: tn.Normalize(name),
			asciiForm: normalizer.ASCIIFold(name),
		})
	}
	return entries
}

// Extract applies every field strategy to the normalized text. It has no
// error channel: callers check per-field presence and confidence.
func (se *SpecExtractor) Extract(text string) *models.ExtractedSpec {
	spec := models.NewExtractedSpec()

	if size, ok := se.extractSize(text); ok {
		spec.Size = size
		spec.Confidence[models.FieldSize] = confSize
	}

	if li, conf, ok := se.extractLoadIndex(text); ok {
		spec.LoadIndex = &li
		spec.Confidence[models.FieldLI] = conf
	}

	if ss, conf, ok := se.extractSpeedRating(text); ok {
		spec.SpeedRating = ss
		spec.Confidence[models.FieldSS] = conf
	}

	// Season always yields a value; the no-keyword case is a deliberate
	// low-confidence summer guess, not an absence.
	season, conf := se.extractSeason(text)
	spec.Season = season
	spec.Confidence[models.FieldSeason] = conf

	if brand, conf, ok := matchDictionary(text, se.brandEntries, confBrand); ok {
		spec.Brand = brand
		spec.Confidence[models.FieldBrand] = conf
	}

	if pattern, conf, ok := matchDictionary(text, se.patternEntries, confPattern); ok {
		spec.Pattern = pattern
		spec.Confidence[models.FieldPattern] = conf
	}

	return spec
}

// extractSize tries the pattern variants in order and returns the first
// match whose numeric parts pass the plausibility bounds.
func (se *SpecExtractor) extractSize(text string) (string, bool) {
	for _, re := range se.sizePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			width, _ := strconv.Atoi(m[1])
			aspect, _ := strconv.Atoi(m[2])
			rim, _ := strconv.Atoi(m[3])
			if width >= 125 && width <= 355 && aspect >= 25 && aspect <= 85 && rim >= 10 && rim <= 24 {
				return fmt.Sprintf("%d/%dR%d", width, aspect, rim), true
			}
		}
	}
	return "", false
}

// extractLoadIndex is two-phase: numbers trailing a size token win over
// standalone 2-3 digit tokens anywhere in the text.
func (se *SpecExtractor) extractLoadIndex(text string) (int, float64, bool) {
	for _, m := range se.reSizeWithLI.FindAllStringSubmatch(text, -1) {
		li, _ := strconv.Atoi(m[1])
		if models.IsValidLoadIndex(li) {
			return li, confLITrailing, true
		}
	}

	for _, m := range se.reLIToken.FindAllStringSubmatch(text, -1) {
		li, _ := strconv.Atoi(m[1])
		if models.IsValidLoadIndex(li) {
			return li, confLIStandalone, true
		}
	}

	return 0, 0, false
}

// extractSpeedRating mirrors the load-index strategy: a symbol trailing a
// valid load index wins, then the first standalone valid symbol.
func (se *SpecExtractor) extractSpeedRating(text string) (string, float64, bool) {
	for _, m := range se.reLIWithSS.FindAllStringSubmatch(text, -1) {
		li, _ := strconv.Atoi(m[1])
		ss := m[2]
		if models.IsValidLoadIndex(li) && models.IsValidSpeedRating(ss) {
			return ss, confSSTrailing, true
		}
	}

	for _, m := range se.reSSToken.FindAllStringSubmatch(text, -1) {
		ss := m[1]
		if models.IsValidSpeedRating(ss) {
			if commonSpeedRatings[ss] {
				return ss, confSSCommon, true
			}
			return ss, confSSRare, true
		}
	}

	return "", 0, false
}

// extractSeason checks keyword lists in priority order: winter markings
// first, then all-season, then an explicit summer keyword. Without any
// keyword the tire is assumed to be a summer tire at low confidence.
func (se *SpecExtractor) extractSeason(text string) (models.Season, float64) {
	if containsAny(text, se.dicts.Seasons.Winter) {
		return models.SeasonWinter, confSeasonKeyed
	}
	if containsAny(text, se.dicts.Seasons.AllSeason) {
		return models.SeasonAllSeason, confSeasonKeyed
	}
	if containsAny(text, se.dicts.Seasons.Summer) {
		return models.SeasonSummer, confSeasonSummer
	}
	return models.SeasonSummer, confSeasonGuess
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// matchDictionary finds the first dictionary entry contained in the text,
// in list order. When no entry matches exactly, single-word entries are
// retried fuzzily against the text tokens to tolerate recognition noise.
func matchDictionary(text string, entries []dictEntry, exactConf float64) (string, float64, bool) {
	for _, e := range entries {
		if strings.Contains(text, e.matchForm) {
			return e.canonical, exactConf, true
		}
	}

	folded := normalizer.ASCIIFold(text)
	for _, token := range strings.Fields(folded) {
		if len(token) < 4 {
			continue
		}
		for _, e := range entries {
			if strings.ContainsRune(e.asciiForm, ' ') {
				continue
			}
			if smetrics.JaroWinkler(token, e.asciiForm, 0.7, 4) >= 0.92 &&
				levenshtein.ComputeDistance(token, e.asciiForm) <= 1 {
				return e.canonical, confFuzzy, true
			}
		}
	}

	return "", 0, false
}

// SuggestCandidates proposes up to 3 completed variants of a partial spec
// from the common-value lists, as manual-correction hints. It never
// overrides a field that was actually extracted.
func (se *SpecExtractor) SuggestCandidates(partial *models.ExtractedSpec) []*models.ExtractedSpec {
	var candidates []*models.ExtractedSpec

	if partial.Size == "" {
		for _, size := range se.dicts.Common.Sizes {
			c := partial.Clone()
			c.Size = size
			c.Confidence[models.FieldSize] = confCandSize
			candidates = append(candidates, c)
		}
	}

	if partial.LoadIndex == nil && partial.Size != "" {
		for _, li := range se.dicts.Common.LoadIndexes {
			li := li
			c := partial.Clone()
			c.LoadIndex = &li
			c.Confidence[models.FieldLI] = confCandValue
			candidates = append(candidates, c)
		}
	}

	if partial.SpeedRating == "" {
		for _, ss := range se.dicts.Common.SpeedRatings {
			c := partial.Clone()
			c.SpeedRating = ss
			c.Confidence[models.FieldSS] = confCandValue
			candidates = append(candidates, c)
		}
	}

	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	return candidates
}

// Validate checks a (possibly user-edited) spec. Size is required; load
// index and speed rating are checked only when present. Validation never
// fails hard, the report names each invalid field.
func (se *SpecExtractor) Validate(spec *models.ExtractedSpec) models.ValidationReport {
	errs := []string{}

	if spec.Size == "" {
		errs = append(errs, "tire size is required")
	}
	if spec.LoadIndex != nil && !models.IsValidLoadIndex(*spec.LoadIndex) {
		errs = append(errs, "load index outside valid range 60-120")
	}
	if spec.SpeedRating != "" && !models.IsValidSpeedRating(spec.SpeedRating) {
		errs = append(errs, "invalid speed rating symbol")
	}

	return models.ValidationReport{Valid: len(errs) == 0, Errors: errs}
}
