package services

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap"

	"github.com/tire-advisor/app/models"
	"github.com/tire-advisor/internal/extractor"
	"github.com/tire-advisor/internal/normalizer"
)

// SpecService orchestrates normalization and extraction for the HTTP
// layer. Extraction itself has no error channel; callers inspect per-field
// confidence instead of catching failures.
type SpecService struct {
	normalizer *normalizer.TextNormalizer
	extractor  *extractor.SpecExtractor
	logger     *zap.Logger
	startTime  time.Time
}

// NewSpecService creates a SpecService.
func NewSpecService(tn *normalizer.TextNormalizer, se *extractor.SpecExtractor, logger *zap.Logger) *SpecService {
	return &SpecService{
		normalizer: tn,
		extractor:  se,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// Extract normalizes the recognized text and runs every field strategy.
func (ss *SpecService) Extract(rawText string) *models.ExtractedSpec {
	normalized := ss.normalizer.Normalize(rawText)
	spec := ss.extractor.Extract(normalized)

	ss.logger.Debug("spec extracted",
		zap.String("normalized", normalized),
		zap.String("size", spec.Size),
		zap.Float64("size_confidence", spec.Confidence[models.FieldSize]))

	return spec
}

// Fingerprint derives the cache key for a text sample. Keyed on the
// normalized form so spacing and width variants share one entry.
func (ss *SpecService) Fingerprint(rawText string) string {
	sum := sha256.Sum256([]byte(ss.normalizer.Normalize(rawText)))
	return hex.EncodeToString(sum[:])
}

// Candidates proposes completions for fields the extractor could not find.
func (ss *SpecService) Candidates(spec *models.ExtractedSpec) []*models.ExtractedSpec {
	return ss.extractor.SuggestCandidates(spec)
}

// Validate checks a possibly user-edited spec.
func (ss *SpecService) Validate(spec *models.ExtractedSpec) models.ValidationReport {
	return ss.extractor.Validate(spec)
}

// StartTime returns the service start time for health output.
func (ss *SpecService) StartTime() time.Time {
	return ss.startTime
}
