package models

// Season classification of a tire.
type Season string

const (
	SeasonSummer    Season = "summer"
	SeasonWinter    Season = "winter"
	SeasonAllSeason Season = "all_season"
	SeasonUnknown   Season = "unknown"
)

// Valid load index domain for passenger tires.
const (
	MinLoadIndex = 60
	MaxLoadIndex = 120
)

// speedRank orders speed rating symbols by increasing maximum rated speed.
var speedRank = map[string]int{
	"L": 1, "M": 2, "N": 3, "P": 4, "Q": 5, "R": 6, "S": 7, "T": 8,
	"U": 9, "H": 10, "V": 11, "W": 12, "Y": 13, "Z": 14, "ZR": 15,
}

// SpeedRank returns the ordinal of a speed rating symbol, 0 for unknown symbols.
func SpeedRank(ss string) int {
	return speedRank[ss]
}

// IsValidSpeedRating reports whether ss is a known speed rating symbol.
func IsValidSpeedRating(ss string) bool {
	_, ok := speedRank[ss]
	return ok
}

// IsValidLoadIndex reports whether li lies in the valid passenger-tire domain.
func IsValidLoadIndex(li int) bool {
	return li >= MinLoadIndex && li <= MaxLoadIndex
}

// Confidence field names.
const (
	FieldSize    = "size"
	FieldLI      = "li"
	FieldSS      = "ss"
	FieldSeason  = "season"
	FieldBrand   = "brand"
	FieldPattern = "pattern"
)

// FieldConfidence maps extracted field names to a [0,1] reliability estimate.
// Absent fields map to 0.
type FieldConfidence map[string]float64

// ExtractedSpec is the result of parsing one recognized-text sample.
// A confidence above 0 implies the field is present, except season, which
// always carries a low-confidence default guess when no keyword matched.
type ExtractedSpec struct {
	Size        string          `json:"size,omitempty"`    // canonical WWW/AARnn
	LoadIndex   *int            `json:"li,omitempty"`
	SpeedRating string          `json:"ss,omitempty"`
	Season      Season          `json:"season,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Pattern     string          `json:"pattern,omitempty"`
	Confidence  FieldConfidence `json:"confidence"`
}

// NewExtractedSpec returns an empty spec with all confidences at zero.
func NewExtractedSpec() *ExtractedSpec {
	return &ExtractedSpec{
		Confidence: FieldConfidence{
			FieldSize:    0,
			FieldLI:      0,
			FieldSS:      0,
			FieldSeason:  0,
			FieldBrand:   0,
			FieldPattern: 0,
		},
	}
}

// Clone returns a deep copy, used when generating correction candidates.
func (s *ExtractedSpec) Clone() *ExtractedSpec {
	out := *s
	if s.LoadIndex != nil {
		li := *s.LoadIndex
		out.LoadIndex = &li
	}
	out.Confidence = make(FieldConfidence, len(s.Confidence))
	for k, v := range s.Confidence {
		out.Confidence[k] = v
	}
	return &out
}

// QuerySpec is the user-confirmed specification handed to the
// recommendation engine. Size is required; the rest narrow the search.
type QuerySpec struct {
	Size        string `json:"size" binding:"required"`
	LoadIndex   *int   `json:"li,omitempty"`
	SpeedRating string `json:"ss,omitempty"`
	Season      Season `json:"season,omitempty"`
}

// ValidationReport is the non-throwing result of spec validation.
type ValidationReport struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
