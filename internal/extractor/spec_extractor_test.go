package extractor

import (
	"testing"

	"github.com/tire-advisor/app/models"
	"github.com/tire-advisor/internal/normalizer"
)

func newTestExtractor(t *testing.T) (*SpecExtractor, *normalizer.TextNormalizer) {
	t.Helper()
	dicts, err := normalizer.LoadDictionaries()
	if err != nil {
		t.Fatalf("LoadDictionaries: %v", err)
	}
	return NewSpecExtractor(dicts), normalizer.NewTextNormalizer()
}

func extract(t *testing.T, raw string) *models.ExtractedSpec {
	t.Helper()
	se, tn := newTestExtractor(t)
	return se.Extract(tn.Normalize(raw))
}

func TestExtractSizeVariants(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "Compact", input: "205/55R16"},
		{name: "SpaceBeforeRim", input: "205/55 R16"},
		{name: "SpacedSlash", input: "205 / 55 R 16"},
		{name: "Hyphen", input: "205-55R16"},
		{name: "FullySpaced", input: "205 55 R 16"},
		{name: "FullWidth", input: "２０５/５５Ｒ１６"},
		{name: "Lowercase", input: "205/55r16"},
		{name: "EmbeddedInSentence", input: "タイヤサイズは 205/55R16 です"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spec := extract(t, tc.input)
			if spec.Size != "205/55R16" {
				t.Errorf("size = %q, want 205/55R16", spec.Size)
			}
			if spec.Confidence[models.FieldSize] != 0.95 {
				t.Errorf("size confidence = %v, want 0.95", spec.Confidence[models.FieldSize])
			}
		})
	}
}

func TestExtractSizeImplausible(t *testing.T) {
	// Matches the shape of a size token but fails the plausibility bounds.
	spec := extract(t, "999/99R99")
	if spec.Size != "" {
		t.Errorf("size = %q, want absent", spec.Size)
	}
	if spec.Confidence[models.FieldSize] != 0 {
		t.Errorf("size confidence = %v, want 0", spec.Confidence[models.FieldSize])
	}
}

func TestExtractLoadIndex(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		wantLI   int
		wantConf float64
	}{
		{name: "TrailingSize", input: "205/55R16 91V", wantLI: 91, wantConf: 0.9},
		{name: "TrailingBeatsStandalone", input: "77 205/55R16 95", wantLI: 95, wantConf: 0.9},
		{name: "Standalone", input: "LOAD 95", wantLI: 95, wantConf: 0.7},
		{name: "StandaloneLowerBound", input: "LOAD 60", wantLI: 60, wantConf: 0.7},
		{name: "StandaloneUpperBound", input: "LOAD 120", wantLI: 120, wantConf: 0.7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spec := extract(t, tc.input)
			if spec.LoadIndex == nil {
				t.Fatal("load index absent")
			}
			if *spec.LoadIndex != tc.wantLI {
				t.Errorf("li = %d, want %d", *spec.LoadIndex, tc.wantLI)
			}
			if spec.Confidence[models.FieldLI] != tc.wantConf {
				t.Errorf("li confidence = %v, want %v", spec.Confidence[models.FieldLI], tc.wantConf)
			}
		})
	}
}

func TestExtractLoadIndexOutOfDomain(t *testing.T) {
	for _, input := range []string{"LOAD 59", "LOAD 121", "LOAD 45", "LOAD 999"} {
		t.Run(input, func(t *testing.T) {
			spec := extract(t, input)
			if spec.LoadIndex != nil {
				t.Errorf("li = %d, want absent", *spec.LoadIndex)
			}
		})
	}
}

func TestExtractSpeedRating(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		wantSS   string
		wantConf float64
	}{
		{name: "TrailingLoadIndex", input: "205/55R16 91V", wantSS: "V", wantConf: 0.9},
		{name: "TrailingRare", input: "195/65R15 82Q", wantSS: "Q", wantConf: 0.9},
		{name: "StandaloneCommon", input: "205/55R16 V", wantSS: "V", wantConf: 0.8},
		{name: "StandaloneRare", input: "RATED Q", wantSS: "Q", wantConf: 0.6},
		{name: "StandaloneZR", input: "RATED ZR", wantSS: "ZR", wantConf: 0.6},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spec := extract(t, tc.input)
			if spec.SpeedRating != tc.wantSS {
				t.Errorf("ss = %q, want %q", spec.SpeedRating, tc.wantSS)
			}
			if spec.Confidence[models.FieldSS] != tc.wantConf {
				t.Errorf("ss confidence = %v, want %v", spec.Confidence[models.FieldSS], tc.wantConf)
			}
		})
	}
}

func TestExtractSeason(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		wantSeason models.Season
		wantConf   float64
	}{
		{name: "WinterStudless", input: "STUDLESS タイヤ", wantSeason: models.SeasonWinter, wantConf: 0.9},
		{name: "WinterSnowflake", input: "3PMSF 205/55R16", wantSeason: models.SeasonWinter, wantConf: 0.9},
		{name: "WinterBeatsAllSeason", input: "SNOW ALL SEASON", wantSeason: models.SeasonWinter, wantConf: 0.9},
		{name: "AllSeason", input: "ALL SEASON 205/55R16", wantSeason: models.SeasonAllSeason, wantConf: 0.9},
		{name: "AllSeasonCompact", input: "4SEASON", wantSeason: models.SeasonAllSeason, wantConf: 0.9},
		{name: "SummerKeyword", input: "SUMMER TIRE", wantSeason: models.SeasonSummer, wantConf: 0.8},
		{name: "DefaultGuess", input: "205/55R16 91V", wantSeason: models.SeasonSummer, wantConf: 0.3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spec := extract(t, tc.input)
			if spec.Season != tc.wantSeason {
				t.Errorf("season = %q, want %q", spec.Season, tc.wantSeason)
			}
			if spec.Confidence[models.FieldSeason] != tc.wantConf {
				t.Errorf("season confidence = %v, want %v", spec.Confidence[models.FieldSeason], tc.wantConf)
			}
		})
	}
}

func TestExtractBrandAndPattern(t *testing.T) {
	spec := extract(t, "BRIDGESTONE REGNO GR-XII 205/55R16 91V")

	if spec.Brand != "BRIDGESTONE" {
		t.Errorf("brand = %q, want BRIDGESTONE", spec.Brand)
	}
	if spec.Confidence[models.FieldBrand] != 0.8 {
		t.Errorf("brand confidence = %v, want 0.8", spec.Confidence[models.FieldBrand])
	}
	if spec.Pattern != "REGNO" {
		t.Errorf("pattern = %q, want REGNO", spec.Pattern)
	}
	if spec.Confidence[models.FieldPattern] != 0.7 {
		t.Errorf("pattern confidence = %v, want 0.7", spec.Confidence[models.FieldPattern])
	}
}

func TestExtractBrandFuzzy(t *testing.T) {
	// One-character recognition error: substring match fails, the fuzzy
	// fallback still resolves the brand at reduced confidence.
	spec := extract(t, "BRIDGESTQNE 205/55R16")

	if spec.Brand != "BRIDGESTONE" {
		t.Errorf("brand = %q, want BRIDGESTONE", spec.Brand)
	}
	if spec.Confidence[models.FieldBrand] != 0.5 {
		t.Errorf("brand confidence = %v, want 0.5", spec.Confidence[models.FieldBrand])
	}
}

func TestExtractNeverFails(t *testing.T) {
	// Garbage in, partial spec out: season falls back to the default guess,
	// every other field is simply absent.
	for _, input := range []string{"", "ZZZZZZ", "!!!???", "あいうえお"} {
		t.Run("input_"+input, func(t *testing.T) {
			spec := extract(t, input)
			if spec == nil {
				t.Fatal("Extract returned nil")
			}
			if spec.Size != "" || spec.LoadIndex != nil || spec.SpeedRating != "" {
				t.Errorf("unexpected extraction from %q: %+v", input, spec)
			}
			if spec.Season != models.SeasonSummer || spec.Confidence[models.FieldSeason] != 0.3 {
				t.Errorf("season = %q @ %v, want summer @ 0.3",
					spec.Season, spec.Confidence[models.FieldSeason])
			}
		})
	}
}

func TestSuggestCandidates(t *testing.T) {
	se, _ := newTestExtractor(t)

	t.Run("MissingSize", func(t *testing.T) {
		partial := models.NewExtractedSpec()
		candidates := se.SuggestCandidates(partial)

		if len(candidates) != 3 {
			t.Fatalf("got %d candidates, want 3", len(candidates))
		}
		for _, c := range candidates {
			if c.Size == "" {
				t.Error("size candidate without size")
			}
			if c.Confidence[models.FieldSize] != 0.3 {
				t.Errorf("size candidate confidence = %v, want 0.3", c.Confidence[models.FieldSize])
			}
		}
	})

	t.Run("MissingLoadIndexWithSize", func(t *testing.T) {
		partial := models.NewExtractedSpec()
		partial.Size = "205/55R16"
		partial.Confidence[models.FieldSize] = 0.95
		candidates := se.SuggestCandidates(partial)

		if len(candidates) != 3 {
			t.Fatalf("got %d candidates, want 3", len(candidates))
		}
		for _, c := range candidates {
			if c.LoadIndex == nil {
				t.Fatal("load-index candidate without load index")
			}
			if c.Size != "205/55R16" {
				t.Errorf("candidate lost extracted size: %q", c.Size)
			}
			if c.Confidence[models.FieldLI] != 0.4 {
				t.Errorf("li candidate confidence = %v, want 0.4", c.Confidence[models.FieldLI])
			}
		}
	})

	t.Run("CompleteSpec", func(t *testing.T) {
		li := 91
		partial := models.NewExtractedSpec()
		partial.Size = "205/55R16"
		partial.LoadIndex = &li
		partial.SpeedRating = "V"
		candidates := se.SuggestCandidates(partial)

		if len(candidates) != 0 {
			t.Errorf("got %d candidates for complete spec, want 0", len(candidates))
		}
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		partial := models.NewExtractedSpec()
		se.SuggestCandidates(partial)
		if partial.Size != "" || partial.Confidence[models.FieldSize] != 0 {
			t.Error("SuggestCandidates mutated its input")
		}
	})
}

func TestValidate(t *testing.T) {
	se, _ := newTestExtractor(t)
	li91, li125 := 91, 125

	testCases := []struct {
		name      string
		spec      *models.ExtractedSpec
		wantValid bool
		wantErrs  int
	}{
		{
			name:      "Valid",
			spec:      &models.ExtractedSpec{Size: "205/55R16", LoadIndex: &li91, SpeedRating: "V"},
			wantValid: true,
		},
		{
			name:      "SizeOnly",
			spec:      &models.ExtractedSpec{Size: "205/55R16"},
			wantValid: true,
		},
		{
			name:     "MissingSize",
			spec:     &models.ExtractedSpec{LoadIndex: &li91},
			wantErrs: 1,
		},
		{
			name:     "LoadIndexOutOfRange",
			spec:     &models.ExtractedSpec{Size: "205/55R16", LoadIndex: &li125},
			wantErrs: 1,
		},
		{
			name:     "UnknownSpeedRating",
			spec:     &models.ExtractedSpec{Size: "205/55R16", SpeedRating: "X"},
			wantErrs: 1,
		},
		{
			name:     "Everything",
			spec:     &models.ExtractedSpec{LoadIndex: &li125, SpeedRating: "X"},
			wantErrs: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			report := se.Validate(tc.spec)
			if report.Valid != tc.wantValid {
				t.Errorf("valid = %v, want %v (errors: %v)", report.Valid, tc.wantValid, report.Errors)
			}
			if len(report.Errors) != tc.wantErrs {
				t.Errorf("got %d errors %v, want %d", len(report.Errors), report.Errors, tc.wantErrs)
			}
		})
	}
}
