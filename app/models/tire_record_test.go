package models

import "testing"

func TestSpeedRank(t *testing.T) {
	testCases := []struct {
		ss   string
		rank int
	}{
		{"L", 1},
		{"T", 8},
		{"H", 10},
		{"V", 11},
		{"W", 12},
		{"ZR", 15},
		{"X", 0},
		{"", 0},
	}

	for _, tc := range testCases {
		if got := SpeedRank(tc.ss); got != tc.rank {
			t.Errorf("SpeedRank(%q) = %d, want %d", tc.ss, got, tc.rank)
		}
	}

	if !IsValidSpeedRating("ZR") || IsValidSpeedRating("X") {
		t.Error("speed rating validity mismatch")
	}
}

func TestStockStatusRank(t *testing.T) {
	if StockHigh.Rank() <= StockMedium.Rank() || StockMedium.Rank() <= StockLow.Rank() {
		t.Error("stock ranks not strictly ordered")
	}
	if StockStatus("unknown").Rank() != 0 {
		t.Error("unknown stock status should rank 0")
	}
}

func TestTireRecordSeason(t *testing.T) {
	testCases := []struct {
		tags string
		want Season
	}{
		{"winter studless", SeasonWinter},
		{"SNOW performance", SeasonWinter},
		{"ice grip", SeasonWinter},
		{"all season touring", SeasonAllSeason},
		{"4season", SeasonAllSeason},
		{"eco comfort", SeasonSummer},
		{"", SeasonSummer},
	}

	for _, tc := range testCases {
		r := TireRecord{Tags: tc.tags}
		if got := r.Season(); got != tc.want {
			t.Errorf("Season(tags=%q) = %q, want %q", tc.tags, got, tc.want)
		}
	}
}

func TestIsRecommended(t *testing.T) {
	testCases := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{" true ", true},
		{"false", false},
		{"", false},
		{"yes", false},
	}

	for _, tc := range testCases {
		r := TireRecord{Recommended: tc.value}
		if got := r.IsRecommended(); got != tc.want {
			t.Errorf("IsRecommended(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestExtractedSpecClone(t *testing.T) {
	li := 91
	spec := NewExtractedSpec()
	spec.Size = "205/55R16"
	spec.LoadIndex = &li
	spec.Confidence[FieldSize] = 0.95

	clone := spec.Clone()
	*clone.LoadIndex = 94
	clone.Confidence[FieldSize] = 0.3

	if *spec.LoadIndex != 91 {
		t.Error("clone shares the load index pointer")
	}
	if spec.Confidence[FieldSize] != 0.95 {
		t.Error("clone shares the confidence map")
	}
}
