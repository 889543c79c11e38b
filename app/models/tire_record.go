package models

import "strings"

// StockStatus availability level of a catalog row.
type StockStatus string

const (
	StockHigh   StockStatus = "high"
	StockMedium StockStatus = "medium"
	StockLow    StockStatus = "low"
)

// Rank maps stock status to an ordinal for ranking, higher is better.
func (s StockStatus) Rank() int {
	switch s {
	case StockHigh:
		return 3
	case StockMedium:
		return 2
	case StockLow:
		return 1
	}
	return 0
}

// TireRecord is one catalog entry. Records are owned by the catalog store
// and immutable within a cache generation; defaults for missing columns are
// applied once at row construction, never at read time.
type TireRecord struct {
	Brand       string      `json:"brand"`
	Pattern     string      `json:"pattern"`
	SizeCode    string      `json:"size_code"` // as published, not pre-normalized
	LoadIndex   int         `json:"li"`
	SpeedRating string      `json:"ss"`
	Price       int         `json:"price"`
	StockStatus StockStatus `json:"stock_status"`
	SaleInfo    string      `json:"sale_info"`
	Recommended string      `json:"recommended"`
	ProductURL  string      `json:"product_url"`
	Summary     string      `json:"summary"`
	Tags        string      `json:"tags"`
	QuietScore  int         `json:"quiet_score"`
	EcoScore    int         `json:"eco_score"`
}

// IsRecommended reports whether the row carries the curated promotion flag.
func (r *TireRecord) IsRecommended() bool {
	return strings.EqualFold(strings.TrimSpace(r.Recommended), "true")
}

// Season derives the seasonal classification from the free-text feature
// tags. Rows without a winter or all-season marking count as summer.
func (r *TireRecord) Season() Season {
	tags := strings.ToLower(r.Tags)
	if strings.Contains(tags, "winter") || strings.Contains(tags, "snow") || strings.Contains(tags, "ice") {
		return SeasonWinter
	}
	if strings.Contains(tags, "all") || strings.Contains(tags, "4season") {
		return SeasonAllSeason
	}
	return SeasonSummer
}
