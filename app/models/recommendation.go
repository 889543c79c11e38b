package models

// RecommendedItem is the view of a catalog record returned to the caller.
type RecommendedItem struct {
	Brand       string      `json:"brand"`
	Pattern     string      `json:"pattern"`
	Size        string      `json:"size"`
	LoadIndex   int         `json:"li"`
	SpeedRating string      `json:"ss"`
	Price       int         `json:"price"`
	Season      Season      `json:"season"`
	QuietScore  int         `json:"quiet_score"`
	EcoScore    int         `json:"eco_score"`
	StockStatus StockStatus `json:"stock_status"`
	SaleInfo    string      `json:"sale_info,omitempty"`
	Recommended string      `json:"recommended,omitempty"`
	ProductURL  string      `json:"product_url,omitempty"`
	Summary     string      `json:"summary,omitempty"`
}

// RecommendationResult is the ranked, safety-filtered answer for one query.
type RecommendationResult struct {
	Items      []RecommendedItem `json:"items"`       // at most 3, ranked
	TotalFound int               `json:"total_found"` // candidates before truncation
	Query      QuerySpec         `json:"user_specs"`  // echoed input, unchanged
}

// Safety warning types.
const (
	WarningLIDowngrade = "li_downgrade"
	WarningSSDowngrade = "ss_downgrade"
)

// SafetyWarning explains one way a candidate would downgrade the replaced tire.
type SafetyWarning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SafetyReport is the advisory result of re-checking a single candidate
// against the query. The hard filter already guarantees returned candidates
// are safe; this exists to explain why.
type SafetyReport struct {
	Safe     bool            `json:"safe"`
	Warnings []SafetyWarning `json:"warnings"`
}

// Advisory types.
const (
	AdvisorySeasonalWarning = "seasonal_warning"
	AdvisorySeasonalInfo    = "seasonal_info"
)

// Advisory is an informational, non-blocking note attached to a result.
type Advisory struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
