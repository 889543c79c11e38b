package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tire-advisor/app/models"
)

// recordDefaults are applied once, at row construction, for columns the
// feed omits. Never consulted at read time.
var recordDefaults = struct {
	LoadIndex   int
	SpeedRating string
	Price       int
	StockStatus models.StockStatus
	QuietScore  int
	EcoScore    int
}{
	LoadIndex:   91,
	SpeedRating: "V",
	Price:       12000,
	StockStatus: models.StockHigh,
	QuietScore:  3,
	EcoScore:    3,
}

// columnAliases maps every recognized header name (the feed is published
// with either Japanese or English headers) to an internal column key.
var columnAliases = map[string]string{
	"ブランド":     "brand",
	"brand":    "brand",
	"モデル名":     "pattern",
	"pattern":  "pattern",
	"タイヤサイズ":   "size_code",
	"size_code": "size_code",
	"荷重指数(LI)": "li",
	"li":       "li",
	"速度記号(SS)": "ss",
	"ss":       "ss",
	"商品説明":     "summary",
	"summary":  "summary",
	"商品ページURL": "product_url",
	"product_url": "product_url",
	"特徴タグ":     "tags",
	"tags":     "tags",
	"価格":       "price",
	"price":    "price",
	"在庫":       "stock_status",
	"stock_status": "stock_status",
	"セール":      "sale_info",
	"sale_info": "sale_info",
	"オススメ":     "recommended",
	"recommended": "recommended",
	"静粛性":      "quiet_score",
	"quiet_score": "quiet_score",
	"低燃費":      "eco_score",
	"eco_score": "eco_score",
}

// ClientConfig configures the catalog feed client.
type ClientConfig struct {
	FeedURL string
	Timeout time.Duration
	// Feed host quota; the published sheet throttles aggressive pollers.
	RateLimit rate.Limit
	Burst     int
}

// Client fetches and decodes the delimited catalog feed.
type Client struct {
	httpClient  *http.Client
	feedURL     string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a catalog feed client with a bounded request timeout.
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = rate.Limit(1)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		feedURL:     cfg.FeedURL,
		rateLimiter: rate.NewLimiter(cfg.RateLimit, cfg.Burst),
		logger:      logger,
	}
}

// Fetch downloads the feed and decodes it into catalog records. Transient
// failures are retried with backoff; a timeout counts as a fetch failure.
func (c *Client) Fetch(ctx context.Context) ([]models.TireRecord, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		records, err := c.fetchOnce(ctx)
		if err == nil {
			return records, nil
		}
		lastErr = err
		c.logger.Warn("catalog fetch failed",
			zap.Int("attempt", attempt),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
		}
	}
	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context) ([]models.TireRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "tire-advisor/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog feed status %d", resp.StatusCode)
	}

	records, err := decodeFeed(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode catalog feed: %w", err)
	}

	c.logger.Info("catalog feed loaded", zap.Int("records", len(records)))
	return records, nil
}

// decodeFeed reads the CSV feed. The first row is the header; unrecognized
// columns are ignored and missing ones fall back to recordDefaults.
func decodeFeed(r io.Reader) ([]models.TireRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int)
	for i, name := range header {
		key := strings.TrimSpace(name)
		if col, ok := columnAliases[key]; ok {
			columns[col] = i
		} else if col, ok := columnAliases[strings.ToLower(key)]; ok {
			columns[col] = i
		}
	}

	var records []models.TireRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isEmptyRow(row) {
			continue
		}
		records = append(records, buildRecord(row, columns))
	}
	return records, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func buildRecord(row []string, columns map[string]int) models.TireRecord {
	cell := func(col string) string {
		i, ok := columns[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	return models.TireRecord{
		Brand:       cell("brand"),
		Pattern:     cell("pattern"),
		SizeCode:    cell("size_code"),
		LoadIndex:   intCell(cell("li"), recordDefaults.LoadIndex),
		SpeedRating: stringCell(cell("ss"), recordDefaults.SpeedRating),
		Price:       intCell(cell("price"), recordDefaults.Price),
		StockStatus: stockCell(cell("stock_status")),
		SaleInfo:    cell("sale_info"),
		Recommended: cell("recommended"),
		ProductURL:  cell("product_url"),
		Summary:     cell("summary"),
		Tags:        cell("tags"),
		QuietScore:  intCell(cell("quiet_score"), recordDefaults.QuietScore),
		EcoScore:    intCell(cell("eco_score"), recordDefaults.EcoScore),
	}
}

func intCell(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func stringCell(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func stockCell(s string) models.StockStatus {
	switch models.StockStatus(strings.ToLower(s)) {
	case models.StockHigh, models.StockMedium, models.StockLow:
		return models.StockStatus(strings.ToLower(s))
	}
	return recordDefaults.StockStatus
}
