package stockdash

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/stockdash/indexes"
)

// ErrNotFound is matched by errors of requests answered with a 404.
var ErrNotFound = errors.New("not found")

// Client is a typed client of the stock dashboard backend.
type Client struct {
	BaseURL string // e.g. "http://localhost:8000", without the /api suffix
	HTTP    *http.Client
}

// NewClient returns a client of the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: new(http.Client)}
}

// WithDailyCache makes the client cache GET responses on disk for the day.
func (c *Client) WithDailyCache(dir string) *Client {
	c.HTTP.Transport = DailyCache(c.HTTP.Transport, dir)
	return c
}

func (c *Client) url(path string, query url.Values) string {
	addr := c.BaseURL + path
	if len(query) > 0 {
		addr += "?" + query.Encode()
	}
	return addr
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	body, err := wget(ctx, c.HTTP, c.url(path, query))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("cannot decode %s response: %w", path, err)
	}
	return nil
}

// Ticker is the price history of a ticker.
type Ticker struct {
	Dates   []string          `json:"dates"`
	Candles []float64         `json:"candles"`
	Delta   float64           `json:"delta"` // change ratio over the period
	SMAs    map[int][]float64 `json:"smas"`  // moving averages by window size
	Query   map[string]any    `json:"query"`
}

// Ticker returns the history of ticker over period ("ytd", "1mo", ...).
// An empty interval lets the backend pick one.
func (c *Client) Ticker(ctx context.Context, ticker, period, interval string) (*Ticker, error) {
	q := url.Values{"ticker_name": {ticker}, "period": {period}}
	if interval != "" {
		q.Set("interval", interval)
	}
	var t Ticker
	if err := c.getJSON(ctx, "/api/ticker/", q, &t); err != nil {
		return nil, fmt.Errorf("ticker %s: %w", ticker, err)
	}
	if len(t.Dates) != len(t.Candles) {
		return nil, fmt.Errorf("ticker %s: %d dates for %d candles", ticker, len(t.Dates), len(t.Candles))
	}
	return &t, nil
}

// PriceTargets are the analyst price targets of a ticker.
type PriceTargets struct {
	Current *float64 `json:"current"`
	High    *float64 `json:"high"`
	Low     *float64 `json:"low"`
	Mean    *float64 `json:"mean"`
	Median  *float64 `json:"median"`
}

// MainKPIs are the ratios shown first on the details page.
type MainKPIs struct {
	RatioPE           *float64 `json:"ratioPE"`
	FreeCashflowYield *float64 `json:"freeCashflowYield"`
}

// KPIs are the key performance indicators of a ticker.
type KPIs struct {
	Info         map[string]any `json:"info"`
	Main         *MainKPIs      `json:"main"`
	PriceTargets *PriceTargets  `json:"analyst_price_targets"`
}

// Number returns a numeric field of the ticker info, NaN when absent.
func (k *KPIs) Number(name string) float64 {
	if f, ok := k.Info[name].(float64); ok {
		return f
	}
	return math.NaN()
}

// Text returns a string field of the ticker info.
func (k *KPIs) Text(name string) string {
	s, _ := k.Info[name].(string)
	return s
}

// KPIs returns the key performance indicators of ticker.
func (c *Client) KPIs(ctx context.Context, ticker string) (*KPIs, error) {
	var k KPIs
	if err := c.getJSON(ctx, "/api/kpis/", url.Values{"ticker_name": {ticker}}, &k); err != nil {
		return nil, fmt.Errorf("kpis %s: %w", ticker, err)
	}
	return &k, nil
}

// Growth is the compared growth of several tickers on common dates.
//
// Candles are closes divided by the close of the first date, every series
// starts at 1.
type Growth struct {
	Dates   []string             `json:"dates"`
	Candles map[string][]float64 `json:"candles"`
}

// CompareGrowth returns the growth of tickers over period.
func (c *Client) CompareGrowth(ctx context.Context, tickers []string, period string) (*Growth, error) {
	var g Growth
	q := url.Values{"ticker_names": tickers, "period": {period}}
	if err := c.getJSON(ctx, "/api/compare_growth/", q, &g); err != nil {
		return nil, fmt.Errorf("compare growth %s: %w", strings.Join(tickers, ","), err)
	}
	return &g, nil
}

// Quote is a search result.
type Quote struct {
	Symbol      string   `json:"symbol"`
	LongName    string   `json:"long_name"`
	IconURL     string   `json:"icon_url,omitempty"`
	TodayChange *float64 `json:"today_change"`
}

// Search looks tickers up by name or symbol.
func (c *Client) Search(ctx context.Context, query string) ([]Quote, error) {
	var res struct {
		Quotes []Quote `json:"quotes"`
	}
	if err := c.getJSON(ctx, "/api/search/", url.Values{"query": {query}}, &res); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return res.Quotes, nil
}

// TopIndexes fetches the list of indexes a portfolio can be compared to.
func (c *Client) TopIndexes(ctx context.Context) ([]indexes.Option, error) {
	body, err := wget(ctx, c.HTTP, c.url("/api/static/top_indexes.csv", nil))
	if err != nil {
		return nil, err
	}
	return indexes.Parse(bytes.NewReader(body))
}

// CacheStats returns the backend cache statistics as a raw JSON object.
func (c *Client) CacheStats(ctx context.Context) (map[string]any, error) {
	var stats map[string]any
	if err := c.getJSON(ctx, "/api/cache/stats", nil, &stats); err != nil {
		return nil, fmt.Errorf("cache stats: %w", err)
	}
	return stats, nil
}

// Extract evaluates a JSONPath expression on a JSON document and returns the
// numbers it selects. Null values are NaN.
func Extract(doc []byte, path string) ([]float64, error) {
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}
	res, err := jsonpath.Get(path, v)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q: %w", path, err)
	}
	// jsonpath returns a single value or a list depending on the expression.
	list, ok := res.([]any)
	if !ok {
		list = []any{res}
	}
	values := make([]float64, 0, len(list))
	for i, item := range list {
		switch x := item.(type) {
		case float64:
			values = append(values, x)
		case nil:
			values = append(values, math.NaN())
		default:
			return nil, fmt.Errorf("%q: item %d is %T, not a number", path, i, item)
		}
	}
	return values, nil
}
