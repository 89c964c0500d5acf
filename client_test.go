package stockdash

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakeBackend serves canned responses and counts the requests it gets.
func fakeBackend(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	calls := new(atomic.Int64)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/ticker/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Query().Get("ticker_name") != "AAPL" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `{"dates":["2025-01-02","2025-01-03"],"candles":[10,12],"delta":0.2,"smas":{"20":[10,11]},"query":{"period":%q,"interval":%q}}`, r.URL.Query().Get("period"), r.URL.Query().Get("interval"))
	})
	mux.HandleFunc("/api/kpis/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"info":{"longName":"Apple Inc.","marketCap":3.2e12},"main":{"ratioPE":31.5,"freeCashflowYield":null},"analyst_price_targets":{"mean":250}}`)
	})
	mux.HandleFunc("/api/compare_growth/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query()["ticker_names"]
		if len(q) != 2 {
			http.Error(w, "want two tickers", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{"dates":["2025-01-02","2025-01-03"],"candles":{"AAPL":[1,1.05],"MSFT":[1,0.9]}}`)
	})
	mux.HandleFunc("/api/static/top_indexes.csv", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, "symbol,name\n^GSPC,S&P 500\n^IXIC,Nasdaq\n")
	})
	mux.HandleFunc("/api/search/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprintf(w, `{"quotes":[{"symbol":"AAPL","long_name":"Apple Inc.","today_change":1.5},{"symbol":%q,"long_name":"?","today_change":null}]}`, r.URL.Query().Get("query"))
	})
	mux.HandleFunc("/api/cache/stats", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"hits":3,"misses":1}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, calls
}

func TestClient_Ticker(t *testing.T) {
	srv, _ := fakeBackend(t)
	c := NewClient(srv.URL + "/")

	got, err := c.Ticker(context.Background(), "AAPL", "1mo", "1d")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{10, 12}, got.Candles); diff != "" {
		t.Errorf("Ticker().Candles mismatch (-want +got):\n%s", diff)
	}
	if got.Delta != 0.2 || len(got.SMAs[20]) != 2 || got.Query["period"] != "1mo" {
		t.Errorf("Ticker() = %+v", got)
	}

	_, err = c.Ticker(context.Background(), "NOPE", "1mo", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Ticker(NOPE) error = %v, want ErrNotFound", err)
	}
	var status *StatusError
	if !errors.As(err, &status) || status.Code != http.StatusNotFound {
		t.Errorf("Ticker(NOPE) error = %v, want a 404 StatusError", err)
	}
}

func TestClient_KPIs(t *testing.T) {
	srv, _ := fakeBackend(t)
	k, err := NewClient(srv.URL).KPIs(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if k.Text("longName") != "Apple Inc." || k.Number("marketCap") != 3.2e12 {
		t.Errorf("KPIs().Info = %v", k.Info)
	}
	if !math.IsNaN(k.Number("missing")) {
		t.Errorf("KPIs().Number(missing) is not NaN")
	}
	if k.Main == nil || *k.Main.RatioPE != 31.5 || k.Main.FreeCashflowYield != nil {
		t.Errorf("KPIs().Main = %+v", k.Main)
	}
	if k.PriceTargets == nil || *k.PriceTargets.Mean != 250 || k.PriceTargets.High != nil {
		t.Errorf("KPIs().PriceTargets = %+v", k.PriceTargets)
	}
}

func TestClient_StaticAndStats(t *testing.T) {
	srv, _ := fakeBackend(t)
	c := NewClient(srv.URL)
	options, err := c.TopIndexes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(options) != 2 || options[0].Label != "S&P 500 (^GSPC)" || options[1].Value != "^IXIC" {
		t.Errorf("TopIndexes() = %v", options)
	}
	stats, err := c.CacheStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats["hits"] != 3.0 {
		t.Errorf("CacheStats() = %v", stats)
	}
}

func TestClient_Search(t *testing.T) {
	srv, _ := fakeBackend(t)
	quotes, err := NewClient(srv.URL).Search(context.Background(), "app le")
	if err != nil {
		t.Fatal(err)
	}
	if len(quotes) != 2 || quotes[0].LongName != "Apple Inc." || *quotes[0].TodayChange != 1.5 {
		t.Fatalf("Search() = %+v", quotes)
	}
	if quotes[1].Symbol != "app le" || quotes[1].TodayChange != nil {
		t.Errorf("Search() did not send the query: %+v", quotes[1])
	}
}

func TestLoadDetails(t *testing.T) {
	srv, _ := fakeBackend(t)
	c := NewClient(srv.URL)

	page, err := LoadDetails(context.Background(), c, " aapl ", "")
	if err != nil {
		t.Fatal(err)
	}
	if page.Ticker != "AAPL" || page.Period != DefaultPeriod {
		t.Errorf("LoadDetails() = %s %s", page.Ticker, page.Period)
	}
	if page.Summary == nil || page.History == nil || page.History.Query["period"] != DefaultPeriod {
		t.Errorf("LoadDetails() page is incomplete: %+v", page)
	}

	page, err = LoadDetails(context.Background(), c, "AAPL", "1mo")
	if err != nil {
		t.Fatal(err)
	}
	if page.Interval != "1d" || page.History.Query["interval"] != "1d" {
		t.Errorf("LoadDetails(1mo) interval = %q, backend got %v", page.Interval, page.History.Query["interval"])
	}

	if _, err := LoadDetails(context.Background(), c, "NOPE", "1y"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadDetails(NOPE) error = %v, want ErrNotFound", err)
	}
	if _, err := LoadDetails(context.Background(), c, "  ", "1y"); err == nil {
		t.Errorf("LoadDetails(blank) want error")
	}
}

func TestChartInterval(t *testing.T) {
	now := time.Date(2025, time.January, 3, 12, 0, 0, 0, time.UTC)
	testCases := []struct {
		period string
		want   string
	}{
		{"1d", "30m"},
		{"5d", "4h"},
		{"1mo", "1d"},
		{"1y", "1wk"},
		{"ytd", "60m"}, // 2.5 days into the year
		{"max", ""},
	}
	for _, tc := range testCases {
		if got := ChartInterval(tc.period, now); got != tc.want {
			t.Errorf("ChartInterval(%q) = %q, want %q", tc.period, got, tc.want)
		}
	}
}

func TestLoadCompare(t *testing.T) {
	srv, _ := fakeBackend(t)
	c := NewClient(srv.URL)

	page, err := LoadCompare(context.Background(), c, []string{"aapl", "", "msft"}, "1mo")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"AAPL", "MSFT"}, page.Tickers); diff != "" {
		t.Errorf("LoadCompare().Tickers mismatch (-want +got):\n%s", diff)
	}
	if v, ok := page.Latest("MSFT"); !ok || v != 0.9 {
		t.Errorf("Latest(MSFT) = %v, %v", v, ok)
	}
	if v, ok := page.Change("MSFT"); !ok || math.Abs(v+0.1) > 1e-9 {
		t.Errorf("Change(MSFT) = %v, %v, want -0.1", v, ok)
	}
	if _, ok := page.Latest("TSLA"); ok {
		t.Errorf("Latest(TSLA) found a value")
	}

	var status *StatusError
	if _, err := LoadCompare(context.Background(), c, []string{"AAPL"}, ""); !errors.As(err, &status) || status.Code != http.StatusBadRequest {
		t.Errorf("LoadCompare(one ticker) error = %v, want a 400 StatusError", err)
	}
	if _, err := LoadCompare(context.Background(), c, nil, ""); err == nil {
		t.Errorf("LoadCompare(nil) want error")
	}
}

func TestDailyCache(t *testing.T) {
	srv, calls := fakeBackend(t)
	c := NewClient(srv.URL).WithDailyCache(t.TempDir())

	for range 3 {
		if _, err := c.CacheStats(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("backend called %d times, want 1", n)
	}

	// errors are not cached
	for range 2 {
		c.Ticker(context.Background(), "NOPE", "1mo", "")
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("backend called %d times, want 3", n)
	}
}

func TestExtract(t *testing.T) {
	doc := []byte(`{"candles":[1.5,null,3],"delta":0.25,"name":"AAPL"}`)

	got, err := Extract(doc, "$.candles")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 1.5 || !math.IsNaN(got[1]) || got[2] != 3 {
		t.Errorf("Extract($.candles) = %v", got)
	}

	got, err = Extract(doc, "$.delta")
	if err != nil || len(got) != 1 || got[0] != 0.25 {
		t.Errorf("Extract($.delta) = %v, %v", got, err)
	}

	testCases := map[string]struct{ doc, path string }{
		"not json":   {"{", "$.candles"},
		"not number": {string(doc), "$.name"},
		"bad path":   {string(doc), "$.["},
	}
	for name, tc := range testCases {
		if _, err := Extract([]byte(tc.doc), tc.path); err == nil {
			t.Errorf("%s: Extract() want error", name)
		}
	}
}
