package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/etnz/stockdash"
	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2/predict"
	"github.com/xuri/excelize/v2"
)

// run executes cmd with args and returns what it printed.
func run(t *testing.T, cmd subcommands.Command, args ...string) (string, subcommands.ExitStatus) {
	t.Helper()
	var out bytes.Buffer
	previous := stdout
	stdout = &out
	t.Cleanup(func() { stdout = previous })

	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	f.SetOutput(io.Discard)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s %v: %v", cmd.Name(), args, err)
	}
	status := cmd.Execute(context.Background(), f)
	return out.String(), status
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestRandCmd(t *testing.T) {
	got, status := run(t, &randCmd{}, "-seed", "1", "-max", "10", "-n", "3")
	if status != subcommands.ExitSuccess {
		t.Fatalf("rand status = %v", status)
	}
	want := "2.511917009602195\n5.453317901234568\n3.4230109739368997\n"
	if got != want {
		t.Errorf("rand = %q, want %q", got, want)
	}

	got, _ = run(t, &randCmd{}, "-seed", "1", "-max", "10", "-decimals", "2")
	if got != "2.51\n" {
		t.Errorf("rand -decimals 2 = %q", got)
	}

	if _, status := run(t, &randCmd{}, "-seed", "one"); status != subcommands.ExitUsageError {
		t.Errorf("rand -seed one status = %v, want usage error", status)
	}
}

func TestSeriesCmd_JSON(t *testing.T) {
	got, status := run(t, &seriesCmd{}, "-seed", "42", "-count", "5", "-decimals", "3", "-continuity", "0.5", "-json")
	if status != subcommands.ExitSuccess {
		t.Fatalf("series status = %v", status)
	}
	want := `[{"label":"Jan","value":null},{"label":"Feb","value":null},{"label":"Mar","value":null},{"label":"Apr","value":59.594},{"label":"May","value":null}]` + "\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("series -json mismatch (-want +got):\n%s", diff)
	}

	got, _ = run(t, &seriesCmd{}, "-seed", "42", "-count", "5", "-decimals", "3", "-continuity", "0.5", "-legacy-gate", "-json")
	if strings.Contains(got, "null") {
		t.Errorf("series -legacy-gate has missing samples: %s", got)
	}
}

func TestSeriesCmd_Baseline(t *testing.T) {
	file := writeFile(t, "ticker.json", `{"candles":[1000,null,3000]}`)
	got, status := run(t, &seriesCmd{}, "-seed", "1", "-max", "0", "-baseline", file, "-labels", "days", "-from", "2025-01-30", "-json")
	if status != subcommands.ExitSuccess {
		t.Fatalf("series status = %v", status)
	}
	var points []struct {
		Label string   `json:"label"`
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal([]byte(got), &points); err != nil {
		t.Fatal(err)
	}
	if len(points) != 3 {
		t.Fatalf("series -baseline: %d points, want the baseline length 3", len(points))
	}
	wantLabels := []string{"2025-01-30", "2025-01-31", "2025-02-01"}
	wantValues := []float64{1000, 0, 3000}
	for i, p := range points {
		if p.Label != wantLabels[i] || p.Value == nil || *p.Value != wantValues[i] {
			t.Errorf("point %d = %s %v, want %s %v", i, p.Label, p.Value, wantLabels[i], wantValues[i])
		}
	}
}

func TestSeriesCmd_Errors(t *testing.T) {
	testCases := map[string][]string{
		"continuity": {"-continuity", "2"},
		"labels":     {"-labels", "weeks"},
		"seed":       {"-seed", "x"},
	}
	for name, args := range testCases {
		if _, status := run(t, &seriesCmd{}, args...); status != subcommands.ExitUsageError {
			t.Errorf("%s: status = %v, want usage error", name, status)
		}
	}
}

const activityCSV = `Date,Type,Details,Amount,Units / Contracts,Realized Equity Change,Realized Equity,Balance,Position ID,Asset type,NWA
02/01/2025 10:00:00,Deposit,,1000.00,-,1000.00,1000.00,1000.00,,,0.00
03/01/2025 15:30:00,Open Position,AAPL/USD,500.00,2.5,0.00,1000.00,500.00,1001,Stocks,0.00
04/01/2025 09:00:00,Deposit,,500.00,-,500.00,1500.00,1000.00,,,0.00
`

func TestNetworthCmd(t *testing.T) {
	file := writeFile(t, "activity.csv", activityCSV)
	got, status := run(t, &networthCmd{}, "-activity", file, "-precision", "M")
	if status != subcommands.ExitSuccess {
		t.Fatalf("networth status = %v", status)
	}
	for _, want := range []string{"# Net Worth (monthly)", "Jan 2025", "$1,000.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("networth: missing %q in:\n%s", want, got)
		}
	}

	if _, status := run(t, &networthCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("networth without -activity status = %v", status)
	}
	if _, status := run(t, &networthCmd{}, "-activity", file, "-precision", "X"); status != subcommands.ExitUsageError {
		t.Errorf("networth -precision X status = %v", status)
	}
}

func TestProfitsCmd_JSON(t *testing.T) {
	file := writeFile(t, "closed.csv", `Position ID,Action,Open Date,Close Date,Profit(USD)
1001,Buy AAPL,03/01/2025 15:30:00,10/02/2025 11:00:00,50.00
1002,Buy MSFT,05/01/2025 10:00:00,20/02/2025 12:00:00,-20.50
`)
	got, status := run(t, &profitsCmd{}, "-closed", file, "-json")
	if status != subcommands.ExitSuccess {
		t.Fatalf("profits status = %v", status)
	}
	for _, want := range []string{`"close_date": "2025-02-01"`, `"closed_trades": 2`, `"amount": "29.5"`} {
		if !strings.Contains(got, want) {
			t.Errorf("profits -json: missing %q in:\n%s", want, got)
		}
	}
}

func TestCompareCmd(t *testing.T) {
	activity := writeFile(t, "activity.csv", activityCSV)
	prices := writeFile(t, "prices.csv", "Date,Price\n2025-01-02,10\n2025-01-04,20\n")
	got, status := run(t, &compareCmd{}, "-activity", activity, "-prices", prices, "-index", "IDX")
	if status != subcommands.ExitSuccess {
		t.Fatalf("compare status = %v", status)
	}
	// 100 units bought at 10, 25 at 20: 125 units worth 2500 on the 4th
	for _, want := range []string{"# Deposits invested in IDX", "**$1,500.00**", "**$2,500.00**"} {
		if !strings.Contains(got, want) {
			t.Errorf("compare: missing %q in:\n%s", want, got)
		}
	}
}

func TestBackendCmds(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/static/top_indexes.csv", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "symbol,name\n^GSPC,S&P 500\n^FCHI,CAC 40\n")
	})
	mux.HandleFunc("/api/kpis/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"info":{"longName":"Apple Inc."}}`)
	})
	mux.HandleFunc("/api/ticker/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"dates":["2025-01-02"],"candles":[200],"delta":0.1}`)
	})
	mux.HandleFunc("/api/compare_growth/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"dates":["2025-01-02","2025-01-03"],"candles":{"AAPL":[1,1],"MSFT":[1,1.2]}}`)
	})
	mux.HandleFunc("/api/search/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") != "apple inc" {
			io.WriteString(w, `{"quotes":[]}`)
			return
		}
		io.WriteString(w, `{"quotes":[{"symbol":"AAPL","long_name":"Apple Inc.","today_change":-0.015}]}`)
	})
	mux.HandleFunc("/api/cache/stats", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"hits":3,"misses":1}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	previousAPI, previousCache := *apiURL, *cacheDir
	*apiURL, *cacheDir = srv.URL, ""
	defer func() { *apiURL, *cacheDir = previousAPI, previousCache }()

	got, status := run(t, &indexesCmd{}, "-json", "^fchi")
	if status != subcommands.ExitSuccess {
		t.Fatalf("indexes status = %v", status)
	}
	if !strings.Contains(got, `"label": "CAC 40 (^FCHI)"`) || strings.Contains(got, "GSPC") {
		t.Errorf("indexes ^fchi = %s", got)
	}

	got, status = run(t, &detailsCmd{}, "aapl")
	if status != subcommands.ExitSuccess || !strings.Contains(got, "# Apple Inc. (AAPL)") {
		t.Errorf("details = %v\n%s", status, got)
	}

	got, status = run(t, &compareGrowthCmd{}, "AAPL", "MSFT")
	if status != subcommands.ExitSuccess || !strings.Contains(got, "**MSFT**: ▲ 20%") {
		t.Errorf("compare-growth = %v\n%s", status, got)
	}
	if _, status := run(t, &compareGrowthCmd{}, "AAPL"); status != subcommands.ExitUsageError {
		t.Errorf("compare-growth with one ticker status = %v", status)
	}

	got, status = run(t, &searchCmd{}, "apple", "inc")
	if status != subcommands.ExitSuccess {
		t.Errorf("search status = %v", status)
	}
	for _, want := range []string{"# Search \"apple inc\"", "`AAPL`", "Apple Inc.", "▼ -1.5%"} {
		if !strings.Contains(got, want) {
			t.Errorf("search: missing %q in:\n%s", want, got)
		}
	}
	got, _ = run(t, &searchCmd{}, "nothing")
	if !strings.Contains(got, "No match.") {
		t.Errorf("search nothing = %s", got)
	}
	if _, status := run(t, &searchCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("search without query status = %v", status)
	}

	got, status = run(t, &cacheStatsCmd{})
	var stats map[string]int
	if err := json.Unmarshal([]byte(got), &stats); status != subcommands.ExitSuccess || err != nil {
		t.Fatalf("cache-stats = %v, %v\n%s", status, err, got)
	}
	if diff := cmp.Diff(map[string]int{"hits": 3, "misses": 1}, stats); diff != "" {
		t.Errorf("cache-stats mismatch (-want +got):\n%s", diff)
	}
}

func TestTopicCmd(t *testing.T) {
	got, status := run(t, &topicCmd{})
	if status != subcommands.ExitSuccess || !strings.Contains(got, "# dash") {
		t.Errorf("topic = %v\n%s", status, got)
	}
	if _, status := run(t, &topicCmd{}, "nope"); status != subcommands.ExitFailure {
		t.Errorf("topic nope status = %v", status)
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, commands := range Commands() {
		for _, cmd := range commands {
			if _, ok := c.Sub[cmd.Name()]; !ok {
				t.Errorf("no completion for %q", cmd.Name())
			}
		}
	}
	series := c.Sub["series"]
	if _, ok := series.Flags["continuity"]; !ok {
		t.Errorf("series -continuity is not completed")
	}
	if diff := cmp.Diff(predict.Set{"D", "W", "M", "Q", "Y"}, c.Sub["networth"].Flags["precision"]); diff != "" {
		t.Errorf("networth -precision completion mismatch (-want +got):\n%s", diff)
	}
	if got := series.Flags["json"].Predict(""); len(got) != 0 {
		t.Errorf("series -json predicts %v, want nothing", got)
	}
}

func TestSeriesCmd_Chart(t *testing.T) {
	got, status := run(t, &seriesCmd{}, "-seed", "42", "-count", "2", "-chart", "-color", "red", "-title", "Demo")
	if status != subcommands.ExitSuccess {
		t.Fatalf("series -chart status = %v", status)
	}
	for _, want := range []string{`"labels": [`, `"label": "Demo"`, `"borderColor": "rgb(255, 99, 132)"`} {
		if !strings.Contains(got, want) {
			t.Errorf("series -chart: missing %q in:\n%s", want, got)
		}
	}
	if _, status := run(t, &seriesCmd{}, "-chart", "-color", "mauve"); status != subcommands.ExitUsageError {
		t.Errorf("series -color mauve status = %v", status)
	}
}

// writeWorkbook writes a statement workbook with both sheets.
func writeWorkbook(t *testing.T, activity, closed [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for sheet, rows := range map[string][][]any{stockdash.ActivitySheet: activity, stockdash.ClosedSheet: closed} {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatal(err)
		}
		for i, row := range rows {
			if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(i+1), &row); err != nil {
				t.Fatal(err)
			}
		}
	}
	file := filepath.Join(t.TempDir(), "statement.xlsx")
	if err := f.SaveAs(file); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestStatementCmds_Workbook(t *testing.T) {
	file := writeWorkbook(t,
		[][]any{
			{"Date", "Type", "Details", "Amount", "Units / Contracts", "Balance", "Position ID", "Asset type"},
			{"02/01/2025 10:00:00", "Deposit", "", 1000, "-", 1000, "", ""},
			{"04/02/2025 09:00:00", "Deposit", "", 500, "-", 1500, "", ""},
		},
		[][]any{
			{"Position ID", "Action", "Open Date", "Close Date", "Profit(USD)"},
			{"1001", "Buy AAPL", "03/01/2025 15:30:00", "10/02/2025 11:00:00", 50},
		},
	)

	got, status := run(t, &networthCmd{}, "-activity", file, "-precision", "M")
	if status != subcommands.ExitSuccess {
		t.Fatalf("networth workbook status = %v", status)
	}
	if !strings.Contains(got, "Feb 2025") || !strings.Contains(got, "$1,500.00") {
		t.Errorf("networth workbook:\n%s", got)
	}

	got, status = run(t, &profitsCmd{}, "-closed", file, "-json")
	if status != subcommands.ExitSuccess || !strings.Contains(got, `"amount": "50"`) {
		t.Errorf("profits workbook = %v\n%s", status, got)
	}
}

func TestEvolutionCmd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/ticker/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ticker_name") != "AAPL" || r.URL.Query().Get("interval") != "1d" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `{"dates":["2025-01-03","2025-01-06"],"candles":[200,210]}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	previousAPI, previousCache := *apiURL, *cacheDir
	*apiURL, *cacheDir = srv.URL, ""
	defer func() { *apiURL, *cacheDir = previousAPI, previousCache }()

	activity := writeFile(t, "activity.csv", activityCSV)
	closed := writeFile(t, "closed.csv", `Position ID,Action,Open Date,Close Date,Profit(USD)
1000,Buy MSFT,02/01/2025 10:00:00,03/01/2025 11:00:00,50.00
`)
	got, status := run(t, &evolutionCmd{}, "-activity", activity, "-closed", closed, "-json")
	if status != subcommands.ExitSuccess {
		t.Fatalf("evolution status = %v", status)
	}
	var e struct {
		Parts map[string][]float64 `json:"parts"`
		Total []float64            `json:"total"`
	}
	if err := json.Unmarshal([]byte(got), &e); err != nil {
		t.Fatalf("evolution -json: %v\n%s", err, got)
	}
	if _, ok := e.Parts["AAPL/USD"]; !ok || len(e.Total) == 0 {
		t.Fatalf("evolution -json = %s", got)
	}
	// 2.5 AAPL at 210 and 50 of profits
	if last := e.Total[len(e.Total)-1]; last != 575 {
		t.Errorf("evolution last total = %v, want 575", last)
	}

	if _, status := run(t, &evolutionCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("evolution without statement status = %v", status)
	}
}
