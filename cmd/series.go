package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/etnz/stockdash"
	"github.com/etnz/stockdash/date"
	"github.com/etnz/stockdash/palette"
	"github.com/etnz/stockdash/renderer"
	"github.com/etnz/stockdash/seq"
	"github.com/google/subcommands"
)

type seriesCmd struct {
	seed         string
	cfg          seq.SeriesConfig
	legacyGate   bool
	baseline     string
	baselinePath string
	labels       string
	section      int
	from         string
	title        string
	json         bool
	chart        bool
	color        string
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "draw a reproducible demo series" }
func (*seriesCmd) Usage() string {
	return `dash series [-seed <seed>] [-min <min>] [-max <max>] [-count <n>] [-continuity <p>] [-json]

  Draws a labelled series of placeholder values. Every sample is present with
  probability -continuity; missing samples are printed as "-", or null in JSON.
  With -baseline, the samples are added to the series read from a JSON file.
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	c.cfg = seq.DefaultSeriesConfig()
	f.StringVar(&c.seed, "seed", "", "initial seed, the current time in milliseconds by default")
	f.Float64Var(&c.cfg.Min, "min", c.cfg.Min, "lower bound of the random part of the samples")
	f.Float64Var(&c.cfg.Max, "max", c.cfg.Max, "upper bound of the random part of the samples (excluded)")
	f.IntVar(&c.cfg.Count, "count", c.cfg.Count, "number of samples, the baseline length by default when there is one")
	f.IntVar(&c.cfg.Decimals, "decimals", c.cfg.Decimals, "decimals of the samples")
	f.Float64Var(&c.cfg.Continuity, "continuity", c.cfg.Continuity, "probability in [0, 1] that a sample is present")
	f.BoolVar(&c.legacyGate, "legacy-gate", false, "always keep samples, as the first dashboards did")
	f.StringVar(&c.baseline, "baseline", "", "JSON `file` holding a series to add the samples to")
	f.StringVar(&c.baselinePath, "baseline-path", "$.candles", "JSONPath expression selecting the baseline in the -baseline file")
	f.StringVar(&c.labels, "labels", "months", "sample labels: months or days")
	f.IntVar(&c.section, "section", 3, "truncate month labels to that many letters, 0 for full names")
	f.StringVar(&c.from, "from", "", "first date of day labels, so that the last sample is today by default")
	f.StringVar(&c.title, "title", "", "title of the markdown report")
	f.BoolVar(&c.json, "json", false, "print the series as JSON")
	f.BoolVar(&c.chart, "chart", false, "print the series as a JSON line chart")
	f.StringVar(&c.color, "color", "blue", "line colour of -chart: a name, #hex or rgb(r, g, b)")
}

func (c *seriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	g, err := newGenerator(c.seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.legacyGate {
		c.cfg.Gate = seq.GateLegacy
	}

	if c.baseline != "" {
		baseline, err := readBaseline(c.baseline, c.baselinePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading baseline: %v\n", err)
			return subcommands.ExitFailure
		}
		c.cfg.Baseline = baseline
		if !isFlagSet(f, "count") {
			c.cfg.Count = len(baseline)
		}
	}

	labels, err := c.makeLabels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	seed := g.Seed()
	points, err := g.Points(c.cfg, labels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if c.chart {
		color, err := palette.Parse(c.color)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		label := c.title
		if label == "" {
			label = "Demo"
		}
		return encodeJSON(renderer.SeriesChart(label, points, color))
	}
	if c.json {
		if err := json.NewEncoder(stdout).Encode(points); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding series: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.SeriesMarkdown(&renderer.SeriesReport{
		Title:  c.title,
		Seed:   seed,
		Config: c.cfg,
		Points: points,
	}))
	return subcommands.ExitSuccess
}

func (c *seriesCmd) makeLabels() ([]string, error) {
	count := max(c.cfg.Count, 0)
	switch c.labels {
	case "months":
		return seq.Months(count, c.section), nil
	case "days":
		from := date.Today().Add(1 - count)
		if c.from != "" {
			var err error
			if from, err = date.Parse(c.from); err != nil {
				return nil, err
			}
		}
		labels := make([]string, count)
		for i := range labels {
			labels[i] = from.Add(i).String()
		}
		return labels, nil
	default:
		return nil, fmt.Errorf("invalid -labels %q, want months or days", c.labels)
	}
}

// readBaseline extracts a series from a JSON file. Null values become 0.
func readBaseline(file, path string) ([]float64, error) {
	doc, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	values, err := stockdash.Extract(doc, path)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		if math.IsNaN(v) {
			values[i] = 0
		}
	}
	return values, nil
}

// isFlagSet reports whether the flag name was set on the command line.
func isFlagSet(f *flag.FlagSet, name string) bool {
	set := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}
