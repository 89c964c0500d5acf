package renderer

import (
	"maps"
	"slices"

	"github.com/etnz/stockdash"
	"github.com/etnz/stockdash/palette"
	"github.com/etnz/stockdash/seq"
	"github.com/lucasb-eyer/go-colorful"
)

// Chart is a line chart as drawn by the dashboard: datasets sharing labels.
type Chart struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is a line of a Chart. Missing samples are null so the line has a gap.
type Dataset struct {
	Label           string       `json:"label"`
	Data            []seq.Sample `json:"data"`
	BorderColor     string       `json:"borderColor"`
	BackgroundColor string       `json:"backgroundColor"`
}

func newDataset(label string, data []seq.Sample, c colorful.Color) Dataset {
	return Dataset{
		Label:           label,
		Data:            data,
		BorderColor:     palette.RGB(c),
		BackgroundColor: palette.Transparentize(c, palette.DefaultOpacity),
	}
}

// SeriesChart returns the chart of a single labelled series.
func SeriesChart(label string, points []seq.Point, c colorful.Color) Chart {
	chart := Chart{Labels: make([]string, len(points))}
	data := make([]seq.Sample, len(points))
	for i, p := range points {
		chart.Labels[i], data[i] = p.Label, p.Sample
	}
	chart.Datasets = []Dataset{newDataset(label, data, c)}
	return chart
}

// TickerChart returns the price chart of a ticker with one line per moving
// average, by increasing window. Moving averages shorter than the history
// are aligned on its last dates.
func TickerChart(ticker string, t *stockdash.Ticker) Chart {
	chart := Chart{Labels: t.Dates}
	chart.Datasets = append(chart.Datasets, newDataset(ticker, samples(t.Candles, len(t.Dates)), palette.Named(3)))
	for i, window := range slices.Sorted(maps.Keys(t.SMAs)) {
		label := "SMA " + number(float64(window))
		chart.Datasets = append(chart.Datasets, newDataset(label, samples(t.SMAs[window], len(t.Dates)), palette.SMA(i)))
	}
	return chart
}

// samples right-aligns values on n samples, the leading ones missing.
func samples(values []float64, n int) []seq.Sample {
	data := make([]seq.Sample, max(n, len(values)))
	offset := len(data) - len(values)
	for i, v := range values {
		data[offset+i] = seq.Present(v)
	}
	return data
}
