// Package renderer turns dashboard data into markdown reports.
//
// Reports are built with github.com/nao1215/markdown and are meant to be
// printed in a terminal (see the dash command) or saved as documents.
package renderer

import (
	"math"
	"strconv"

	"github.com/etnz/stockdash"
	"github.com/etnz/stockdash/date"
)

// periodLabel names the bucket starting on d.
func periodLabel(d date.Date, period date.Period) string {
	if period == date.Monthly {
		return d.Format("Jan 2006")
	}
	return date.NewRange(d, period).Identifier()
}

// trend is a colored mark of the direction of a change ratio.
func trend(ratio float64) string {
	switch stockdash.RatioColor(ratio) {
	case "green":
		return "▲"
	case "red":
		return "▼"
	default:
		return "="
	}
}

// orDash replaces an empty cell with a dash.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// number formats a float with two decimals, NaN is "-".
func number(f float64) string {
	if math.IsNaN(f) {
		return "-"
	}
	return strconv.FormatFloat(stockdash.RoundPrecision(f, 2), 'f', -1, 64)
}
