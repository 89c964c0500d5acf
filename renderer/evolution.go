package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/stockdash"
	"github.com/etnz/stockdash/date"
	md "github.com/nao1215/markdown"
)

func usd(v float64) string { return stockdash.M(v, stockdash.DefaultCurrency).String() }

// EvolutionMarkdown renders the latest value of every part of a portfolio
// evolution, and its history at the end of every period.
func EvolutionMarkdown(e *stockdash.Evolution, period date.Period) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Evolution (%s)", period))
	if e == nil || len(e.Dates) == 0 {
		doc.PlainText("No position.")
		return doc.String()
	}
	last := len(e.Dates) - 1
	total := e.Total[last]
	names := e.Names()
	doc.PlainText(fmt.Sprintf("On %s, the portfolio is worth %s.", e.Dates[last], md.Bold(usd(total))))

	parts := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Part", "Value", "Share"},
		Rows:      [][]string{},
	}
	for _, name := range names {
		value := e.Parts[name][last]
		share := ""
		if total != 0 {
			share = stockdash.FormatPercent(value / total)
		}
		parts.Rows = append(parts.Rows, []string{name, usd(value), orDash(share)})
	}
	parts.Rows = append(parts.Rows, []string{md.Bold("Total"), md.Bold(usd(total)), ""})
	doc.Table(parts)

	doc.H2("History")
	history := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft},
		Header:    []string{"Period"},
		Rows:      [][]string{},
	}
	for _, name := range names {
		history.Alignment = append(history.Alignment, md.AlignRight)
		history.Header = append(history.Header, name)
	}
	history.Alignment = append(history.Alignment, md.AlignRight)
	history.Header = append(history.Header, "Total")
	for i, on := range e.Dates {
		bucket := on.StartOf(period)
		// the last day of every period
		if i < last && e.Dates[i+1].StartOf(period) == bucket {
			continue
		}
		row := []string{periodLabel(bucket, period)}
		for _, name := range names {
			row = append(row, usd(e.Parts[name][i]))
		}
		history.Rows = append(history.Rows, append(row, usd(e.Total[i])))
	}
	doc.Table(history)
	return doc.String()
}
