package renderer

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/stockdash"
	md "github.com/nao1215/markdown"
)

// DetailsMarkdown renders the details page of a ticker: its key figures,
// analyst price targets when known, and a summary of its price history.
func DetailsMarkdown(page *stockdash.DetailsPage) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	k := page.Summary
	if k == nil {
		k = new(stockdash.KPIs)
	}
	title := page.Ticker
	if name := k.Text("longName"); name != "" {
		title = fmt.Sprintf("%s (%s)", name, page.Ticker)
	}
	doc.H1(title)
	if sector := k.Text("sector"); sector != "" {
		doc.PlainText(md.Italic(sector))
	}

	currency := k.Text("currency")
	rows := [][]string{
		{"Price", orDash(stockdash.FormatCurrency(k.Number("currentPrice"), currency))},
		{"Market Cap", orDash(stockdash.FormatLargeNumber(k.Number("marketCap")))},
	}
	if k.Main != nil {
		rows = append(rows,
			[]string{"P/E", optional(k.Main.RatioPE, number)},
			[]string{"Free Cash Flow Yield", optional(k.Main.FreeCashflowYield, stockdash.FormatPercent)},
		)
	}
	if h := page.History; h != nil {
		rows = append(rows, []string{
			fmt.Sprintf("Change (%s)", page.Period),
			fmt.Sprintf("%s %s", trend(h.Delta), orDash(stockdash.FormatPercent(h.Delta))),
		})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Key Figure", "Value"},
		Rows:      rows,
	})

	var targets strings.Builder
	ConditionalBlock(&targets, func(w io.Writer) bool {
		return writePriceTargets(w, k.PriceTargets, currency)
	})
	if targets.Len() > 0 {
		doc.H2("Analyst Price Targets")
		doc.PlainText(targets.String())
	}

	if h := page.History; h != nil && len(h.Candles) > 0 {
		doc.H2("Price History")
		history := fmt.Sprintf("From %s to %s, %d candles", h.Dates[0], h.Dates[len(h.Dates)-1], len(h.Candles))
		if page.Interval != "" {
			history += fmt.Sprintf(" every %s", page.Interval)
		}
		doc.BulletList(
			history,
			fmt.Sprintf("Low %s, high %s", number(slices.Min(h.Candles)), number(slices.Max(h.Candles))),
		)
		var smas []string
		for _, window := range slices.Sorted(maps.Keys(h.SMAs)) {
			if values := h.SMAs[window]; len(values) > 0 {
				smas = append(smas, fmt.Sprintf("SMA %d: %s", window, number(values[len(values)-1])))
			}
		}
		if len(smas) > 0 {
			doc.BulletList(smas...)
		}
	}
	return doc.String()
}

// writePriceTargets writes the known price targets as a list, and reports
// whether there was any.
func writePriceTargets(w io.Writer, t *stockdash.PriceTargets, currency string) bool {
	if t == nil {
		return false
	}
	targets := []struct {
		name  string
		value *float64
	}{
		{"Low", t.Low},
		{"Mean", t.Mean},
		{"Median", t.Median},
		{"High", t.High},
	}
	found := false
	for _, target := range targets {
		if target.value == nil {
			continue
		}
		found = true
		fmt.Fprintf(w, "- %s: %s\n", target.name, orDash(stockdash.FormatCurrency(*target.value, currency)))
	}
	return found
}

func optional(f *float64, format func(float64) string) string {
	if f == nil {
		return "-"
	}
	return orDash(format(*f))
}

