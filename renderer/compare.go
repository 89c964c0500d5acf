package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/stockdash"
	md "github.com/nao1215/markdown"
)

// IndexComparisonMarkdown compares, day by day, the deposits of an account
// with what they would be worth invested in index. values are aligned on
// deposits.
func IndexComparisonMarkdown(index string, deposits []stockdash.NetWorthPoint, values []float64) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Deposits invested in %s", index))
	if len(deposits) == 0 || len(deposits) != len(values) {
		doc.PlainText("Nothing to compare.")
		return doc.String()
	}

	last := len(deposits) - 1
	deposited := deposits[last].Value.InexactFloat64()
	worth := values[last]
	gain := 0.0
	if deposited != 0 {
		gain = worth/deposited - 1
	}
	doc.PlainText(fmt.Sprintf("On %s, %s deposited would be worth %s %s %s.",
		deposits[last].Date,
		md.Bold(deposits[last].Value.String()),
		md.Bold(orDash(stockdash.FormatCurrency(worth, ""))),
		trend(gain),
		orDash(stockdash.FormatPercent(gain)),
	))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Deposited", index},
		Rows:      [][]string{},
	}
	for i, d := range deposits {
		table.Rows = append(table.Rows, []string{
			d.Date.String(),
			d.Value.String(),
			orDash(stockdash.FormatCurrency(values[i], "")),
		})
	}
	doc.Table(table)
	return doc.String()
}

// CompareMarkdown renders the compared growth of several tickers.
func CompareMarkdown(page *stockdash.ComparePage) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Growth Comparison (%s)", page.Period))

	var latest []string
	for _, t := range page.Tickers {
		v, ok := page.Change(t)
		if !ok {
			latest = append(latest, fmt.Sprintf("%s: no data", md.Bold(t)))
			continue
		}
		latest = append(latest, fmt.Sprintf("%s: %s %s", md.Bold(t), trend(v), orDash(stockdash.FormatPercent(v))))
	}
	doc.BulletList(latest...)

	if page.Growth == nil || len(page.Growth.Dates) == 0 {
		return doc.String()
	}
	alignment := []md.TableAlignment{md.AlignLeft}
	header := []string{"Date"}
	for _, t := range page.Tickers {
		alignment = append(alignment, md.AlignRight)
		header = append(header, t)
	}
	table := md.TableSet{Alignment: alignment, Header: header, Rows: [][]string{}}
	for i, d := range page.Growth.Dates {
		row := []string{d}
		for _, t := range page.Tickers {
			cell := "-"
			if values := page.Growth.Candles[t]; i < len(values) {
				cell = orDash(stockdash.FormatPercent(values[i] - 1))
			}
			row = append(row, cell)
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)
	return doc.String()
}
