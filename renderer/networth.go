package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/stockdash"
	"github.com/etnz/stockdash/date"
	md "github.com/nao1215/markdown"
)

// NetWorthMarkdown renders a net worth series with its summary.
func NetWorthMarkdown(points []stockdash.NetWorthPoint, period date.Period) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Net Worth (%s)", period))
	s, err := stockdash.Summarize(points)
	if err != nil {
		doc.PlainText("No activity.")
		return doc.String()
	}

	doc.PlainText(fmt.Sprintf("From %s to %s, %d points.", s.From, s.To, s.Points))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Summary", "Value"},
		Rows: [][]string{
			{"Start", s.Start.String()},
			{"End", md.Bold(s.End.String())},
			{"Change", fmt.Sprintf("%s (%s) %s", s.Change.SignedString(), s.ChangePercent.SignedString(), trend(float64(s.ChangePercent)))},
			{"Peak", s.Peak.String()},
			{"Low", s.Low.String()},
		},
	})

	doc.H2("History")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Period", "Net Worth"},
		Rows:      [][]string{},
	}
	for _, p := range points {
		table.Rows = append(table.Rows, []string{periodLabel(p.Date, period), p.Value.String()})
	}
	doc.Table(table)
	return doc.String()
}

// ProfitsMarkdown renders the realized profits of closed positions per period.
func ProfitsMarkdown(points []stockdash.ProfitPoint, period date.Period) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Closed Positions Profit (%s)", period))
	if len(points) == 0 {
		doc.PlainText("No closed position.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Period", "Profit", "Trades"},
		Rows:      [][]string{},
	}
	for _, p := range points {
		table.Rows = append(table.Rows, []string{
			periodLabel(p.Date, period),
			p.Profit.SignedString(),
			fmt.Sprint(p.Trades),
		})
	}
	total, trades := stockdash.TotalProfit(points)
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"),
		md.Bold(total.SignedString()),
		md.Bold(fmt.Sprint(trades)),
	})
	doc.Table(table)
	return doc.String()
}
