package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/stockdash"
	md "github.com/nao1215/markdown"
)

// SearchMarkdown lists the quotes matching query with their change of the day.
func SearchMarkdown(query string, quotes []stockdash.Quote) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Search %q", query))
	if len(quotes) == 0 {
		doc.PlainText("No match.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Symbol", "Name", "Today"},
		Rows:      [][]string{},
	}
	for _, q := range quotes {
		today := "-"
		if q.TodayChange != nil {
			today = fmt.Sprintf("%s %s", trend(*q.TodayChange), orDash(stockdash.FormatPercent(*q.TodayChange)))
		}
		table.Rows = append(table.Rows, []string{"`" + q.Symbol + "`", q.LongName, today})
	}
	doc.Table(table)
	return doc.String()
}
