package renderer

import (
	"bytes"

	"github.com/etnz/stockdash/indexes"
	md "github.com/nao1215/markdown"
)

// IndexesMarkdown lists the indexes a portfolio can be compared to.
func IndexesMarkdown(options []indexes.Option) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Indexes")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
		Header:    []string{"Symbol", "Index"},
		Rows:      [][]string{},
	}
	for _, o := range options {
		table.Rows = append(table.Rows, []string{"`" + o.Value + "`", o.Label})
	}
	doc.Table(table)
	return doc.String()
}
