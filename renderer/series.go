package renderer

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/etnz/stockdash/seq"
	md "github.com/nao1215/markdown"
)

// SeriesReport is a labelled synthetic series and how it was drawn.
type SeriesReport struct {
	Title  string
	Seed   int64 // seed before the first draw
	Config seq.SeriesConfig
	Points []seq.Point
}

// SeriesMarkdown renders a synthetic series as a table, missing samples
// shown as "-".
func SeriesMarkdown(r *SeriesReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := r.Title
	if title == "" {
		title = "Demo Series"
	}
	doc.H1(title)
	doc.BulletList(
		fmt.Sprintf("Seed: %d", r.Seed),
		fmt.Sprintf("Range: [%v, %v)", r.Config.Min, r.Config.Max),
		fmt.Sprintf("Continuity: %v (%s gate)", r.Config.Continuity, r.Config.Gate),
		fmt.Sprintf("Decimals: %d", r.Config.Decimals),
	)

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Label", "Value"},
		Rows:      [][]string{},
	}
	var present []float64
	for _, p := range r.Points {
		table.Rows = append(table.Rows, []string{p.Label, p.Sample.String()})
		if p.Sample.Valid {
			present = append(present, p.Sample.Value)
		}
	}
	doc.Table(table)

	if len(present) > 0 {
		doc.PlainText(fmt.Sprintf("%d of %d samples present, from %v to %v.",
			len(present), len(r.Points), slices.Min(present), slices.Max(present)))
	} else {
		doc.PlainText(fmt.Sprintf("No sample present out of %d.", len(r.Points)))
	}
	return doc.String()
}
