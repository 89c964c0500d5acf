package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockdash"
	"github.com/etnz/stockdash/date"
	"github.com/etnz/stockdash/renderer"
	"github.com/google/subcommands"
)

type profitsCmd struct {
	closed    string
	precision string
	json      bool
}

func (*profitsCmd) Name() string     { return "profits" }
func (*profitsCmd) Synopsis() string { return "realized profits from a closed positions export" }
func (*profitsCmd) Usage() string {
	return `dash profits -closed <file.csv|file.xlsx> [-precision D|W|M|Q|Y] [-json]

  Sums the profit and counts the positions closed in every period.
`
}

func (c *profitsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.closed, "closed", "", "closed positions CSV or statement .xlsx `file`, - for the standard input")
	f.StringVar(&c.precision, "precision", "M", "period of the points: D, W, M, Q or Y")
	f.BoolVar(&c.json, "json", false, "print the points as JSON")
}

func (c *profitsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := date.ParsePeriod(c.precision)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	positions, status := decodeClosedPositions(c.closed)
	if status != subcommands.ExitSuccess {
		return status
	}

	points := stockdash.ClosedProfits(positions, period)
	if c.json {
		return encodeJSON(points)
	}
	printMarkdown(renderer.ProfitsMarkdown(points, period))
	return subcommands.ExitSuccess
}
