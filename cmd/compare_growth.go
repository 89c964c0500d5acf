package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockdash"
	"github.com/etnz/stockdash/renderer"
	"github.com/google/subcommands"
)

type compareGrowthCmd struct {
	period string
}

func (*compareGrowthCmd) Name() string     { return "compare-growth" }
func (*compareGrowthCmd) Synopsis() string { return "compare the growth of several tickers" }
func (*compareGrowthCmd) Usage() string {
	return `dash compare-growth [-period ytd] <symbol> <symbol>...

  Shows the growth of the tickers on their common dates.
`
}

func (c *compareGrowthCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", stockdash.DefaultPeriod, "history period: 1mo, 3mo, 6mo, ytd, 1y, 5y, max...")
}

func (c *compareGrowthCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: at least two tickers are required")
		return subcommands.ExitUsageError
	}
	client, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	page, err := stockdash.LoadCompare(ctx, client, f.Args(), c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CompareMarkdown(page))
	return subcommands.ExitSuccess
}
