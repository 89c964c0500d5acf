package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockdash"
	"github.com/etnz/stockdash/renderer"
	"github.com/google/subcommands"
)

type detailsCmd struct {
	ticker string
	period string
	chart  bool
}

func (*detailsCmd) Name() string     { return "details" }
func (*detailsCmd) Synopsis() string { return "show the details page of a ticker" }
func (*detailsCmd) Usage() string {
	return `dash details -ticker <symbol> [-period ytd]

  Shows the key figures, analyst price targets and price history of a ticker.
`
}

func (c *detailsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "ticker symbol")
	f.StringVar(&c.period, "period", stockdash.DefaultPeriod, "history period: 1mo, 3mo, 6mo, ytd, 1y, 5y, max...")
	f.BoolVar(&c.chart, "chart", false, "print the price history as a JSON line chart")
}

func (c *detailsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ticker := c.ticker
	if ticker == "" && f.NArg() == 1 {
		ticker = f.Arg(0)
	}
	if ticker == "" {
		fmt.Fprintln(os.Stderr, "Error: -ticker is required")
		return subcommands.ExitUsageError
	}
	client, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	page, err := stockdash.LoadDetails(ctx, client, ticker, c.period)
	if errors.Is(err, stockdash.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: unknown ticker %q\n", ticker)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.chart {
		return encodeJSON(renderer.TickerChart(page.Ticker, page.History))
	}
	printMarkdown(renderer.DetailsMarkdown(page))
	return subcommands.ExitSuccess
}
