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

type compareCmd struct {
	activity string
	index    string
	prices   string
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare the deposits of an account to an index investment" }
func (*compareCmd) Usage() string {
	return `dash compare -activity <file.csv|file.xlsx> [-index <symbol>] [-prices <file.csv>]

  Shows, day by day, what the deposits of the account would be worth if every
  deposit had been invested in the index. Index prices are read from -prices,
  a "Date,Price" CSV file, or fetched from the backend.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.activity, "activity", "", "account activity CSV or statement .xlsx `file`, - for the standard input")
	f.StringVar(&c.index, "index", "^GSPC", "index symbol")
	f.StringVar(&c.prices, "prices", "", "index prices CSV `file`, fetched from the backend by default")
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	acts, status := decodeActivities(c.activity)
	if status != subcommands.ExitSuccess {
		return status
	}
	deposits := stockdash.Deposits(acts)
	if len(deposits) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no activity")
		return subcommands.ExitFailure
	}

	prices, label, err := c.indexPrices(ctx, deposits[0].Date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting %s prices: %v\n", c.index, err)
		return subcommands.ExitFailure
	}

	dates := make([]date.Date, len(deposits))
	amounts := make([]float64, len(deposits))
	for i, d := range deposits {
		dates[i], amounts[i] = d.Date, d.Value.InexactFloat64()
	}
	values, err := stockdash.SimulateIndexInvestment(dates, amounts, prices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.IndexComparisonMarkdown(label, deposits, values))
	return subcommands.ExitSuccess
}

// indexPrices returns the index prices since from and the index label.
func (c *compareCmd) indexPrices(ctx context.Context, from date.Date) (*date.History[float64], string, error) {
	if c.prices != "" {
		r, err := openFile(c.prices)
		if err != nil {
			return nil, "", err
		}
		defer r.Close()
		prices, err := stockdash.DecodePrices(r)
		return prices, c.index, err
	}
	client, err := newClient()
	if err != nil {
		return nil, "", err
	}
	t, err := client.Ticker(ctx, c.index, stockdash.PeriodSince(from, date.Today()), "1d")
	if err != nil {
		return nil, "", err
	}
	prices, err := t.History()
	return prices, indexLabel(ctx, client, c.index), err
}
