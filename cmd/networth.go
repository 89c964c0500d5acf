package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockdash"
	"github.com/etnz/stockdash/date"
	"github.com/etnz/stockdash/renderer"
	"github.com/google/subcommands"
)

type networthCmd struct {
	activity  string
	precision string
	json      bool
}

func (*networthCmd) Name() string     { return "networth" }
func (*networthCmd) Synopsis() string { return "net worth history from an account activity export" }
func (*networthCmd) Usage() string {
	return `dash networth -activity <file.csv|file.xlsx> [-precision D|W|M|Q|Y] [-json]

  Prints the account balance at the end of every period with activity.
`
}

func (c *networthCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.activity, "activity", "", "account activity CSV or statement .xlsx `file`, - for the standard input")
	f.StringVar(&c.precision, "precision", "D", "period of the points: D, W, M, Q or Y")
	f.BoolVar(&c.json, "json", false, "print the points as JSON")
}

func (c *networthCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := date.ParsePeriod(c.precision)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	acts, status := decodeActivities(c.activity)
	if status != subcommands.ExitSuccess {
		return status
	}

	points := stockdash.NetWorth(acts, period)
	if c.json {
		return encodeJSON(points)
	}
	printMarkdown(renderer.NetWorthMarkdown(points, period))
	return subcommands.ExitSuccess
}

// encodeJSON prints v as indented JSON.
func encodeJSON(v any) subcommands.ExitStatus {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
