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

type evolutionCmd struct {
	statement string
	activity  string
	closed    string
	precision string
	json      bool
}

func (*evolutionCmd) Name() string     { return "evolution" }
func (*evolutionCmd) Synopsis() string { return "portfolio value per open position and realized profits" }
func (*evolutionCmd) Usage() string {
	return `dash evolution -statement <file.xlsx> [-precision D|W|M|Q|Y] [-json]
dash evolution -activity <file.csv> [-closed <file.csv>] [-precision D|W|M|Q|Y] [-json]

  Values, day by day, the positions still open at their daily close, fetched
  from the backend, and cumulates the profits of the closed positions.
`
}

func (c *evolutionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.statement, "statement", "", "statement .xlsx `file` with both sheets")
	f.StringVar(&c.activity, "activity", "", "account activity CSV `file`")
	f.StringVar(&c.closed, "closed", "", "closed positions CSV `file`")
	f.StringVar(&c.precision, "precision", "M", "period of the history rows: D, W, M, Q or Y")
	f.BoolVar(&c.json, "json", false, "print the daily evolution as JSON")
}

func (c *evolutionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := date.ParsePeriod(c.precision)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var (
		acts   []stockdash.Activity
		closed []stockdash.ClosedPosition
		status subcommands.ExitStatus
	)
	switch {
	case c.statement != "":
		var s *stockdash.Statement
		if s, status = decodeStatement(c.statement); status != subcommands.ExitSuccess {
			return status
		}
		acts, closed = s.Activities, s.Closed
	case c.activity != "":
		if acts, status = decodeActivities(c.activity); status != subcommands.ExitSuccess {
			return status
		}
		if c.closed != "" {
			if closed, status = decodeClosedPositions(c.closed); status != subcommands.ExitSuccess {
				return status
			}
		}
	default:
		fmt.Fprintln(os.Stderr, "Error: -statement or -activity is required")
		return subcommands.ExitUsageError
	}

	client, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	e, err := stockdash.LoadEvolution(ctx, client, acts, closed, date.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.json {
		return encodeJSON(e)
	}
	printMarkdown(renderer.EvolutionMarkdown(e, period))
	return subcommands.ExitSuccess
}
