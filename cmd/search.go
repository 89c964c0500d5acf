package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stockdash/renderer"
	"github.com/google/subcommands"
)

type searchCmd struct {
	json bool
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "look tickers up by name or symbol" }
func (*searchCmd) Usage() string {
	return `dash search [-json] <query>...

  Lists the tickers matching the query and how they moved today.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the quotes as JSON")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.TrimSpace(strings.Join(f.Args(), " "))
	if query == "" {
		fmt.Fprintln(os.Stderr, "Error: a query is required")
		return subcommands.ExitUsageError
	}
	client, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	quotes, err := client.Search(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.json {
		return encodeJSON(quotes)
	}
	printMarkdown(renderer.SearchMarkdown(query, quotes))
	return subcommands.ExitSuccess
}
