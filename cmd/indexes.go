package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockdash"
	"github.com/etnz/stockdash/indexes"
	"github.com/etnz/stockdash/renderer"
	"github.com/google/subcommands"
)

// indexStore holds the index options for the lifetime of the command.
var indexStore indexes.Store

type indexesCmd struct {
	file string
	json bool
}

func (*indexesCmd) Name() string     { return "indexes" }
func (*indexesCmd) Synopsis() string { return "list the indexes a portfolio can be compared to" }
func (*indexesCmd) Usage() string {
	return `dash indexes [-file <top_indexes.csv>] [-json] [<symbol>...]

  Lists the index options, read from -file or fetched from the backend.
  With symbols, only prints the options of those symbols.
`
}

func (c *indexesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "\"symbol,name\" CSV `file`, fetched from the backend by default")
	f.BoolVar(&c.json, "json", false, "print the options as JSON")
}

func (c *indexesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := indexStore.Load(ctx, c.fetcher()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	options := indexStore.Options()
	if f.NArg() > 0 {
		options = options[:0]
		for _, symbol := range f.Args() {
			o, ok := indexStore.Lookup(symbol)
			if !ok {
				fmt.Fprintf(os.Stderr, "Error: unknown index %q\n", symbol)
				return subcommands.ExitFailure
			}
			options = append(options, o)
		}
	}

	if c.json {
		return encodeJSON(options)
	}
	printMarkdown(renderer.IndexesMarkdown(options))
	return subcommands.ExitSuccess
}

func (c *indexesCmd) fetcher() indexes.Fetcher {
	if c.file != "" {
		return func(context.Context) ([]indexes.Option, error) {
			r, err := openFile(c.file)
			if err != nil {
				return nil, err
			}
			defer r.Close()
			return indexes.Parse(r)
		}
	}
	return func(ctx context.Context) ([]indexes.Option, error) {
		client, err := newClient()
		if err != nil {
			return nil, err
		}
		return client.TopIndexes(ctx)
	}
}

// indexLabel returns the display name of an index symbol, the symbol itself
// when the backend does not know it.
func indexLabel(ctx context.Context, client *stockdash.Client, symbol string) string {
	if err := indexStore.Load(ctx, client.TopIndexes); err != nil {
		return symbol
	}
	if o, ok := indexStore.Lookup(symbol); ok {
		return o.Label
	}
	return symbol
}
