package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockdash"
	"github.com/google/subcommands"
)

type cacheStatsCmd struct{}

func (*cacheStatsCmd) Name() string     { return "cache-stats" }
func (*cacheStatsCmd) Synopsis() string { return "print the backend cache statistics" }
func (*cacheStatsCmd) Usage() string {
	return `dash cache-stats

  Prints the statistics of the backend response cache as JSON. It bypasses
  the local daily cache.
`
}

func (*cacheStatsCmd) SetFlags(*flag.FlagSet) {}

func (*cacheStatsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if *apiURL == "" {
		fmt.Fprintln(os.Stderr, "Error: missing backend address: use -api or set DASH_API")
		return subcommands.ExitUsageError
	}
	stats, err := stockdash.NewClient(*apiURL).CacheStats(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return encodeJSON(stats)
}
