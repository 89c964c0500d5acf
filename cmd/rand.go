package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/stockdash"
	"github.com/etnz/stockdash/seq"
	"github.com/google/subcommands"
)

type randCmd struct {
	seed     string
	min, max float64
	n        int
	decimals int
}

func (*randCmd) Name() string     { return "rand" }
func (*randCmd) Synopsis() string { return "print reproducible random draws" }
func (*randCmd) Usage() string {
	return `dash rand [-seed <seed>] [-min <min>] [-max <max>] [-n <count>]

  Prints draws of the seeded generator, one per line. Without -seed the
  generator is seeded from the current time.
`
}

func (c *randCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.seed, "seed", "", "initial seed, the current time in milliseconds by default")
	f.Float64Var(&c.min, "min", 0, "lower bound of the draws")
	f.Float64Var(&c.max, "max", 1, "upper bound of the draws (excluded)")
	f.IntVar(&c.n, "n", 1, "number of draws")
	f.IntVar(&c.decimals, "decimals", -1, "round the draws to that many decimals, no rounding when negative")
}

func (c *randCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	g, err := newGenerator(c.seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	for range c.n {
		v := g.Next(c.min, c.max)
		if c.decimals >= 0 {
			v = stockdash.RoundPrecision(v, c.decimals)
		}
		fmt.Fprintln(stdout, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return subcommands.ExitSuccess
}

// newGenerator returns a generator seeded with seed, or from the current
// time when seed is empty.
func newGenerator(seed string) (*seq.Generator, error) {
	if seed == "" {
		return seq.New(), nil
	}
	s, err := strconv.ParseInt(seed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q: %w", seed, err)
	}
	return seq.NewSeeded(s), nil
}
