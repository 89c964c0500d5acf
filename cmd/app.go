// Package cmd implements the dash command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/stockdash"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
)

// Commands returns all the dash subcommands by group.
func Commands() map[string][]subcommands.Command {
	return map[string][]subcommands.Command{
		"demo": {
			&randCmd{},
			&seriesCmd{},
		},
		"statements": {
			&networthCmd{},
			&profitsCmd{},
			&compareCmd{},
			&evolutionCmd{},
		},
		"backend": {
			&indexesCmd{},
			&detailsCmd{},
			&compareGrowthCmd{},
			&searchCmd{},
			&cacheStatsCmd{},
		},
		"help": {
			&topicCmd{},
		},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	groups := Commands()
	for _, group := range slices.Sorted(maps.Keys(groups)) {
		for _, cmd := range groups[group] {
			c.Register(cmd, group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var apiURL = flag.String("api", os.Getenv("DASH_API"), "dashboard backend address, defaults to $DASH_API")
var cacheDir = flag.String("cache", filepath.Join(os.TempDir(), "dash"), "directory of the daily response cache, empty to disable it")

// stdout is where commands print their results.
var stdout io.Writer = os.Stdout

// newClient returns a backend client configured from the global flags.
func newClient() (*stockdash.Client, error) {
	if *apiURL == "" {
		return nil, fmt.Errorf("missing backend address: use -api or set DASH_API")
	}
	c := stockdash.NewClient(*apiURL)
	if *cacheDir == "" {
		return c, nil
	}
	if err := os.MkdirAll(*cacheDir, 0o755); err != nil {
		log.Printf("cache disabled: %v", err)
		return c, nil
	}
	return c.WithDailyCache(*cacheDir), nil
}

// printMarkdown renders md for the terminal, or prints it as is when the
// output is not a terminal.
func printMarkdown(md string) {
	if f, ok := stdout.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	log.Printf("cannot render markdown: %v", err)
	fmt.Fprint(stdout, md)
}

// openFile opens a named input file, "-" is the standard input.
func openFile(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}
