// Command dash is the command line companion of the stock dashboard.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/etnz/stockdash/cmd"
	"github.com/google/subcommands"
)

func main() {
	// exits when the shell asks for completions
	cmd.Completion().Complete("dash")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	if err := cmd.ApplyConfig(flag.CommandLine); err != nil {
		log.Fatal(err)
	}

	if name := flag.Arg(0); name != "" && !cmd.IsCommand(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
