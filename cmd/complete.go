package cmd

import (
	"flag"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/stockdash/docs"
	"github.com/etnz/stockdash/palette"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the dash command line, built
// from the flags of every subcommand.
func Completion() *complete.Command {
	top := &complete.Command{
		Sub: map[string]*complete.Command{"help": {}, "flags": {}, "commands": {}},
		Flags: map[string]complete.Predictor{
			"api":    predict.Something,
			"cache":  predict.Dirs("*"),
			"config": predict.Files("*.yaml"),
		},
	}
	for _, commands := range Commands() {
		for _, cmd := range commands {
			top.Sub[cmd.Name()] = completeCommand(cmd)
		}
	}
	return top
}

func completeCommand(cmd subcommands.Command) *complete.Command {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.SetFlags(fs)

	c := &complete.Command{Flags: make(map[string]complete.Predictor)}
	fs.VisitAll(func(f *flag.Flag) {
		c.Flags[f.Name] = predictFlag(f)
	})
	if cmd.Name() == "topic" {
		if topics, err := docs.All(); err == nil {
			c.Args = predict.Set(append(topics, docs.Index))
		}
	}
	return c
}

// predictFlag guesses the values of a flag from its definition.
func predictFlag(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch {
	case f.Name == "precision":
		return predict.Set{"D", "W", "M", "Q", "Y"}
	case f.Name == "color":
		return predict.Set(slices.Sorted(maps.Keys(palette.Names)))
	case f.Name == "labels":
		return predict.Set{"months", "days"}
	case f.Name == "baseline":
		return predict.Files("*.json")
	case strings.Contains(f.Usage, "CSV") && strings.Contains(f.Usage, ".xlsx"):
		return predict.Or(predict.Files("*.csv"), predict.Files("*.xlsx"))
	case strings.Contains(f.Usage, ".xlsx"):
		return predict.Files("*.xlsx")
	case strings.Contains(f.Usage, "CSV"):
		return predict.Files("*.csv")
	default:
		return predict.Something
	}
}
