package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/stockdash"
	"github.com/google/subcommands"
)

// isWorkbook reports whether name is a statement workbook rather than the
// CSV export of one of its sheets.
func isWorkbook(name string) bool { return strings.EqualFold(filepath.Ext(name), ".xlsx") }

// decodeStatement reads a statement workbook.
func decodeStatement(name string) (*stockdash.Statement, subcommands.ExitStatus) {
	r, err := openFile(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	defer r.Close()
	s, err := stockdash.DecodeStatement(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", name, err)
		return nil, subcommands.ExitFailure
	}
	return s, subcommands.ExitSuccess
}

// decodeActivities reads the account activities of a file named by -activity.
func decodeActivities(name string) ([]stockdash.Activity, subcommands.ExitStatus) {
	if name == "" {
		fmt.Fprintln(os.Stderr, "Error: -activity is required")
		return nil, subcommands.ExitUsageError
	}
	if isWorkbook(name) {
		s, status := decodeStatement(name)
		if status != subcommands.ExitSuccess {
			return nil, status
		}
		return s.Activities, status
	}
	r, err := openFile(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	defer r.Close()
	acts, err := stockdash.DecodeActivities(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", name, err)
		return nil, subcommands.ExitFailure
	}
	return acts, subcommands.ExitSuccess
}

// decodeClosedPositions reads the closed positions of a file named by -closed.
func decodeClosedPositions(name string) ([]stockdash.ClosedPosition, subcommands.ExitStatus) {
	if name == "" {
		fmt.Fprintln(os.Stderr, "Error: -closed is required")
		return nil, subcommands.ExitUsageError
	}
	if isWorkbook(name) {
		s, status := decodeStatement(name)
		if status != subcommands.ExitSuccess {
			return nil, status
		}
		return s.Closed, status
	}
	r, err := openFile(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	defer r.Close()
	positions, err := stockdash.DecodeClosedPositions(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", name, err)
		return nil, subcommands.ExitFailure
	}
	return positions, subcommands.ExitSuccess
}
