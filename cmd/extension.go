package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
)

const (
	EnvAPI   = "DASH_API"
	EnvCache = "DASH_CACHE"
)

// IsCommand reports whether name is a built-in dash subcommand.
func IsCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, commands := range Commands() {
		for _, cmd := range commands {
			if cmd.Name() == name {
				return true
			}
		}
	}
	return false
}

// RunExtension attempts to find and execute an external dash-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// Global flags are passed to the extension as environment variables.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "dash-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", name, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), EnvAPI+"="+*apiURL, EnvCache+"="+*cacheDir)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
