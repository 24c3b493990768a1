// Package cli implements the ghfetch command-line interface.
//
// The root command takes one or more targets and prints each one next to
// its avatar. Its collaborators are built from the resolved configuration
// (see internal/config): a GitHub client, an avatar renderer writing to
// stdout, and a confirmation prompt on stderr for large "owner/*"
// expansions.
//
// # Logging
//
// Logs go to stderr through charmbracelet/log. --verbose (-v) switches to
// debug level and registers observability hooks that log every HTTP call,
// page and retry.
//
// # Example
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(cli.ExitCode(err))
//	    }
//	}
package cli

import (
	"context"
	"errors"
	"os"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitInterrupt = 130
)

// Execute runs the ghfetch CLI with os.Args and reports failures on stderr.
// Interrupted runs are not reported.
func Execute(ctx context.Context) error {
	c := New(os.Stderr, LogInfo)
	err := c.RootCommand().ExecuteContext(ctx)
	if err != nil && ExitCode(err) != ExitInterrupt {
		printError(c.Err, "%v", err)
	}
	return err
}

// ExitCode maps the error returned by Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupt
	}
	return ExitFailure
}
