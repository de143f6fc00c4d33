package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todos/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError marks mistakes in how the command was invoked.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usage(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

// usageArgs tags positional-argument errors as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usage(fn(cmd, args))
	}
}

// Run executes the command tree with args and returns an exit code
// (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return exitCode(cmd.ExecuteContext(ctx))
}

func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	ui.Fail(err.Error())
	var ue *usageError
	if errors.As(err, &ue) {
		ui.Hint("run 'todos --help' for usage")
		return ExitUsage
	}
	return ExitError
}
