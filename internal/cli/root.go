package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	apperrors "github.com/matzehuels/reposcout/pkg/errors"
)

// Exit codes returned by Execute.
const (
	ExitOK        = 0
	ExitError     = 1
	ExitCancelled = 130 // shell convention for SIGINT
)

// Execute runs the CLI with args and returns the process exit code.
// Errors are printed to stderr in their user-facing form.
func Execute(ctx context.Context, args []string) int {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		printErr(os.Stderr, err)
	}
	return ExitCode(err)
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCancelled
	default:
		return ExitError
	}
}

func printErr(w io.Writer, err error) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+apperrors.UserMessage(err))
}
