// Package cli implements the reposcout command-line interface.
//
// This package provides commands for searching GitHub repositories, previewing
// the generated search query, managing the saved GitHub login, and inspecting
// configuration. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - search: Run a search and print the results with their languages
//   - query: Print the query a search would send, without sending it
//   - auth: Log in with the GitHub device flow, log out, show status
//   - config: Show the config file path and effective settings
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging; otherwise the
// level comes from the config file. Loggers are passed through
// context.Context.
//
// # Example
//
//	import "github.com/matzehuels/reposcout/internal/cli"
//
//	func main() {
//	    os.Exit(cli.Execute(ctx, os.Args[1:]))
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Found 10 repositories (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// timingHooks logs per-request timings of a search at debug level.
type timingHooks struct {
	logger *log.Logger
}

func (h timingHooks) OnSearchStart(_ context.Context, searchID, query string) {
	h.logger.Debug("search started", "search_id", searchID, "q", query)
}

func (h timingHooks) OnEnrichComplete(_ context.Context, searchID, languagesURL string, d time.Duration, err error) {
	h.logger.Debug("languages fetched", "search_id", searchID, "url", languagesURL,
		"elapsed", d.Round(time.Millisecond), "ok", err == nil)
}

func (h timingHooks) OnSearchComplete(_ context.Context, searchID string, results int, d time.Duration, err error) {
	h.logger.Debug("search finished", "search_id", searchID, "results", results,
		"elapsed", d.Round(time.Millisecond), "ok", err == nil)
}
