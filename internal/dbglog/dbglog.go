// Package dbglog provides the one shared logger the rest of the
// module uses for fatal diagnostics and optional trace output.
package dbglog

import (
	"log/slog"
	"os"
)

// Logger is the package-level logger. Tests and cmd/vqlite may
// redirect it by assigning a new *slog.Logger built with Configure.
var Logger = Configure(os.Stderr, false)

// Configure builds a text-handler logger writing to w. Debug-level
// messages (those sent through Trace) are emitted only when verbose is
// true or the VQLITE_DEBUG environment variable is set.
func Configure(w *os.File, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose || os.Getenv("VQLITE_DEBUG") != "" {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

// Fatal logs msg and err at the error level and terminates the
// process with exit status 1. Callers in internal/pager and internal/table never call
// this themselves — they return errors and leave the decision of
// what's fatal to cmd/vqlite.
func Fatal(msg string, err error) {
	Logger.Error(msg, "err", err)
	os.Exit(1)
}

// Trace logs a debug-level diagnostic, e.g. a page allocation or a
// leaf split, visible only when VQLITE_DEBUG is set.
func Trace(msg string, args ...any) {
	Logger.Debug(msg, args...)
}
