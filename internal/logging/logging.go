// Package logging builds the slog logger shared by grove commands.
package logging

import (
	"io"
	"log/slog"
)

// Options selects the handler New builds.
type Options struct {
	Level slog.Level
	// JSON selects slog.JSONHandler, used alongside --json so log records
	// stay machine-readable.
	JSON bool
}

// New returns a logger writing to w at the given level.
func New(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
