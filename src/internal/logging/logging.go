// Package logging builds the zerolog logger used by the CLI. Logs go to
// stderr so stdout carries only the citation.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Options selects level and format for New.
type Options struct {
	// Level is trace, debug, info, warn, error or disabled. Unknown values mean warn.
	Level string
	// Format is console (default) or json.
	Format string
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) zerolog.Logger {
	out := w
	if !strings.EqualFold(opts.Format, "json") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}
	}
	return zerolog.New(out).With().Timestamp().Logger().Level(ParseLevel(opts.Level))
}

// ParseLevel converts a level name to zerolog.Level.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}
