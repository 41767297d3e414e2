// Package logging builds the zerolog loggers used by the command-line tools
// and examples.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel = "MPSSE_LOG_LEVEL"
	EnvLogJSON  = "MPSSE_LOG_JSON"
)

// Options controls logger construction. Environment variables override them.
type Options struct {
	// Level is a zerolog level name; empty means info
	Level string

	// JSON selects JSON output instead of the console writer
	JSON bool

	// Out is the destination (default: os.Stderr)
	Out io.Writer
}

// New returns a logger tagged with app.
func New(app string, opts Options) zerolog.Logger {
	applyEnvOverrides(&opts)

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	level, ok := ParseLevel(opts.Level)
	if !ok {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Str("app", app).Logger()
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func applyEnvOverrides(opts *Options) {
	if raw := os.Getenv(EnvLogLevel); raw != "" {
		if _, ok := ParseLevel(raw); ok {
			opts.Level = raw
		}
	}
	if v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(EnvLogJSON))); err == nil {
		opts.JSON = v
	}
}
