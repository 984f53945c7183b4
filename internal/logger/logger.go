// =============================================================================
// FBA Settlement Analyzer - Logger Module
// =============================================================================
//
// This module constructs the structured logger used across the application.
// Logging goes to the console by default; every run is tagged with a unique
// run ID so multiple analyzer invocations can be told apart in captured logs.
//
// =============================================================================

package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New creates the application logger.
//
// PARAMETERS:
//   - level: The minimum log level ("debug", "info", "warn", "error").
//   - verbose: When true, forces the level to debug regardless of config.
//
// RETURNS:
//   - A zerolog.Logger writing human-readable output to stdout, tagged with
//     a fresh run ID.
func New(level string, verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return build(output, level, verbose)
}

// NewWithWriter creates a logger writing to a custom destination.
// Used by tests to capture log output.
func NewWithWriter(w io.Writer, level string, verbose bool) zerolog.Logger {
	return build(w, level, verbose)
}

func build(w io.Writer, level string, verbose bool) zerolog.Logger {
	lvl := parseLevel(level)
	if verbose {
		lvl = zerolog.DebugLevel
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}

// parseLevel maps a config string to a zerolog level.
// Unrecognized values fall back to info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
