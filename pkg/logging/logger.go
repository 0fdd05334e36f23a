// Package logging provides structured logging configuration using zerolog.
//
// The MCP transport owns stdout, so logs go to a file when one is
// configured and to stderr otherwise. Log output must never reach
// stdout or it would corrupt the protocol stream.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output (debug, info, warn, error).
	Level string

	// File is the log file path; empty logs to stderr.
	File string

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool
}

// Setup configures the global zerolog logger and returns it, together
// with a close function for the log file (a no-op when logging to
// stderr).
func Setup(cfg Config) (zerolog.Logger, func() error, error) {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	var output io.Writer = os.Stderr
	closeFn := func() error { return nil }

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("open log file: %w", err)
		}
		output = f
		closeFn = f.Close
	}

	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger, closeFn, nil
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// parseLevel converts a level name to a zerolog.Level.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
