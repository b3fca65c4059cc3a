// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the zerolog logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/juris-curador/pkg/types"
)

// Logger couples the configured logger with the file it writes to, if any.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// Close releases the log file. It is safe to call on a console-only logger.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// New returns a logger writing to out (normally stderr) in the configured
// format. When cfg.File is set, entries are also appended as JSON to
// cfg.Filename inside logDir.
func New(cfg types.LoggingConfig, logDir string, out io.Writer) (*Logger, error) {
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	l := &Logger{}
	if cfg.File && cfg.Filename != "" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory %s: %w", logDir, err)
		}
		path := filepath.Join(logDir, cfg.Filename)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file %s: %w", path, err)
		}
		l.file = f
		out = zerolog.MultiLevelWriter(out, f)
	}

	l.Logger = zerolog.New(out).With().Timestamp().Logger().Level(ParseLevel(cfg.Level))
	return l, nil
}

// ParseLevel converts a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
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
