// Package logging builds the structured logger used by batch runs and the
// command-line tool. Output goes to a rotating file when one is
// configured and to a fallback writer otherwise.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"

	"github.com/katalvlaran/voxlab"
)

// ErrInvalidLevel is returned for an unknown log level name.
var ErrInvalidLevel = fmt.Errorf("logging: %w: invalid level", voxlab.ErrConfiguration)

// Config is the [logging] section of a job file.
type Config struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_log_size"` // megabytes before rotation
	MaxAgeDays int    `toml:"max_log_age"`  // days rotated files are kept
	Level      string `toml:"level"`        // debug, info, warn, error
	JSON       bool   `toml:"json"`
}

// ParseLevel maps a case-insensitive level name to a slog.Level. The empty
// string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// Logger is a slog.Logger together with the file it writes to, if any.
type Logger struct {
	*slog.Logger
	file *lumberjack.Logger
}

// New builds a Logger from c. A nil c or an empty File writes to fallback
// (os.Stderr when fallback is nil).
func New(c *Config, fallback io.Writer) (*Logger, error) {
	if c == nil {
		c = &Config{}
	}
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	l := &Logger{}
	w := fallback
	if w == nil {
		w = os.Stderr
	}
	if c.File != "" {
		l.file = &lumberjack.Logger{
			Filename: c.File,
			MaxSize:  c.MaxSizeMB,
			MaxAge:   c.MaxAgeDays,
		}
		w = l.file
	}
	hopts := &slog.HandlerOptions{Level: level}
	if c.JSON {
		l.Logger = slog.New(slog.NewJSONHandler(w, hopts))
	} else {
		l.Logger = slog.New(slog.NewTextHandler(w, hopts))
	}

	return l, nil
}

// Close releases the log file. It is a no-op for fallback writers.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
