// Package logging builds the application logger. The terminal belongs to
// the UI, so log output goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const DefaultFileName = "onboard.log"

type Options struct {
	Level string
	File  string
	Debug bool
}

// DefaultPath returns the log file location under the user's state or
// cache directory.
func DefaultPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "onboard", DefaultFileName)
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "onboard", DefaultFileName)
	}
	return filepath.Join(os.TempDir(), DefaultFileName)
}

// New opens the log file and returns a logger writing to it, plus the
// closer for the file. Debug mode switches to the human-readable console
// format in the same file.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	path := opts.File
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return NewWithWriter(f, level, opts.Debug), f, nil
}

// NewWithWriter builds the logger over an arbitrary writer.
func NewWithWriter(w io.Writer, level zerolog.Level, console bool) zerolog.Logger {
	if console {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("app", "onboard").
		Logger()
}
