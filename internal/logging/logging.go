// Package logging builds the application's slog logger. The terminal
// belongs to the TUI, so records go to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options configures New.
type Options struct {
	// Path is the log file. Empty means DefaultPath(); "-" means stderr.
	Path string

	// Level is a slog level name ("debug", "info", "warn", "error").
	// Empty means MINDSPARK_LOG_LEVEL, then "info".
	Level string
}

// DefaultPath returns the log file location: MINDSPARK_LOG if set, else
// $XDG_STATE_HOME/mindspark/mindspark.log, else
// ~/.local/state/mindspark/mindspark.log.
func DefaultPath() (string, error) {
	if p := os.Getenv("MINDSPARK_LOG"); p != "" {
		return p, nil
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "mindspark", "mindspark.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", "mindspark", "mindspark.log"), nil
}

// ParseLevel maps a level name to a slog.Level. Unknown names are an error.
func ParseLevel(name string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(name)))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", name, err)
	}
	return l, nil
}

// New opens the log destination and returns a text logger and a close
// func for the underlying file.
func New(opts Options) (*slog.Logger, func() error, error) {
	levelName := opts.Level
	if levelName == "" {
		levelName = os.Getenv("MINDSPARK_LOG_LEVEL")
	}
	level := slog.LevelInfo
	if levelName != "" {
		l, err := ParseLevel(levelName)
		if err != nil {
			return nil, nil, err
		}
		level = l
	}

	path := opts.Path
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}

	var w io.Writer
	closer := func() error { return nil }
	if path == "-" {
		w = os.Stderr
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = f.Close
	}

	return NewWriter(w, level), closer, nil
}

// NewWriter returns a text logger writing to w at level.
func NewWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
