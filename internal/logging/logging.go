// Package logging holds the process logger. The TUI owns the terminal, so
// log output goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

const defaultLogFile = "nftview.log"

// L is the shared logger. It discards everything until Configure is called.
var L = zerolog.Nop()

// DefaultPath returns the log file under the XDG state directory.
func DefaultPath() string {
	return filepath.Join(xdg.StateHome, "nftview", defaultLogFile)
}

// ParseLevel maps "debug", "info", ... to a zerolog level. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// Configure points L at path (DefaultPath when empty) with the given level.
// Directories are created when missing. The returned closer flushes the file.
func Configure(path string, level zerolog.Level) (io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	L = New(f, level)
	return f, nil
}

// New builds a logger writing JSON lines to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
