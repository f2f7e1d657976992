// Package logging routes diagnostics to stderr or a log file. Stdout is the
// protocol channel read by rofi and must never receive log output.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var (
	mu           sync.Mutex
	traceEnabled bool
	logger       = newLogger(os.Stderr)
	logFile      *os.File
)

func newLogger(out *os.File) zerolog.Logger {
	if term.IsTerminal(int(out.Fd())) {
		return zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Logger()
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

// Configure redirects log output to the given file path. An empty path keeps
// the default stderr destination. Directories are created when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to open log file: %v\n", err)
		return
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logger = newLogger(f)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// Trace emits a structured debug entry when tracing is enabled.
func Trace(event string, payload map[string]any) {
	mu.Lock()
	enabled := traceEnabled
	l := logger
	mu.Unlock()
	if !enabled {
		return
	}
	l.Debug().Str("event", event).Fields(payload).Msg("")
}

// Error logs an error unconditionally.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	l := logger
	mu.Unlock()
	l.Error().Err(err).Msg("")
}
