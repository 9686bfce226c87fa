// Package log builds the process logger.
//
// The stdio transport owns stdout, so log lines go to stderr or to a file.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds a JSON slog logger with the given level writing to w.
func New(level string, w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})

	return slog.New(handler)
}

// ParseLevel maps a textual level to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Output opens logFile for appending, or returns stderr when logFile is empty.
// The returned func closes the file.
func Output(logFile string) (io.Writer, func(), error) {
	if logFile == "" {
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("os.OpenFile failed: %w", err)
	}

	return f, func() {
		if err := f.Close(); err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("f.Close failed: %w", err))
		}
	}, nil
}
