package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/andrescamacho/manoria-go/internal/infrastructure/config"
)

// New builds the process logger from the logging section. The returned closer
// releases the log file when output is "file" and is a no-op otherwise.
func New(cfg config.LoggingConfig) (*slog.Logger, func() error, error) {
	w, closer, err := output(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler), closer, nil
}

// ParseLevel maps a config level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func output(cfg config.LoggingConfig) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(cfg.Output) {
	case "stderr":
		return os.Stderr, noop, nil
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, f.Close, nil
	default:
		return os.Stdout, noop, nil
	}
}
