// Package logger wires slog to the configured sinks. File output rotates
// via lumberjack so a long-running session can't fill the disk. A terminal
// front end keeps the console sink off; log lines through the middle of
// the game viewport help nobody.
package logger

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tmorvan/netherhall/internal/config"
)

// Setup configures the global slog logger and returns it. The returned
// closer flushes the rotating file sink.
func Setup(cfg *config.Config) (*slog.Logger, func() error) {
	var sinks []io.Writer
	closer := func() error { return nil }

	if cfg.Logging.ConsoleEnabled {
		sinks = append(sinks, os.Stderr)
	}
	if cfg.Logging.FileEnabled {
		lj := &lumberjack.Logger{
			Filename:   cfg.Logging.FilePath,
			MaxSize:    cfg.Logging.FileMaxSizeMB,
			MaxBackups: cfg.Logging.FileMaxBackups,
			MaxAge:     cfg.Logging.FileMaxAgeDays,
		}
		sinks = append(sinks, lj)
		closer = lj.Close
	}
	if len(sinks) == 0 {
		sinks = append(sinks, io.Discard)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(io.MultiWriter(sinks...), opts)
	} else {
		handler = slog.NewTextHandler(io.MultiWriter(sinks...), opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log, closer
}

// WithSession tags a logger with the session it serves.
func WithSession(log *slog.Logger, sessionID string) *slog.Logger {
	return log.With("session_id", sessionID)
}
