// File: internal/infra/logging/logging.go
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"homework-status-bot/internal/config"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a zerolog logger configured from config.
// Output goes to stdout and, when cfg.File is set, to an append-only rotating file.
// Supports "trace" | "debug" | "info" | "warn" | "error" levels and "json" | "console" formats.
// The returned closer flushes the file sink and must be closed on shutdown.
func New(cfg config.LogConfig, dev bool) (*zerolog.Logger, io.Closer, error) {
	var closer io.Closer = nopCloser{}
	var out io.Writer = os.Stdout

	if cfg.File != "" {
		if dir := filepath.Dir(cfg.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("log dir: %w", err)
			}
		}
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		out = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	logger := NewWithWriter(out, cfg, dev)
	return logger, closer, nil
}

// NewWithWriter builds the logger on top of an arbitrary writer.
func NewWithWriter(out io.Writer, cfg config.LogConfig, dev bool) *zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if strings.ToLower(cfg.Format) == "console" || dev {
		out = LineWriter(out)
	}
	base := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &base
}

// LineWriter renders events as "timestamp, LEVEL, message key=value..." lines.
func LineWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: time.RFC3339,
		FormatTimestamp: func(i interface{}) string {
			return fmt.Sprintf("%v,", i)
		},
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("%v,", i))
		},
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type ctxKey string

const (
	ctxInstanceID ctxKey = "instance_id"
	ctxCycleID    ctxKey = "cycle_id"
)

// With attaches the instance and cycle ids found in ctx.
func With(ctx context.Context, base *zerolog.Logger) *zerolog.Logger {
	l := base.With()
	if v, ok := ctx.Value(ctxInstanceID).(string); ok {
		l = l.Str(string(ctxInstanceID), v)
	}
	if v, ok := ctx.Value(ctxCycleID).(string); ok {
		l = l.Str(string(ctxCycleID), v)
	}
	logger := l.Logger()
	return &logger
}

// TraceDuration logs start and end with elapsed duration at TRACE level.
// Usage: defer logging.TraceDuration(logger, "StatusWorker.cycle")()
func TraceDuration(logger *zerolog.Logger, name string) func() {
	start := time.Now()
	logger.Trace().Str("method", name).Msg("start")
	return func() {
		logger.Trace().Str("method", name).Dur("duration", time.Since(start)).Msg("finish")
	}
}

// Redact hides secrets when not in dev; keep short/preview.
func Redact(s string, dev bool) string {
	if dev {
		return s
	}
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "..." + s[len(s)-2:]
}

func WithInstanceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxInstanceID, id)
}

func WithCycleID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxCycleID, id)
}
