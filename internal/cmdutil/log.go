// internal/cmdutil/log.go
package cmdutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Logger wraps slog.Logger with the field names the pipeline phases use.
type Logger struct {
	*slog.Logger
}

// NewLogger builds a text or JSON logger writing to dst at the given level
// ("debug", "info", "warn", "error").
func NewLogger(dst io.Writer, level, format string) (*Logger, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lv}
	var h slog.Handler
	switch format {
	case "", "text":
		h = slog.NewTextHandler(dst, opts)
	case "json":
		h = slog.NewJSONHandler(dst, opts)
	default:
		return nil, fmt.Errorf("log format %q (want text | json)", format)
	}
	return &Logger{Logger: slog.New(h)}, nil
}

// NoopLogger discards everything. Used for --quiet.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))}
}

// WithPhase tags every record with the pipeline phase.
func (l *Logger) WithPhase(phase string) *Logger {
	return &Logger{Logger: l.Logger.With("phase", phase)}
}

// LogPhase logs the end of a pipeline phase.
func (l *Logger) LogPhase(ctx context.Context, start time.Time, err error, attrs ...any) {
	attrs = append(attrs, "elapsed", time.Since(start).Round(time.Millisecond))
	if err != nil {
		l.ErrorContext(ctx, "phase failed", append(attrs, "error", err)...)
		return
	}
	l.InfoContext(ctx, "phase completed", attrs...)
}
