// Package log configures [log/slog] for pgn.
//
// The "text" format writes human-friendly, colored output through
// [github.com/charmbracelet/log]. The "logfmt" and "json" formats use the
// standard library handlers.
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"go.opentelemetry.io/otel/trace"

	charmlog "github.com/charmbracelet/log"
)

type (
	Format string
	Level  string

	contextKey string
)

const (
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
	FormatText   Format = "text"

	LevelError Level = "error"
	LevelWarn  Level = "warn"
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"

	loggerContextKey contextKey = "logger"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnknownLogLevel  = errors.New("unknown log level")
	ErrUnknownLogFormat = errors.New("unknown log format")

	AllFormats = []string{
		string(FormatJSON),
		string(FormatLogfmt),
		string(FormatText),
	}
	AllLevels = []string{
		string(LevelError),
		string(LevelWarn),
		string(LevelInfo),
		string(LevelDebug),
	}
)

// CreateHandlerWithStrings creates a [slog.Handler] from flag values.
func CreateHandlerWithStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	logLvl, err := GetLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	logFmt, err := GetFormat(logFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return CreateHandler(w, logLvl, logFmt), nil
}

// CreateHandler creates a [slog.Handler] writing to w. Unknown formats fall
// back to [FormatText]. Source locations are only reported at debug level.
func CreateHandler(w io.Writer, logLvl slog.Level, logFmt Format) slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: logLvl <= slog.LevelDebug,
		Level:     logLvl,
	}

	switch logFmt {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatLogfmt:
		return slog.NewTextHandler(w, opts)
	case FormatText:
	}

	return newCharmLogHandler(w, logLvl)
}

var levels = map[Level]slog.Level{
	LevelError: slog.LevelError,
	LevelWarn:  slog.LevelWarn,
	"warning":  slog.LevelWarn,
	LevelInfo:  slog.LevelInfo,
	LevelDebug: slog.LevelDebug,
}

// GetLevel parses a level name, case-insensitively.
func GetLevel(level string) (slog.Level, error) {
	lvl, ok := levels[Level(strings.ToLower(level))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
	}

	return lvl, nil
}

// GetFormat parses a format name, case-insensitively.
func GetFormat(format string) (Format, error) {
	logFmt := Format(strings.ToLower(format))
	if !slices.Contains(AllFormats, string(logFmt)) {
		return "", fmt.Errorf("%w: %q", ErrUnknownLogFormat, format)
	}

	return logFmt, nil
}

func newCharmLogHandler(w io.Writer, level slog.Level) slog.Handler {
	//nolint:gosec // G115: input from GetLevel.
	lvl := int32(level)

	logger := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(lvl),
		Formatter:       charmlog.TextFormatter,
		ReportTimestamp: true,
		ReportCaller:    level <= slog.LevelDebug,
		TimeFormat:      time.StampMilli,
	})
	logger.SetColorProfile(termenv.ColorProfile())

	return logger
}

// NewContext returns a copy of ctx that carries logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// WithContext returns the logger stored in ctx, or the default logger.
// When ctx carries a valid span, the logger is annotated with a short trace ID.
func WithContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}

	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		traceID := span.SpanContext().TraceID().String()

		return slog.With(slog.String("trace_id", traceID[:min(len(traceID), 8)]))
	}

	return slog.Default()
}
