// Package logger is the structured logging facade used across the service.
// It wraps log/slog and adds the two error flavours the service reports:
// business errors (caller mistakes, logged at warn) and internal errors.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// LevelCritical sits above slog.LevelError and marks failures that stop the
// process.
const LevelCritical = slog.Level(12)

type Format string

const (
	FormatJSON   Format = "json"
	FormatText   Format = "text"
	FormatPretty Format = "pretty"
)

type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
	Critical(message string, args ...any)
	BusinessError(message string, err error, args ...any)
	InternalError(message string, err error, args ...any)
	With(args ...any) Logger
}

type Options struct {
	Level  slog.Level
	Format Format
	Output io.Writer
}

// OptionsFromEnv reads LOG_LEVEL and LOG_FORMAT. Without LOG_LEVEL the
// development environment logs at debug.
func OptionsFromEnv() Options {
	return Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL"), os.Getenv("ENV")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		Output: os.Stdout,
	}
}

func NewFromEnv() Logger {
	return New(OptionsFromEnv())
}

func New(opts Options) Logger {
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	return &slogLogger{base: slog.New(newHandler(output, opts.Level, opts.Format))}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return New(Options{Level: LevelCritical + 1, Format: FormatText, Output: io.Discard})
}

func newHandler(output io.Writer, level slog.Level, format Format) slog.Handler {
	switch format {
	case FormatPretty:
		return tint.NewHandler(output, &tint.Options{
			Level:       level,
			TimeFormat:  time.Kitchen,
			ReplaceAttr: renameCritical,
		})
	case FormatText:
		return slog.NewTextHandler(output, &slog.HandlerOptions{Level: level, ReplaceAttr: renameCritical})
	default:
		return slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level, ReplaceAttr: renameCritical})
	}
}

type slogLogger struct {
	base *slog.Logger
}

func (l *slogLogger) Debug(message string, args ...any) { l.base.Debug(message, args...) }
func (l *slogLogger) Info(message string, args ...any)  { l.base.Info(message, args...) }
func (l *slogLogger) Warn(message string, args ...any)  { l.base.Warn(message, args...) }
func (l *slogLogger) Error(message string, args ...any) { l.base.Error(message, args...) }

func (l *slogLogger) Critical(message string, args ...any) {
	l.base.Log(context.Background(), LevelCritical, message, args...)
}

// BusinessError logs a rejected request at warn. A nil err logs nothing.
func (l *slogLogger) BusinessError(message string, err error, args ...any) {
	l.logErr(slog.LevelWarn, message, err, args)
}

// InternalError logs an unexpected failure at error. A nil err logs nothing.
func (l *slogLogger) InternalError(message string, err error, args ...any) {
	l.logErr(slog.LevelError, message, err, args)
}

func (l *slogLogger) logErr(level slog.Level, message string, err error, args []any) {
	if err == nil {
		return
	}
	l.base.Log(context.Background(), level, message, append([]any{"err", err}, args...)...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{base: l.base.With(args...)}
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying log.
func NewContext(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

// FromContext returns the logger stored by NewContext, or fallback.
func FromContext(ctx context.Context, fallback Logger) Logger {
	if log, ok := ctx.Value(contextKey{}).(Logger); ok && log != nil {
		return log
	}
	return fallback
}

func ParseLevel(value, env string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "critical", "fatal":
		return LevelCritical
	case "info":
		return slog.LevelInfo
	}
	if strings.EqualFold(strings.TrimSpace(env), "development") {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// ParseFormat falls back to JSON for anything unrecognised.
func ParseFormat(value string) Format {
	switch format := Format(strings.ToLower(strings.TrimSpace(value))); format {
	case FormatText, FormatPretty:
		return format
	default:
		return FormatJSON
	}
}

func renameCritical(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.LevelKey {
		return attr
	}
	if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelCritical {
		attr.Value = slog.StringValue("CRITICAL")
	}
	return attr
}
