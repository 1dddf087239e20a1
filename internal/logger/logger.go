// Package logger is the process-wide slog setup plus the helpers the
// services, repositories and gateway adapters use for tracing calls.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

// Initialize installs the process logger writing to stdout.
func Initialize(level, format string) {
	Setup(os.Stdout, level, format)
}

// Setup installs a logger writing to w and returns it. Unknown levels fall
// back to info; any format other than "json" is text.
func Setup(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var h slog.Handler = slog.NewTextHandler(w, opts)
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(h).With("app", "wheelhub")
	current.Store(l)
	slog.SetDefault(l)
	return l
}

func parseLevel(s string) slog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func get() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return Setup(os.Stdout, "info", "text")
}

func Debug(msg string, args ...any) { get().Debug(msg, args...) }
func Info(msg string, args ...any) { get().Info(msg, args...) }
func Warn(msg string, args ...any) { get().Warn(msg, args...) }
func Error(msg string, args ...any) { get().Error(msg, args...) }

// WithBooking scopes log lines to one booking session and its payment correlation id.
func WithBooking(sessionKey, correlationID string) *slog.Logger {
	return get().With("session", sessionKey, "correlation_id", correlationID)
}

// StateTransition records a reconciliation state change at debug level.
func StateTransition(ctx context.Context, sessionKey, from, to string, args ...any) {
	get().DebugContext(ctx, "⇢ Reconciliation state changed", append([]any{"session", sessionKey, "from", from, "to", to}, args...)...)
}

func EnterMethod(method string, args ...any) {
	get().Debug("→ Method entered", append([]any{"method", method, "event", "enter"}, args...)...)
}

func ExitMethod(method string, args ...any) {
	get().Debug("← Method exited", append([]any{"method", method, "event", "exit"}, args...)...)
}

func ExitMethodWithError(method string, err error, args ...any) {
	get().Error("← Method exited with error", append([]any{"method", method, "event", "exit", "error", err}, args...)...)
}

// DatabaseCall and DatabaseResult bracket a repository query.
func DatabaseCall(operation, query string, args ...any) {
	get().Debug("→ Database call", append([]any{"operation", operation, "query", query}, args...)...)
}

func DatabaseResult(operation string, rowsAffected int64, err error, args ...any) {
	attrs := append([]any{"operation", operation, "rows_affected", rowsAffected}, args...)
	result(err, "Database call", attrs)
}

// ExternalServiceCall and ExternalServiceResult bracket a gateway, mail or push call.
func ExternalServiceCall(service, operation string, args ...any) {
	get().Debug("→ External service call", append([]any{"service", service, "operation", operation}, args...)...)
}

func ExternalServiceResult(service, operation string, err error, args ...any) {
	attrs := append([]any{"service", service, "operation", operation}, args...)
	result(err, "External service call", attrs)
}

func result(err error, what string, attrs []any) {
	if err != nil {
		get().Error("← "+what+" failed", append(attrs, "error", err)...)
		return
	}
	get().Debug("← "+what+" succeeded", attrs...)
}
