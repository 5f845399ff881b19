package logger

import (
	"context"
	"log/slog"
	"os"
	"time"
)

type contextKey string

const traceIDKey contextKey = "trace_id"

// GetTraceID retrieves the trace id from context, empty string if missing.
func GetTraceID(ctx context.Context) string {
	if v := ctx.Value(traceIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithTraceID returns a new context carrying the given trace id.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// Init installs the global slog JSON logger.
func Init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	})
	slog.SetDefault(slog.New(handler))
}

func withTrace(ctx context.Context, args []any) []any {
	if id := GetTraceID(ctx); id != "" {
		return append(args, "trace_id", id)
	}
	return args
}

// CtxInfo logs an info message with the context's trace id attached.
func CtxInfo(ctx context.Context, msg string, args ...any) {
	slog.InfoContext(ctx, msg, withTrace(ctx, args)...)
}

// CtxError logs an error message with the context's trace id attached.
func CtxError(ctx context.Context, msg string, args ...any) {
	slog.ErrorContext(ctx, msg, withTrace(ctx, args)...)
}
