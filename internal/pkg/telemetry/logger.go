package telemetry

import (
	"context"
	"io"
	"log/slog"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// WithRequestID returns a context carrying the request ID for logging.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the request ID, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ContextHandler is a custom slog.Handler that extracts the request ID
// from the context and adds it as an attribute to every log record.
type ContextHandler struct {
	slog.Handler
}

// Handle adds the request ID attribute before calling the underlying handler.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

// NewContextHandler returns a new slog.Handler that decorates logs with
// the request ID.
func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{Handler: h}
}

// InitLogger initialises the global slog logger with a JSON handler
// decorated with the request ID, writing to w. The TUI passes a log file
// here so records do not fight the terminal for the screen.
func InitLogger(w io.Writer, level slog.Level) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(NewContextHandler(handler))
	slog.SetDefault(logger)
}
