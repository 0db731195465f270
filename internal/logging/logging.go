package logging

import (
	"context"
	"io"
	"log/slog"
)

const RequestIDKey = "request_id"

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id stored in ctx, or an empty string.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// contextHandler adds the request id found in the record's context to every record.
type contextHandler struct {
	handler slog.Handler
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error { //nolint:gocritic // slog.Handler interface
	if id := RequestID(ctx); id != "" {
		record.AddAttrs(slog.String(RequestIDKey, id))
	}

	return h.handler.Handle(ctx, record)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{handler: h.handler.WithGroup(name)}
}

// NewHandler wraps handler so records logged with a request context carry the request id.
func NewHandler(handler slog.Handler) slog.Handler {
	return &contextHandler{handler: handler}
}

// NewJSONLogger returns the service logger: JSON records on w at level, tagged with version.
func NewJSONLogger(w io.Writer, level slog.Leveler, version string) *slog.Logger {
	return slog.New(NewHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))).With(
		slog.String("version", version),
	)
}
