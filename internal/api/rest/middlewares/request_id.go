package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/CameronXie/sap-api-layer/internal/logging"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags each request with an id, honouring one sent by the caller, and logs
// the completed request.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

func (m *RequestIDMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := logging.WithRequestID(r.Context(), id)

		rec := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))

		m.logger.InfoContext(
			ctx,
			"request_completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.statusCode(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func NewRequestIDMiddleware(logger *slog.Logger) Middleware {
	return &RequestIDMiddleware{logger: logger}
}
