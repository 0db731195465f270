package middlewares

import "net/http"

const unmatchedRoute = "unmatched"

// RequestObserver records served requests.
type RequestObserver interface {
	ObserveRequest(route string, statusCode int)
}

// MetricsMiddleware counts requests by mux pattern and status code.
type MetricsMiddleware struct {
	observer RequestObserver
}

func (m *MetricsMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = unmatchedRoute
		}

		m.observer.ObserveRequest(route, rec.statusCode())
	})
}

func NewMetricsMiddleware(observer RequestObserver) Middleware {
	return &MetricsMiddleware{observer: observer}
}
