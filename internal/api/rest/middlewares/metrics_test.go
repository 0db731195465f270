package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockObserver struct {
	mock.Mock
}

func (m *mockObserver) ObserveRequest(route string, statusCode int) {
	m.Called(route, statusCode)
}

func TestMetricsMiddleware_Handle(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/GetSalesOrder", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	cases := map[string]struct {
		path          string
		expectedRoute string
		expectedCode  int
	}{
		"explicit status": {path: "/api/GetSalesOrder?num=2", expectedRoute: "GET /api/GetSalesOrder", expectedCode: http.StatusNotFound},
		"implicit status": {path: "/health", expectedRoute: "GET /health", expectedCode: http.StatusOK},
		"no route":        {path: "/unknown", expectedRoute: unmatchedRoute, expectedCode: http.StatusNotFound},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			observer := new(mockObserver)
			observer.On("ObserveRequest", tc.expectedRoute, tc.expectedCode).Return()

			w := httptest.NewRecorder()
			NewMetricsMiddleware(observer).Handle(mux).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, http.NoBody))

			assert.Equal(t, tc.expectedCode, w.Code)
			observer.AssertExpectations(t)
		})
	}
}

type orderRecorder struct {
	name  string
	calls *[]string
}

func (o orderRecorder) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*o.calls = append(*o.calls, o.name)
		next.ServeHTTP(w, r)
	})
}

func TestChain(t *testing.T) {
	var calls []string
	h := Chain(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { calls = append(calls, "handler") }),
		orderRecorder{name: "first", calls: &calls},
		orderRecorder{name: "second", calls: &calls},
	)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	assert.Equal(t, []string{"first", "second", "handler"}, calls)
}
