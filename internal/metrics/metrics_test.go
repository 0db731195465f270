package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveBackendCall(t *testing.T) {
	cases := map[string]struct {
		statusCode     int
		expectedStatus string
	}{
		"successful call": {statusCode: http.StatusOK, expectedStatus: "200"},
		"rejected call":   {statusCode: http.StatusNotFound, expectedStatus: "404"},
		"transport error": {statusCode: 0, expectedStatus: "error"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			m := New()

			m.ObserveBackendCall("query", tc.statusCode, 20*time.Millisecond)

			assert.InDelta(t, 1, testutil.ToFloat64(m.backendRequests.WithLabelValues("query", tc.expectedStatus)), 0)
			assert.Equal(t, 1, testutil.CollectAndCount(m.backendDuration))
		})
	}
}

func TestMetrics_ObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("GET /api/GetSalesOrder", http.StatusOK)
	m.ObserveRequest("GET /api/GetSalesOrder", http.StatusOK)
	m.ObserveRequest("GET /api/GetSalesOrder", http.StatusUnauthorized)

	assert.InDelta(t, 2, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET /api/GetSalesOrder", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET /api/GetSalesOrder", "401")), 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveBackendCall("token", http.StatusOK, time.Millisecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `sapapi_backend_requests_total{operation="token",status="200"} 1`)
	assert.Contains(t, rr.Body.String(), "sapapi_backend_request_duration_seconds_bucket")
}
