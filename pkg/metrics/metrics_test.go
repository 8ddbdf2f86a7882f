package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mysewa/sewa/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestHTTPMiddlewareLabelsByPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/invitations/{token}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := metrics.HTTPMiddleware(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/invitations/secret-token", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	obs, err := metrics.APILatency.GetMetricWithLabelValues(http.MethodGet, "GET /v1/invitations/{token}", "418")
	require.NoError(t, err)
	require.NotNil(t, obs)

	require.GreaterOrEqual(t, testutil.CollectAndCount(metrics.APILatency), 2)
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(metrics.PinVerifications.WithLabelValues("success"))
	metrics.PinVerifications.WithLabelValues("success").Inc()
	require.Equal(t, before+1, testutil.ToFloat64(metrics.PinVerifications.WithLabelValues("success")))
}
