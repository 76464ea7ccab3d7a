// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetrics_Middleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/surveys/whiskies/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler := m.Middleware(mux)

	for _, path := range []string{"/api/surveys/whiskies/a", "/api/surveys/whiskies/b", "/api/health"} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.RequestsTotal.WithLabelValues("GET", "GET /api/surveys/whiskies/{id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.RequestsTotal.WithLabelValues("GET", "GET /api/health", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlightGauge))
}

func TestHTTPMetrics_SkipsMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 0, testutil.CollectAndCount(m.RequestsTotal))
}

func TestHandler_ServesRegistry(t *testing.T) {
	reg := NewRegistry()
	m := NewHTTPMetrics(reg)
	m.RequestsTotal.WithLabelValues("GET", "GET /api/health", "200").Inc()

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "whisky_survey_http_requests_total"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
