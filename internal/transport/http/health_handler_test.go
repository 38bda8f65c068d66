package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedokasha74/thread-trend-dashboard/internal/config"
	"github.com/ahmedokasha74/thread-trend-dashboard/internal/services"
	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts"
)

func newHealthRouter(reportsDir string) http.Handler {
	h := NewHealthHandler(services.NewHealthService(config.PathsConfig{ReportsDir: reportsDir}, testLogger()), testLogger())
	r := chi.NewRouter()
	r.Mount("/api/health", h.Routes())
	r.Get("/api/version", h.Version)
	return r
}

func TestHealthHandler(t *testing.T) {
	router := newHealthRouter(t.TempDir())

	tests := []struct {
		path       string
		wantStatus string
	}{
		{"/api/health", "ok"},
		{"/api/health/live", "alive"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		require.Equal(t, http.StatusOK, w.Code, tt.path)
		assert.Equal(t, tt.wantStatus, decodeBody(t, w)["status"], tt.path)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, contracts.Version, decodeBody(t, w)["version"])
}

func TestHealthHandler_Degraded(t *testing.T) {
	file := filepath.Join(t.TempDir(), "reports")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	w := httptest.NewRecorder()
	newHealthRouter(file).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", decodeBody(t, w)["status"])
}

func TestMetricsHandler(t *testing.T) {
	w := httptest.NewRecorder()
	NewMetricsHandler(nil).Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	exporter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("analyses_total 1\n"))
	})
	w = httptest.NewRecorder()
	NewMetricsHandler(exporter).Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "analyses_total 1\n", w.Body.String())
}
