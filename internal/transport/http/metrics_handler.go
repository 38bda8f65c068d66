package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MetricsHandler exposes the Prometheus scrape endpoint
type MetricsHandler struct {
	exporter http.Handler
}

// NewMetricsHandler wraps the Prometheus exposition handler. A nil handler
// answers 404, which is what scrapers see when metrics are disabled.
func NewMetricsHandler(exporter http.Handler) *MetricsHandler {
	if exporter == nil {
		exporter = http.NotFoundHandler()
	}
	return &MetricsHandler{exporter: exporter}
}

// Routes sets up the metrics routes
func (h *MetricsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetMetrics)
	return r
}

// GetMetrics serves the metrics in Prometheus text format
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.exporter.ServeHTTP(w, r)
}
