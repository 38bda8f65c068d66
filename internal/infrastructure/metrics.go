package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Analysis outcomes recorded on analysis metrics.
const (
	OutcomeSuccess      = "success"
	OutcomeInputFormat  = "input_format"
	OutcomeEmptyDataset = "empty_dataset"
	OutcomeInvalidCell  = "invalid_cell"
	OutcomeUnreadable   = "unreadable"
	OutcomeError        = "error"
)

// BusinessMetrics holds all application-specific metrics
type BusinessMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Analysis metrics
	AnalysesTotal    metric.Int64Counter
	AnalysisDuration metric.Float64Histogram
	RowsLoaded       metric.Int64Counter
	RowsDropped      metric.Int64Counter
	UploadBytes      metric.Int64Histogram
}

// CreateBusinessMetrics creates application-specific metrics
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	m := &BusinessMetrics{}
	var err error

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	); err != nil {
		return nil, err
	}
	if m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.HTTPActiveRequests, err = meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	); err != nil {
		return nil, err
	}

	if m.AnalysesTotal, err = meter.Int64Counter(
		"analyses_total",
		metric.WithDescription("Total number of analysis runs by outcome"),
	); err != nil {
		return nil, err
	}
	if m.AnalysisDuration, err = meter.Float64Histogram(
		"analysis_duration_seconds",
		metric.WithDescription("Analysis run duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.RowsLoaded, err = meter.Int64Counter(
		"analysis_rows_loaded_total",
		metric.WithDescription("Total number of validated rows analysed"),
	); err != nil {
		return nil, err
	}
	if m.RowsDropped, err = meter.Int64Counter(
		"analysis_rows_dropped_total",
		metric.WithDescription("Total number of rows dropped for an unparseable date"),
	); err != nil {
		return nil, err
	}
	if m.UploadBytes, err = meter.Int64Histogram(
		"analysis_upload_bytes",
		metric.WithDescription("Size of uploaded files"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordAnalysisMetrics records one analysis run.
func RecordAnalysisMetrics(ctx context.Context, metrics *BusinessMetrics, outcome string, rows, dropped int, duration time.Duration) {
	if metrics == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	metrics.AnalysesTotal.Add(ctx, 1, attrs)
	metrics.AnalysisDuration.Record(ctx, duration.Seconds(), attrs)
	if rows > 0 {
		metrics.RowsLoaded.Add(ctx, int64(rows))
	}
	if dropped > 0 {
		metrics.RowsDropped.Add(ctx, int64(dropped))
	}
}

// RecordUploadSize records the size of an accepted upload.
func RecordUploadSize(ctx context.Context, metrics *BusinessMetrics, format string, size int64) {
	if metrics == nil || size < 0 {
		return
	}
	metrics.UploadBytes.Record(ctx, size, metric.WithAttributes(attribute.String("format", format)))
}

// RecordHTTPMetrics records one completed HTTP request.
func RecordHTTPMetrics(ctx context.Context, metrics *BusinessMetrics, method, route string, status int, duration time.Duration) {
	if metrics == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	)
	metrics.HTTPRequestsTotal.Add(ctx, 1, attrs)
	metrics.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
}
