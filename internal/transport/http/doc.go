// Package http implements the HTTP handlers of the dashboard. Handlers stay
// thin: they parse the upload and its options, call the analysis service
// and shape the response. Business rules live in internal/services.
//
// # Routes
//
//	GET  /                    dashboard page with the upload form
//	POST /analyze             upload from the page, results rendered as HTML
//	POST /api/analysis        upload, analysis returned as JSON
//	POST /api/analysis/export upload, report returned as XLSX or CSV
//	GET  /api/health          health with dependency status
//	GET  /api/health/live     liveness with runtime statistics
//	GET  /api/version         build and version information
//	GET  /metrics             Prometheus exposition
//
// # Responses
//
// Successful JSON responses use the envelope
//
//	{"status": "success", "data": ...}
//
// Failures are RFC 7807 problem documents rendered by errors.ErrorHandler.
// The page routes render the same problem title and detail inside the
// dashboard instead.
package http
