// Package middleware holds the HTTP middleware of the dashboard server:
// request IDs, structured request logging, OpenTelemetry instrumentation,
// rate limiting, timeouts, CORS, security headers, upload size limits and
// request option validation.
//
// Recommended order, outermost first:
//
//	RequestID, RealIP, OTel, StructuredLogger, Recovery, SecureHeaders,
//	CORS, RateLimiter, Timeout
package middleware
