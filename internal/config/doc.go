// Package config loads the dashboard configuration.
//
// Values are layered: Default() first, then an optional YAML file, then
// environment variables prefixed with TREND_. Nested sections map to
// underscored names:
//
//	TREND_SERVER_PORT=9090
//	TREND_ANALYSIS_PREVIEW_ROWS=10
//	TREND_SECURITY_ALLOWED_ORIGINS=http://a.example,http://b.example
//
// The merged result is checked with validator struct tags before use.
package config
