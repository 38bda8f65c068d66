package config

import "time"

// Application constants
const (
	AppName        = "Thread & Trend Dashboard"
	AppServiceName = "thread-trend-dashboard"

	// EnvPrefix prefixes every environment override, e.g. TREND_SERVER_PORT.
	EnvPrefix = "TREND"

	DefaultPort           = 8080
	DefaultRequestTimeout = 60 * time.Second

	// Rate Limiting
	DefaultRateLimit = 20 // requests per second
	DefaultBurstSize = 40

	// Analysis
	DefaultMaxUploadBytes = 32 << 20 // 32MB
	DefaultPreviewRows    = 5
	DefaultSheetName      = "Sheet1"
	DefaultConcurrency    = 4

	DefaultReportsDir = "reports"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// DefaultConfigFiles are searched in order when no config path is given.
var DefaultConfigFiles = []string{
	"config.yaml",
	"configs/config.yaml",
}
