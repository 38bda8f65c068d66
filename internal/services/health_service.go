package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ahmedokasha74/thread-trend-dashboard/internal/config"
	"github.com/ahmedokasha74/thread-trend-dashboard/internal/infrastructure"
	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	paths     config.PathsConfig
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                       `json:"status"`
	Timestamp time.Time                    `json:"timestamp"`
	Version   string                       `json:"version"`
	Runtime   *infrastructure.RuntimeStats `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth     `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// VersionResponse is the payload of the version endpoint.
type VersionResponse struct {
	contracts.VersionInfo
	StartTime string  `json:"start_time"`
	Uptime    float64 `json:"uptime_seconds"`
}

// NewHealthService creates a new health service
func NewHealthService(paths config.PathsConfig, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		paths:     paths,
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Services:  hs.services(),
	}
	for _, svc := range status.Services {
		if svc.Status != "ready" {
			status.Status = "degraded"
			break
		}
	}

	hs.logger.DebugContext(ctx, "Health check completed", slog.String("status", status.Status))
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	stats := infrastructure.CollectRuntimeStats(hs.startTime)
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Runtime:   &stats,
	}
}

// Version returns version information
func (hs *HealthService) Version() VersionResponse {
	return VersionResponse{
		VersionInfo: contracts.GetVersionInfo(),
		StartTime:   hs.startTime.Format(time.RFC3339),
		Uptime:      time.Since(hs.startTime).Seconds(),
	}
}

func (hs *HealthService) services() map[string]ServiceHealth {
	return map[string]ServiceHealth{
		"analysis": {Status: "ready"},
		"reports":  hs.checkReportsDir(),
	}
}

// checkReportsDir reports whether saved reports can be written. A missing
// directory is fine because exporters create it on first write.
func (hs *HealthService) checkReportsDir() ServiceHealth {
	dir := hs.paths.ReportsDir
	if dir == "" {
		return ServiceHealth{Status: "ready", Message: "report saving disabled"}
	}

	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return ServiceHealth{Status: "ready", Message: "reports directory will be created on first export"}
	case err != nil:
		return ServiceHealth{Status: "not_ready", Message: fmt.Sprintf("cannot access reports directory: %v", err)}
	case !info.IsDir():
		return ServiceHealth{Status: "not_ready", Message: fmt.Sprintf("%s is not a directory", dir)}
	}
	return ServiceHealth{Status: "ready"}
}
