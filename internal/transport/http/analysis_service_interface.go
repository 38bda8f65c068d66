package http

import (
	"context"
	"io"

	"github.com/ahmedokasha74/thread-trend-dashboard/internal/services"
	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

// AnalysisServiceInterface defines the analysis operations used by handlers
type AnalysisServiceInterface interface {
	AnalyzeUpload(ctx context.Context, name string, r io.Reader, opts ...services.AnalysisOption) (*domain.Analysis, error)
}
