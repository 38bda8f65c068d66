package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahmedokasha74/thread-trend-dashboard/internal/config"
	"github.com/ahmedokasha74/thread-trend-dashboard/internal/dataprocessing"
	"github.com/ahmedokasha74/thread-trend-dashboard/internal/infrastructure"
	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

// AnalysisService runs the load, validate and aggregate pipeline for one
// uploaded file at a time. It holds no per-run state and is safe for
// concurrent use.
type AnalysisService struct {
	loader      *dataprocessing.Loader
	previewRows int
	tracer      trace.Tracer
	metrics     *infrastructure.BusinessMetrics
	logger      *slog.Logger
	now         func() time.Time
}

// AnalysisOption adjusts a single analysis run.
type AnalysisOption func(*runOptions)

type runOptions struct {
	sheet       string
	previewRows int
}

// WithSheet selects the worksheet to read for this run.
func WithSheet(sheet string) AnalysisOption {
	return func(o *runOptions) {
		o.sheet = strings.TrimSpace(sheet)
	}
}

// WithPreviewRows overrides the number of records copied into the preview.
func WithPreviewRows(n int) AnalysisOption {
	return func(o *runOptions) {
		if n > 0 {
			o.previewRows = n
		}
	}
}

// NewAnalysisService creates an analysis service. A nil tracer falls back
// to the global provider and nil metrics disable recording.
func NewAnalysisService(cfg config.AnalysisConfig, tracer trace.Tracer, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = otel.Tracer(infrastructure.InstrumentationName)
	}
	previewRows := cfg.PreviewRows
	if previewRows <= 0 {
		previewRows = config.DefaultPreviewRows
	}

	return &AnalysisService{
		loader:      dataprocessing.NewLoader(cfg.SheetName, logger),
		previewRows: previewRows,
		tracer:      tracer,
		metrics:     metrics,
		logger:      logger.With(slog.String("service", "analysis")),
		now:         time.Now,
	}
}

// AnalyzeUpload loads the uploaded file and analyses it. name is the client
// file name; its extension selects the CSV or workbook reader.
func (s *AnalysisService) AnalyzeUpload(ctx context.Context, name string, r io.Reader, opts ...AnalysisOption) (*domain.Analysis, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrNoFileName
	}
	o := s.options(opts)

	ctx, span := s.tracer.Start(ctx, "analysis.run", trace.WithAttributes(
		attribute.String("analysis.source", name),
		attribute.String("analysis.format", fileFormat(name)),
	))
	defer span.End()
	start := time.Now()

	counter := &countingReader{r: r}
	ds, err := s.loader.WithSheet(o.sheet).Load(name, counter)
	if err == nil {
		infrastructure.RecordUploadSize(ctx, s.metrics, fileFormat(name), counter.n)
		err = ctx.Err()
	}
	if err != nil {
		return nil, s.fail(ctx, span, name, start, 0, 0, err)
	}

	return s.run(ctx, span, name, ds, o, start)
}

// AnalyzeFile analyses a workbook or CSV file on disk.
func (s *AnalysisService) AnalyzeFile(ctx context.Context, path string, opts ...AnalysisOption) (*domain.Analysis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return s.AnalyzeUpload(ctx, filepath.Base(path), f, opts...)
}

// Analyze aggregates an already loaded dataset.
func (s *AnalysisService) Analyze(ctx context.Context, name string, ds *domain.Dataset, opts ...AnalysisOption) (*domain.Analysis, error) {
	if ds == nil {
		ds = &domain.Dataset{}
	}
	o := s.options(opts)

	ctx, span := s.tracer.Start(ctx, "analysis.run", trace.WithAttributes(
		attribute.String("analysis.source", name),
	))
	defer span.End()

	return s.run(ctx, span, name, ds, o, time.Now())
}

func (s *AnalysisService) run(ctx context.Context, span trace.Span, name string, ds *domain.Dataset, o runOptions, start time.Time) (*domain.Analysis, error) {
	rows := len(ds.Records)
	span.SetAttributes(
		attribute.String("analysis.sheet", ds.Sheet),
		attribute.Int("analysis.rows", rows),
		attribute.Int("analysis.dropped_rows", ds.DroppedRows),
	)

	if len(ds.CellErrors) > 0 {
		return nil, s.fail(ctx, span, name, start, rows, ds.DroppedRows,
			&dataprocessing.InvalidCellError{Cells: ds.CellErrors})
	}

	agg, err := dataprocessing.Aggregate(ds.Records)
	if err != nil {
		return nil, s.fail(ctx, span, name, start, rows, ds.DroppedRows, err)
	}

	preview := ds.Records
	if len(preview) > o.previewRows {
		preview = preview[:o.previewRows]
	}

	analysis := &domain.Analysis{
		ID:          uuid.NewString(),
		Source:      name,
		Sheet:       ds.Sheet,
		GeneratedAt: s.now().UTC(),
		RowCount:    rows,
		ColumnCount: len(ds.Columns),
		Columns:     ds.Columns,
		DroppedRows: ds.DroppedRows,
		Preview:     append([]domain.Record(nil), preview...),
		KPIs:        agg.KPIs,
		Breakdowns:  agg.Breakdowns,
		Charts:      dataprocessing.Charts(agg.Breakdowns),
		Summary:     dataprocessing.Summarize(agg),
	}

	duration := time.Since(start)
	infrastructure.RecordAnalysisMetrics(ctx, s.metrics, infrastructure.OutcomeSuccess, rows, ds.DroppedRows, duration)
	span.SetAttributes(attribute.String("analysis.id", analysis.ID))
	span.SetStatus(codes.Ok, "")

	s.logger.InfoContext(ctx, "Analysis completed",
		slog.String("analysis_id", analysis.ID),
		slog.String("source", name),
		slog.Int("rows", rows),
		slog.Int("dropped_rows", ds.DroppedRows),
		slog.String("top_channel", analysis.Summary.TopChannel),
		slog.Duration("duration", duration))

	return analysis, nil
}

func (s *AnalysisService) fail(ctx context.Context, span trace.Span, name string, start time.Time, rows, dropped int, err error) error {
	mapped, outcome := classifyError(err)

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("analysis.outcome", outcome))
	infrastructure.RecordAnalysisMetrics(ctx, s.metrics, outcome, rows, dropped, time.Since(start))

	level := slog.LevelWarn
	if outcome == infrastructure.OutcomeError {
		level = slog.LevelError
	}
	s.logger.Log(ctx, level, "Analysis failed",
		slog.String("source", name),
		slog.String("outcome", outcome),
		slog.String("error", err.Error()))

	return mapped
}

func (s *AnalysisService) options(opts []AnalysisOption) runOptions {
	o := runOptions{previewRows: s.previewRows}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func fileFormat(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return "csv"
	}
	return "xlsx"
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
