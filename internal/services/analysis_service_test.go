package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ahmedokasha74/thread-trend-dashboard/internal/config"
	apperrors "github.com/ahmedokasha74/thread-trend-dashboard/internal/errors"
	"github.com/ahmedokasha74/thread-trend-dashboard/internal/infrastructure"
	"github.com/ahmedokasha74/thread-trend-dashboard/internal/shared/testutil"
	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

const sampleCSV = `Date,Channel,Season,Customer Type,Time of Day,Revenue,Ad Spend,Conversions
2024-01-05,Email,Winter,New,Morning,100,50,2
2024-01-06,Social,Winter,Returning,Evening,300,100,5
2024-04-02,Email,Spring,New,Evening,200,50,3
not a date,Email,Spring,New,Evening,999,1,1
2024-07-10,Search,Summer,Returning,Morning,50,0,1
2024-07-11,Social,Summer,,Afternoon,150,0,2
`

type testEnv struct {
	service *AnalysisService
	logs    *testutil.LogCapture
	spans   *tracetest.SpanRecorder
	reader  *sdkmetric.ManualReader
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	metrics, err := infrastructure.CreateBusinessMetrics(mp.Meter("test"))
	require.NoError(t, err)

	cfg := config.Default().Analysis
	logger, logs := testutil.NewTestLogger(t)
	return &testEnv{
		service: NewAnalysisService(cfg, tp.Tracer("test"), metrics, logger),
		logs:    logs,
		spans:   spans,
		reader:  reader,
	}
}

// analysesByOutcome sums analyses_total per outcome label.
func (e *testEnv) analysesByOutcome(t *testing.T) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, e.reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "analyses_total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				outcome, _ := dp.Attributes.Value("outcome")
				out[outcome.AsString()] += dp.Value
			}
		}
	}
	return out
}

func TestAnalysisService_AnalyzeUpload_CSV(t *testing.T) {
	env := newTestEnv(t)

	a, err := env.service.AnalyzeUpload(context.Background(), "march.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "march.csv", a.Source)
	assert.Equal(t, 5, a.RowCount)
	assert.Equal(t, 8, a.ColumnCount)
	assert.Equal(t, 1, a.DroppedRows)
	assert.Len(t, a.Preview, 5)
	assert.False(t, a.GeneratedAt.IsZero())

	assert.True(t, a.KPIs.TotalRevenue.Equal(decimal.NewFromInt(800)))
	assert.True(t, a.KPIs.TotalAdSpend.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, int64(13), a.KPIs.TotalConversions)
	assert.Equal(t, "300.00%", a.KPIs.ROI.String())

	require.Len(t, a.Breakdowns, 4)
	require.Len(t, a.Charts, 4)
	assert.Equal(t, "Social", a.Summary.TopChannel)

	ct, ok := a.Breakdown(domain.DimensionCustomerType)
	require.True(t, ok)
	keys := make([]string, 0, len(ct.Groups))
	for _, g := range ct.Groups {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"New", "Returning", domain.UnknownKey}, keys)

	ended := env.spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "analysis.run", ended[0].Name())
	assert.Equal(t, codes.Ok, ended[0].Status().Code)

	assert.Equal(t, map[string]int64{infrastructure.OutcomeSuccess: 1}, env.analysesByOutcome(t))
	testutil.AssertLogged(t, env.logs, slog.LevelInfo, "Analysis completed",
		map[string]any{"analysis_id": a.ID, "source": "march.csv"})
}

func TestAnalysisService_AnalyzeUpload_Workbook(t *testing.T) {
	env := newTestEnv(t)

	buf := testutil.WorkbookFromCSV(t, "Transactions", sampleCSV)

	a, err := env.service.AnalyzeUpload(context.Background(), "march.xlsx", buf,
		WithSheet("transactions"), WithPreviewRows(2))
	require.NoError(t, err)
	assert.Equal(t, "Transactions", a.Sheet)
	assert.Equal(t, 5, a.RowCount)
	assert.Len(t, a.Preview, 2)
}

func TestAnalysisService_AnalyzeUpload_Errors(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		content     string
		wantType    apperrors.ErrorType
		wantMessage string
		wantOutcome string
	}{
		{
			name:        "missing columns",
			file:        "bad.csv",
			content:     "Date,Channel,Revenue\n2024-01-01,Email,10\n",
			wantType:    apperrors.ErrTypeInputFormat,
			wantMessage: "cannot analyze this file",
			wantOutcome: infrastructure.OutcomeInputFormat,
		},
		{
			name:        "header only",
			file:        "empty.csv",
			content:     "Date,Channel,Season,Customer Type,Time of Day,Revenue,Ad Spend,Conversions\n",
			wantType:    apperrors.ErrTypeEmptyDataset,
			wantMessage: "no data to analyze",
			wantOutcome: infrastructure.OutcomeEmptyDataset,
		},
		{
			name:        "every date unparseable",
			file:        "dates.csv",
			content:     "Date,Channel,Season,Customer Type,Time of Day,Revenue,Ad Spend,Conversions\nsoon,Email,Winter,New,Morning,1,1,1\n",
			wantType:    apperrors.ErrTypeEmptyDataset,
			wantMessage: "no data to analyze",
			wantOutcome: infrastructure.OutcomeEmptyDataset,
		},
		{
			name:        "malformed revenue",
			file:        "cells.csv",
			content:     "Date,Channel,Season,Customer Type,Time of Day,Revenue,Ad Spend,Conversions\n2024-01-01,Email,Winter,New,Morning,lots,1,1\n",
			wantType:    apperrors.ErrTypeInvalidCell,
			wantMessage: `cell Revenue at row 2 is not a number: "lots"`,
			wantOutcome: infrastructure.OutcomeInvalidCell,
		},
		{
			name:        "not a workbook",
			file:        "notes.xlsx",
			content:     "plain text",
			wantType:    apperrors.ErrTypeUnreadable,
			wantOutcome: infrastructure.OutcomeUnreadable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			a, err := env.service.AnalyzeUpload(context.Background(), tt.file, strings.NewReader(tt.content))
			require.Error(t, err)
			assert.Nil(t, a)

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr), "got %T: %v", err, err)
			assert.Equal(t, tt.wantType, appErr.Type)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, appErr.Message)
			}

			ended := env.spans.Ended()
			require.Len(t, ended, 1)
			assert.Equal(t, codes.Error, ended[0].Status().Code)
			assert.Equal(t, map[string]int64{tt.wantOutcome: 1}, env.analysesByOutcome(t))
		})
	}
}

func TestAnalysisService_InputFormatListsMissingColumns(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.AnalyzeUpload(context.Background(), "bad.csv",
		strings.NewReader("Date,Channel,Season,Customer Type,Time of Day,Revenue\n"))

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, []string{"Ad Spend", "Conversions"}, appErr.Context["missing_columns"])
}

func TestAnalysisService_ArgumentErrors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.AnalyzeUpload(context.Background(), "a.csv", nil)
	assert.ErrorIs(t, err, ErrNilReader)

	_, err = env.service.AnalyzeUpload(context.Background(), " ", strings.NewReader(sampleCSV))
	assert.ErrorIs(t, err, ErrNoFileName)
}

func TestAnalysisService_CancelledContext(t *testing.T) {
	env := newTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := env.service.AnalyzeUpload(ctx, "march.csv", strings.NewReader(sampleCSV))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, map[string]int64{infrastructure.OutcomeError: 1}, env.analysesByOutcome(t))
}

func TestAnalysisService_AnalyzeFile(t *testing.T) {
	env := newTestEnv(t)

	path := filepath.Join(t.TempDir(), "march.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	a, err := env.service.AnalyzeFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "march.csv", a.Source)

	_, err = env.service.AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestAnalysisService_Analyze(t *testing.T) {
	env := newTestEnv(t)

	ds := &domain.Dataset{
		Columns: []string{"Date"},
		Records: []domain.Record{
			{Channel: "Email", Season: "Winter", CustomerType: "New", TimeOfDay: "Morning",
				Revenue: decimal.NewFromInt(10), AdSpend: decimal.NewFromInt(5), Conversions: 1},
		},
	}
	a, err := env.service.Analyze(context.Background(), "inline", ds)
	require.NoError(t, err)
	assert.Equal(t, "Email", a.Summary.TopChannel)
	assert.Equal(t, 1, a.ColumnCount)

	_, err = env.service.Analyze(context.Background(), "inline", nil)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeEmptyDataset, appErr.Type)
}

func TestAnalysisService_ResultsAreIndependent(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.service.AnalyzeUpload(context.Background(), "a.csv", bytes.NewBufferString(sampleCSV))
	require.NoError(t, err)
	second, err := env.service.AnalyzeUpload(context.Background(), "a.csv", bytes.NewBufferString(sampleCSV))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.Breakdowns, second.Breakdowns)
}
