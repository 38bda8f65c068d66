package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ahmedokasha74/thread-trend-dashboard/internal/errors"
	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

func newDashboard(t *testing.T, svc AnalysisServiceInterface) http.Handler {
	t.Helper()
	logger := testLogger()
	h, err := NewDashboardHandler(svc, 1<<20, logger, apperrors.NewErrorHandler(logger, false))
	require.NoError(t, err)
	return h.Routes()
}

func TestDashboardHandler_Index(t *testing.T) {
	w := httptest.NewRecorder()
	newDashboard(t, new(MockAnalysisService)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "Thread &amp; Trend | Customer Retention Dashboard")
	assert.Contains(t, body, UploadPrompt)
	assert.NotContains(t, body, LoadedBanner)
}

func TestDashboardHandler_Analyze(t *testing.T) {
	w := httptest.NewRecorder()
	newDashboard(t, realService()).ServeHTTP(w, uploadRequest(t, "/analyze", "march.csv", sampleCSV, nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, LoadedBanner)
	assert.Contains(t, body, "<strong>Rows:</strong> 3 | <strong>Columns:</strong> 8")
	assert.Contains(t, body, "$600")
	assert.Contains(t, body, "200.00%")
	for _, heading := range []string{"Channel Performance", "Seasonal Buying Trends", "Customer Type Insights", "Time of Day Performance"} {
		assert.Contains(t, body, heading)
	}
	assert.Contains(t, body, "Revenue by Channel")
	assert.Contains(t, body, "Top Channel: Email")
	assert.NotContains(t, body, UploadPrompt)
}

func TestDashboardHandler_AnalyzeShowsFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantText   []string
	}{
		{
			name: "missing columns",
			err: apperrors.NewInputFormatError(nil).
				WithContext("missing_columns", []string{"Revenue"}),
			wantStatus: http.StatusUnprocessableEntity,
			wantText:   []string{"cannot analyze this file", "Missing column: Revenue"},
		},
		{
			name:       "empty",
			err:        apperrors.NewEmptyDatasetError(nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantText:   []string{"no data to analyze"},
		},
		{
			name: "bad cells",
			err: apperrors.NewInvalidCellError("2 numeric cells could not be read", nil).
				WithContext("cells", []domain.CellError{{Row: 4, Column: "Revenue", Value: "lots"}}),
			wantStatus: http.StatusUnprocessableEntity,
			wantText:   []string{"2 numeric cells could not be read", "Row 4, Revenue: &#34;lots&#34;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAnalysisService)
			svc.On("AnalyzeUpload", "march.csv", 0).Return(nil, tt.err)

			w := httptest.NewRecorder()
			newDashboard(t, svc).ServeHTTP(w, uploadRequest(t, "/analyze", "march.csv", sampleCSV, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			body := w.Body.String()
			for _, text := range tt.wantText {
				assert.Contains(t, body, text)
			}
			assert.NotContains(t, body, LoadedBanner)
		})
	}
}

func TestDashboardHandler_MissingFile(t *testing.T) {
	w := httptest.NewRecorder()
	r := uploadRequest(t, "/analyze", "", "", map[string]string{"sheet": "Sheet1"})
	newDashboard(t, new(MockAnalysisService)).ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please choose a spreadsheet to upload")
}

func TestNewChartView(t *testing.T) {
	view := newChartView(domain.ChartSeries{
		Title: "Revenue by Channel",
		Points: []domain.ChartPoint{
			{Key: "Social", Revenue: decimal.NewFromInt(400)},
			{Key: "Email", Revenue: decimal.NewFromInt(100)},
			{Key: "Refunds", Revenue: decimal.NewFromInt(-50)},
		},
	})

	require.Len(t, view.Bars, 3)
	assert.Equal(t, 100.0, view.Bars[0].Width)
	assert.Equal(t, 25.0, view.Bars[1].Width)
	assert.Equal(t, 0.0, view.Bars[2].Width)
	assert.Equal(t, "-$50", view.Bars[2].Value)
	assert.True(t, strings.HasPrefix(view.Bars[0].Value, "$"))
}
