package http

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	apperrors "github.com/ahmedokasha74/thread-trend-dashboard/internal/errors"
	"github.com/ahmedokasha74/thread-trend-dashboard/internal/exporter"
	appmw "github.com/ahmedokasha74/thread-trend-dashboard/internal/middleware"
	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts"
	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page copy shown around the analysis.
const (
	PageTitle    = "Thread & Trend | Customer Retention Dashboard"
	UploadPrompt = "Please upload your Excel file to start analysis."
	LoadedBanner = "Data loaded successfully!"
)

var sectionHeadings = map[domain.Dimension]string{
	domain.DimensionChannel:      "Channel Performance",
	domain.DimensionSeason:       "Seasonal Buying Trends",
	domain.DimensionCustomerType: "Customer Type Insights",
	domain.DimensionTimeOfDay:    "Time of Day Performance",
}

// DashboardHandler renders the upload page and its analysis results
type DashboardHandler struct {
	service      AnalysisServiceInterface
	tmpl         *template.Template
	maxUpload    int64
	logger       *slog.Logger
	errorHandler *apperrors.ErrorHandler
}

// NewDashboardHandler parses the embedded templates and creates the handler
func NewDashboardHandler(service AnalysisServiceInterface, maxUpload int64, logger *slog.Logger, errorHandler *apperrors.ErrorHandler) (*DashboardHandler, error) {
	tmpl, err := template.New("dashboard.html").ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	return &DashboardHandler{
		service:      service,
		tmpl:         tmpl,
		maxUpload:    maxUpload,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}, nil
}

// Routes returns the page routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	r.With(appmw.UploadLimit(h.maxUpload)).Post("/analyze", h.Analyze)
	return r
}

// Index handles GET /
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.newPage())
}

// Analyze handles POST /analyze. Failures are shown on the page with the
// status the JSON API would use.
func (h *DashboardHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	page := h.newPage()

	file, header, err := readUpload(r)
	if err != nil {
		h.renderError(w, r, page, err)
		return
	}
	defer file.Close()

	opts, err := bindAnalysisRequest(r)
	if err != nil {
		h.renderError(w, r, page, err)
		return
	}
	page.Sheet = opts.Sheet

	a, err := h.service.AnalyzeUpload(r.Context(), header.Filename, file, analysisOptions(opts)...)
	if err != nil {
		h.renderError(w, r, page, err)
		return
	}

	page.Result = newAnalysisView(a)
	h.render(w, r, http.StatusOK, page)
}

func (h *DashboardHandler) newPage() *dashboardPage {
	return &dashboardPage{
		Title:       PageTitle,
		Prompt:      UploadPrompt,
		Banner:      LoadedBanner,
		Version:     contracts.Version,
		MaxUploadMB: float64(h.maxUpload) / (1 << 20),
	}
}

func (h *DashboardHandler) renderError(w http.ResponseWriter, r *http.Request, page *dashboardPage, err error) {
	problem := h.errorHandler.ErrorToProblem(err, r)
	view := &errorView{Title: problem.Title, Message: problem.Detail}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if missing, ok := appErr.Context["missing_columns"].([]string); ok {
			for _, col := range missing {
				view.Details = append(view.Details, "Missing column: "+col)
			}
		}
		if cells, ok := appErr.Context["cells"].([]domain.CellError); ok {
			for _, c := range cells {
				view.Details = append(view.Details, fmt.Sprintf("Row %d, %s: %q", c.Row, c.Column, c.Value))
			}
		}
	}

	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "dashboard analysis failed",
		slog.Int("status", problem.Status),
		slog.String("error", err.Error()))

	page.Error = view
	h.render(w, r, problem.Status, page)
}

func (h *DashboardHandler) render(w http.ResponseWriter, r *http.Request, status int, page *dashboardPage) {
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, page); err != nil {
		h.errorHandler.HandleError(w, r, fmt.Errorf("render dashboard: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

type dashboardPage struct {
	Title       string
	Prompt      string
	Banner      string
	Version     string
	MaxUploadMB float64
	Sheet       string
	Error       *errorView
	Result      *analysisView
}

type errorView struct {
	Title   string
	Message string
	Details []string
}

type analysisView struct {
	Source      string
	Sheet       string
	Rows        int
	Columns     int
	DroppedRows int
	PreviewHead []string
	Preview     [][]string
	KPIs        []kpiView
	Sections    []sectionView
	Highlights  []string
}

type kpiView struct {
	Label string
	Value string
}

type sectionView struct {
	Heading string
	Headers []string
	Rows    [][]string
	Chart   chartView
}

type chartView struct {
	Title string
	Bars  []barView
}

type barView struct {
	Label string
	Value string
	Width float64
}

func newAnalysisView(a *domain.Analysis) *analysisView {
	v := &analysisView{
		Source:      a.Source,
		Sheet:       a.Sheet,
		Rows:        a.RowCount,
		Columns:     a.ColumnCount,
		DroppedRows: a.DroppedRows,
		PreviewHead: []string{"Date", "Channel", "Season", "Customer Type", "Time of Day", "Revenue", "Ad Spend", "Conversions"},
		KPIs: []kpiView{
			{Label: "Total Revenue", Value: exporter.FormatMoney(a.KPIs.TotalRevenue)},
			{Label: "Total Ad Spend", Value: exporter.FormatMoney(a.KPIs.TotalAdSpend)},
			{Label: "Conversions", Value: exporter.FormatCount(a.KPIs.TotalConversions)},
			{Label: "ROI", Value: exporter.FormatPercent(a.KPIs.ROI)},
		},
		Highlights: a.Summary.Highlights,
	}

	for _, r := range a.Preview {
		v.Preview = append(v.Preview, []string{
			r.Date.Format("2006-01-02"),
			r.Channel,
			r.Season,
			r.CustomerType,
			r.TimeOfDay,
			exporter.FormatDecimal(r.Revenue),
			exporter.FormatDecimal(r.AdSpend),
			exporter.FormatCount(r.Conversions),
		})
	}

	charts := make(map[domain.Dimension]domain.ChartSeries, len(a.Charts))
	for _, c := range a.Charts {
		charts[c.Dimension] = c
	}
	for _, b := range a.Breakdowns {
		records := exporter.BreakdownTable(b).Records()
		heading, ok := sectionHeadings[b.Dimension]
		if !ok {
			heading = b.Dimension.Label()
		}
		v.Sections = append(v.Sections, sectionView{
			Heading: heading,
			Headers: records[0],
			Rows:    records[1:],
			Chart:   newChartView(charts[b.Dimension]),
		})
	}
	return v
}

// newChartView scales bars against the largest absolute revenue.
func newChartView(c domain.ChartSeries) chartView {
	view := chartView{Title: c.Title, Bars: make([]barView, 0, len(c.Points))}

	max := decimal.Zero
	for _, p := range c.Points {
		if abs := p.Revenue.Abs(); abs.GreaterThan(max) {
			max = abs
		}
	}

	for _, p := range c.Points {
		width := 0.0
		if max.IsPositive() && p.Revenue.IsPositive() {
			width = p.Revenue.Div(max).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
		}
		view.Bars = append(view.Bars, barView{
			Label: p.Key,
			Value: exporter.FormatMoney(p.Revenue),
			Width: width,
		})
	}
	return view
}
