package http

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apperrors "github.com/ahmedokasha74/thread-trend-dashboard/internal/errors"
	"github.com/ahmedokasha74/thread-trend-dashboard/internal/exporter"
	appmw "github.com/ahmedokasha74/thread-trend-dashboard/internal/middleware"
	api "github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/api/v1"
	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AnalysisHandler serves the JSON analysis API and report downloads
type AnalysisHandler struct {
	service      AnalysisServiceInterface
	validator    *appmw.RequestValidator
	csv          *exporter.CSVWriter
	maxUpload    int64
	logger       *slog.Logger
	errorHandler *apperrors.ErrorHandler
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service AnalysisServiceInterface, maxUpload int64, logger *slog.Logger, errorHandler *apperrors.ErrorHandler) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		validator:    appmw.NewRequestValidator(logger),
		csv:          exporter.NewCSVWriter("", logger),
		maxUpload:    maxUpload,
		logger:       logger.With(slog.String("component", "analysis_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(appmw.UploadLimit(h.maxUpload))
	r.Use(appmw.ContentTypeValidator(h.errorHandler, "multipart/form-data"))

	r.Post("/", h.Analyze)
	r.Post("/export", h.Export)
	return r
}

// Analyze handles POST /api/analysis
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	a, ok := h.analyze(w, r, nil)
	if !ok {
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   api.NewAnalysisResponse(a),
	})
}

// Export handles POST /api/analysis/export?format=xlsx|csv&dimension=...
func (h *AnalysisHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := api.ExportRequest{Format: q.Get("format"), Dimension: q.Get("dimension")}

	var filename string
	a, ok := h.analyze(w, r, func(base string, opts api.AnalysisRequest) error {
		req.AnalysisRequest = opts
		filename = base
		return h.validator.ValidateStruct(req)
	})
	if !ok {
		return
	}

	var buf bytes.Buffer
	switch req.Format {
	case "csv":
		dim := domain.Dimension(req.Dimension)
		if dim == "" {
			dim = domain.DimensionChannel
		}
		b, found := a.Breakdown(dim)
		if !found {
			h.errorHandler.HandleError(w, r, apperrors.ErrNotFound)
			return
		}
		if err := h.csv.WriteBreakdown(&buf, b, true); err != nil {
			h.errorHandler.HandleError(w, r, apperrors.NewExportError("failed to write breakdown CSV", err))
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", attachment(exporter.BreakdownFileName(filename, dim)))

	default:
		if err := exporter.WriteWorkbook(&buf, a); err != nil {
			h.errorHandler.HandleError(w, r, apperrors.NewExportError("failed to build report workbook", err))
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", attachment(filename+"_report.xlsx"))
	}

	h.logger.InfoContext(r.Context(), "report exported",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("analysis_id", a.ID),
		slog.String("format", req.Format),
		slog.Int("bytes", buf.Len()))

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// analyze reads the upload and runs the service. check runs after the
// form is parsed and before the analysis; a non-nil error aborts it.
func (h *AnalysisHandler) analyze(w http.ResponseWriter, r *http.Request, check func(base string, opts api.AnalysisRequest) error) (*domain.Analysis, bool) {
	file, header, err := readUpload(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return nil, false
	}
	defer file.Close()

	opts, err := bindAnalysisRequest(r)
	if err == nil {
		if check != nil {
			err = check(reportBaseName(header.Filename), opts)
		} else {
			err = h.validator.ValidateStruct(opts)
		}
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return nil, false
	}

	h.logger.InfoContext(r.Context(), "analysis requested",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("file", header.Filename),
		slog.Int64("size", header.Size))

	a, err := h.service.AnalyzeUpload(r.Context(), header.Filename, file, analysisOptions(opts)...)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return nil, false
	}
	return a, true
}
