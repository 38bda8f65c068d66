package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func TestErrorToProblem(t *testing.T) {
	h := newTestHandler()
	r := httptest.NewRequest(http.MethodPost, "/api/analysis", nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantDetail string
	}{
		{
			name:       "deadline exceeded",
			err:        fmt.Errorf("analyze: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "missing file",
			err:        ErrMissingFile,
			wantStatus: http.StatusBadRequest,
			wantType:   TypeMissingFile,
			wantDetail: "Please choose a spreadsheet to upload",
		},
		{
			name:       "payload too large",
			err:        PayloadTooLarge(1024),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantType:   TypePayloadTooLarge,
		},
		{
			name:       "input format",
			err:        NewInputFormatError(fmt.Errorf("missing column Revenue")),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeInputFormat,
			wantDetail: "cannot analyze this file",
		},
		{
			name:       "wrapped empty dataset",
			err:        fmt.Errorf("service: %w", NewEmptyDatasetError(nil)),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeEmptyDataset,
			wantDetail: "no data to analyze",
		},
		{
			name:       "invalid cell",
			err:        NewInvalidCellError("2 cells could not be read", nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeInvalidCell,
		},
		{
			name:       "unreadable",
			err:        NewUnreadableFileError(nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeUnreadable,
		},
		{
			name:       "export failure",
			err:        NewExportError("failed to build report workbook", fmt.Errorf("zip: write failed")),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeExport,
			wantDetail: "failed to build report workbook",
		},
		{
			name:       "config app error is internal",
			err:        NewAppError(ErrTypeConfig, "bad config", nil),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
		{
			name:       "unknown error hides its message",
			err:        fmt.Errorf("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
			wantDetail: "An unexpected error occurred while processing your request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := h.ErrorToProblem(tt.err, r)
			assert.Equal(t, tt.wantStatus, p.Status)
			assert.Equal(t, tt.wantType, p.Type)
			assert.Equal(t, "/api/analysis", p.Instance)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, p.Detail)
			}
		})
	}
}

func TestHandleError_RendersProblemJSON(t *testing.T) {
	h := newTestHandler()

	r := httptest.NewRequest(http.MethodPost, "/api/analysis", nil)
	r = r.WithContext(context.WithValue(r.Context(), middleware.RequestIDKey, "req-42"))
	w := httptest.NewRecorder()

	err := NewInputFormatError(nil).WithContext("missing_columns", []string{"Revenue"})
	h.HandleError(w, r, err)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, TypeInputFormat, body["type"])
	assert.Equal(t, "cannot analyze this file", body["detail"])
	assert.Equal(t, "req-42", body["trace_id"])
	assert.Equal(t, "INPUT_FORMAT", body["error_code"])
	assert.Equal(t, []interface{}{"Revenue"}, body["missing_columns"])
}

func TestHandleError_NilIsNoop(t *testing.T) {
	w := httptest.NewRecorder()
	newTestHandler().HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, 0, w.Body.Len())
}

func TestRecoveryMiddleware(t *testing.T) {
	h := newTestHandler()
	panicking := h.RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	panicking.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), TypeInternal)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := newTestHandler()

	w := httptest.NewRecorder()
	h.NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.MethodNotAllowed(w, httptest.NewRequest(http.MethodDelete, "/api/analysis", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "Method DELETE is not allowed")
}
