package http

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/ahmedokasha74/thread-trend-dashboard/internal/errors"
	"github.com/ahmedokasha74/thread-trend-dashboard/internal/services"
	api "github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/api/v1"
)

const (
	// UploadField is the multipart field carrying the spreadsheet.
	UploadField = "file"

	multipartMemory = 8 << 20
)

// readUpload returns the uploaded spreadsheet. Bodies cut off by the
// upload limit are reported as 413.
func readUpload(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if limit, ok := bodyTooLarge(err); ok {
			return nil, nil, apperrors.PayloadTooLarge(limit)
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, apperrors.ErrMissingFile
		}
		return nil, nil, apperrors.InvalidRequestWithError(err)
	}

	file, header, err := r.FormFile(UploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, apperrors.ErrMissingFile
		}
		return nil, nil, apperrors.InvalidRequestWithError(err)
	}
	if header.Size == 0 {
		file.Close()
		return nil, nil, apperrors.ErrMissingFile
	}
	return file, header, nil
}

func bodyTooLarge(err error) (int64, bool) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return maxErr.Limit, true
	}
	// multipart does not wrap every read error
	if strings.Contains(err.Error(), "request body too large") {
		return 0, true
	}
	return 0, false
}

// bindAnalysisRequest reads the analysis options from the query string,
// falling back to form fields of the same name.
func bindAnalysisRequest(r *http.Request) (api.AnalysisRequest, error) {
	var req api.AnalysisRequest
	req.Sheet = strings.TrimSpace(formOrQuery(r, "sheet"))

	if p := strings.TrimSpace(formOrQuery(r, "preview")); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return req, apperrors.NewValidationErrors([]apperrors.ValidationError{
				{Field: "preview", Message: "preview must be an integer"},
			})
		}
		req.Preview = n
	}
	return req, nil
}

func formOrQuery(r *http.Request, key string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	if r.MultipartForm != nil {
		if vs := r.MultipartForm.Value[key]; len(vs) > 0 {
			return vs[0]
		}
	}
	return ""
}

func analysisOptions(req api.AnalysisRequest) []services.AnalysisOption {
	var opts []services.AnalysisOption
	if req.Sheet != "" {
		opts = append(opts, services.WithSheet(req.Sheet))
	}
	if req.Preview > 0 {
		opts = append(opts, services.WithPreviewRows(req.Preview))
	}
	return opts
}

// reportBaseName derives a download name from the uploaded file name.
func reportBaseName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 || base == "." {
		return "report"
	}
	return b.String()
}

func attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}
