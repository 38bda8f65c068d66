package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes breakdown tables as CSV, either to a stream or into a
// report directory.
type CSVWriter struct {
	dir    string
	logger *slog.Logger
}

// NewCSVWriter creates a writer rooted at dir. Relative file names passed
// to WriteFile resolve against it.
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{dir: dir, logger: logger.With(slog.String("component", "csv_writer"))}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// Write encodes options to w.
func (w *CSVWriter) Write(out io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFile writes options to name inside the writer's directory and
// returns the full path.
func (w *CSVWriter) WriteFile(name string, options WriteOptions) (string, error) {
	fullPath := w.resolvePath(name)

	w.logger.Info("Writing CSV file",
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if err := w.Write(file, options); err != nil {
		file.Close()
		return "", err
	}
	return fullPath, file.Close()
}

// WriteBreakdown writes one breakdown table to out.
func (w *CSVWriter) WriteBreakdown(out io.Writer, b domain.Breakdown, bom bool) error {
	records := BreakdownTable(b).Records()
	return w.Write(out, WriteOptions{
		Headers:   records[0],
		Records:   records[1:],
		BOMPrefix: bom,
	})
}

// WriteBreakdowns writes every breakdown of a to its own file and returns
// the paths written.
func (w *CSVWriter) WriteBreakdowns(a *domain.Analysis, prefix string) ([]string, error) {
	paths := make([]string, 0, len(a.Breakdowns))
	for _, b := range a.Breakdowns {
		records := BreakdownTable(b).Records()
		path, err := w.WriteFile(BreakdownFileName(prefix, b.Dimension), WriteOptions{
			Headers:   records[0],
			Records:   records[1:],
			BOMPrefix: true,
		})
		if err != nil {
			return paths, fmt.Errorf("write %s breakdown: %w", b.Dimension, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// BreakdownFileName returns "<prefix>_by_<dimension>.csv".
func BreakdownFileName(prefix string, d domain.Dimension) string {
	if prefix == "" {
		prefix = "report"
	}
	return fmt.Sprintf("%s_by_%s.csv", prefix, d)
}

func (w *CSVWriter) resolvePath(name string) string {
	if filepath.IsAbs(name) || w.dir == "" {
		return name
	}
	return filepath.Join(w.dir, strings.TrimPrefix(name, string(filepath.Separator)))
}
