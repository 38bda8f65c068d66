package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ahmedokasha74/thread-trend-dashboard/internal/files"
)

// Input file problems reported before any analysis runs.
var (
	ErrNotExist    = errors.New("file does not exist")
	ErrIsDirectory = errors.New("path is a directory")
	ErrUnsupported = errors.New("unsupported file type (want .xlsx, .xlsm or .csv)")
	ErrEmptyFile   = errors.New("file is empty")
)

// FileValidator checks command line inputs and output directories
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger.With(slog.String("component", "file_validator")),
	}
}

// ValidateInputFile checks that path is a readable, non-empty file of a
// supported type. Callers report the path alongside the error.
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Warn("Input file does not exist", slog.String("file", path))
		return ErrNotExist
	}
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return ErrIsDirectory
	}
	if !files.IsSupported(path) {
		v.logger.Warn("Unsupported input file",
			slog.String("file", path),
			slog.String("extension", filepath.Ext(path)))
		return ErrUnsupported
	}
	if info.Size() == 0 {
		return ErrEmptyFile
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures dir exists or can be created and is
// writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	probe, err := os.CreateTemp(dir, ".write_test_*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated", slog.String("directory", dir))
	return nil
}
