package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SupportedExtensions are the input types the loader reads.
var SupportedExtensions = []string{".xlsx", ".xlsm", ".csv"}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery finds analysable input files below a base path
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance. Relative
// directories resolve against basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// IsSupported reports whether name has a supported extension and is not
// an Office lock file (~$name.xlsx).
func IsSupported(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(base))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// FindInputFiles lists the supported files directly inside dir, sorted by
// name. Subdirectories are not searched.
func (d *Discovery) FindInputFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsSupported(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// FindFilesByPattern finds supported files matching a glob pattern
func (d *Discovery) FindFilesByPattern(pattern string) ([]FileInfo, error) {
	matches, err := filepath.Glob(d.resolve(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	var files []FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() || !IsSupported(match) {
			continue
		}
		files = append(files, FileInfo{
			Path:    match,
			Name:    filepath.Base(match),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return files, nil
}

// ExpandInputs turns command line arguments into input paths. Directories
// expand to their supported files and glob patterns to their matches;
// anything else is kept as given so later validation can report it.
func (d *Discovery) ExpandInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		switch {
		case isDir(d.resolve(arg)):
			found, err := d.FindInputFiles(arg)
			if err != nil {
				return nil, err
			}
			if len(found) == 0 {
				return nil, fmt.Errorf("no .xlsx, .xlsm or .csv files in %s", arg)
			}
			for _, f := range found {
				paths = append(paths, f.Path)
			}
		case strings.ContainsAny(arg, "*?["):
			found, err := d.FindFilesByPattern(arg)
			if err != nil {
				return nil, err
			}
			if len(found) == 0 {
				return nil, fmt.Errorf("no input files match %s", arg)
			}
			for _, f := range found {
				paths = append(paths, f.Path)
			}
		default:
			paths = append(paths, d.resolve(arg))
		}
	}
	return paths, nil
}

func (d *Discovery) resolve(path string) string {
	if filepath.IsAbs(path) || d.basePath == "" {
		return path
	}
	return filepath.Join(d.basePath, path)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
