// Command report analyses marketing transaction files from the command line.
//
//	report [-config FILE] [-sheet S] [-format text|json|markdown] [-preview N]
//	       [-xlsx DIR] [-csv DIR] FILE|DIR|GLOB...
//
// Directories expand to the .xlsx, .xlsm and .csv files they hold. Each
// file is analysed independently; results print in argument order. The
// exit status is 1 when any file fails.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/ahmedokasha74/thread-trend-dashboard/internal/config"
	"github.com/ahmedokasha74/thread-trend-dashboard/internal/exporter"
	"github.com/ahmedokasha74/thread-trend-dashboard/internal/files"
	"github.com/ahmedokasha74/thread-trend-dashboard/internal/infrastructure"
	"github.com/ahmedokasha74/thread-trend-dashboard/internal/services"
	"github.com/ahmedokasha74/thread-trend-dashboard/internal/validation"
	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type options struct {
	ConfigPath string
	Sheet      string   `validate:"max=31"`
	Format     string   `validate:"oneof=text json markdown"`
	Preview    int      `validate:"min=0,max=100"`
	XLSXDir    string
	CSVDir     string
	Files      []string `validate:"min=1,dive,required"`
}

// result is the outcome of one file.
type result struct {
	file     string
	analysis *domain.Analysis
	outputs  []string
	err      error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "report: %v\n", err)
		return exitUsage
	}

	opts.Files, err = files.NewDiscovery("").ExpandInputs(opts.Files)
	if err != nil {
		fmt.Fprintf(stderr, "report: %v\n", err)
		return exitUsage
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "report: %v\n", err)
		return exitError
	}

	// Logs go to stderr so stdout carries only the report.
	logger, err := infrastructure.NewLogger(cfg.Logging, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "report: %v\n", err)
		return exitError
	}
	defer infrastructure.CloseLogFile()
	logger = infrastructure.WithComponent(logger, "report")

	fv := validation.NewFileValidator(logger)
	for _, dir := range []string{opts.XLSXDir, opts.CSVDir} {
		if dir == "" {
			continue
		}
		if err := fv.ValidateOutputDirectory(dir); err != nil {
			fmt.Fprintf(stderr, "report: %v\n", err)
			return exitError
		}
	}

	svc := services.NewAnalysisService(cfg.Analysis, nil, nil, logger)
	results := analyzeAll(ctx, svc, fv, opts, cfg.Analysis.Concurrency, logger)

	failed := false
	var ok []*domain.Analysis
	for _, res := range results {
		if res.err != nil {
			failed = true
			fmt.Fprintf(stderr, "%s: %v\n", res.file, res.err)
			continue
		}
		ok = append(ok, res.analysis)
		for _, path := range res.outputs {
			fmt.Fprintf(stderr, "%s: wrote %s\n", res.file, path)
		}
	}

	if err := render(stdout, opts.Format, ok); err != nil {
		fmt.Fprintf(stderr, "report: %v\n", err)
		return exitError
	}

	if failed {
		return exitError
	}
	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.Sheet, "sheet", "", "worksheet to read from XLSX files (defaults to the configured sheet)")
	fs.StringVar(&opts.Format, "format", "text", "output format: text, json or markdown")
	fs.IntVar(&opts.Preview, "preview", 0, "number of preview rows (defaults to the configured value)")
	fs.StringVar(&opts.XLSXDir, "xlsx", "", "directory to save an XLSX report per file")
	fs.StringVar(&opts.CSVDir, "csv", "", "directory to save breakdown CSVs per file")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: report [flags] FILE|DIR|GLOB...")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.Files = fs.Args()
	opts.Format = strings.ToLower(opts.Format)

	if err := validator.New().Struct(opts); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid %s: %s", strings.ToLower(verrs[0].Field()), usageHint(verrs[0]))
		}
		return nil, err
	}
	return opts, nil
}

func usageHint(fe validator.FieldError) string {
	switch fe.Field() {
	case "Files":
		return "at least one input file is required"
	case "Format":
		return fmt.Sprintf("%q is not one of text, json, markdown", fe.Value())
	case "Preview":
		return "must be between 0 and 100"
	case "Sheet":
		return "sheet names are at most 31 characters"
	}
	return fe.Tag()
}

// analyzeAll runs every file with at most limit analyses in flight. One
// failing file never stops the others.
func analyzeAll(ctx context.Context, svc *services.AnalysisService, fv *validation.FileValidator, opts *options, limit int, logger *slog.Logger) []result {
	results := make([]result, len(opts.Files))

	var runOpts []services.AnalysisOption
	if opts.Sheet != "" {
		runOpts = append(runOpts, services.WithSheet(opts.Sheet))
	}
	if opts.Preview > 0 {
		runOpts = append(runOpts, services.WithPreviewRows(opts.Preview))
	}

	bases := outputBases(opts.Files)

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, file := range opts.Files {
		g.Go(func() error {
			res := result{file: file}
			fctx := infrastructure.EnsureTraceID(ctx)
			if res.err = fv.ValidateInputFile(file); res.err == nil {
				res.analysis, res.err = svc.AnalyzeFile(fctx, file, runOpts...)
			}
			if res.err == nil {
				res.outputs, res.err = saveReports(res.analysis, bases[i], opts, logger)
			}
			results[i] = res
			return res.err
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn("some files failed", slog.String("first_error", err.Error()))
	}
	return results
}

// outputBases returns a distinct report base name per input. Inputs that
// share a file name get a numeric suffix in argument order, so
// a/data.xlsx and b/data.xlsx write data_report.xlsx and data_2_report.xlsx.
func outputBases(files []string) []string {
	reserved := make(map[string]bool, len(files))
	for _, f := range files {
		reserved[baseName(f)] = true
	}

	assigned := make(map[string]bool, len(files))
	out := make([]string, len(files))
	for i, f := range files {
		name := baseName(f)
		if assigned[name] {
			base := name
			for n := 2; ; n++ {
				name = fmt.Sprintf("%s_%d", base, n)
				if !reserved[name] && !assigned[name] {
					break
				}
			}
		}
		assigned[name] = true
		out[i] = name
	}
	return out
}

func baseName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

// saveReports writes the optional XLSX and CSV outputs of one analysis
// under the given base name.
func saveReports(a *domain.Analysis, base string, opts *options, logger *slog.Logger) ([]string, error) {
	var written []string

	if opts.XLSXDir != "" {
		path := filepath.Join(opts.XLSXDir, base+"_report.xlsx")
		if err := exporter.SaveWorkbook(path, a); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if opts.CSVDir != "" {
		paths, err := exporter.NewCSVWriter(opts.CSVDir, logger).WriteBreakdowns(a, base)
		written = append(written, paths...)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
