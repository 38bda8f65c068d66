package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

// Canonical names of the required columns, in report order.
const (
	ColumnDate         = "Date"
	ColumnChannel      = "Channel"
	ColumnSeason       = "Season"
	ColumnCustomerType = "Customer Type"
	ColumnTimeOfDay    = "Time of Day"
	ColumnRevenue      = "Revenue"
	ColumnAdSpend      = "Ad Spend"
	ColumnConversions  = "Conversions"
)

// RequiredColumns lists every column a file must carry.
var RequiredColumns = []string{
	ColumnDate,
	ColumnChannel,
	ColumnSeason,
	ColumnCustomerType,
	ColumnTimeOfDay,
	ColumnRevenue,
	ColumnAdSpend,
	ColumnConversions,
}

// Loader parses uploaded tables into validated records.
type Loader struct {
	sheet  string
	logger *slog.Logger
}

// NewLoader creates a loader. sheet names the preferred worksheet; when it
// is empty or absent from a workbook the first sheet is read.
func NewLoader(sheet string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		sheet:  sheet,
		logger: logger.With(slog.String("component", "loader")),
	}
}

// WithSheet returns a copy of the loader that prefers the given sheet.
func (l *Loader) WithSheet(sheet string) *Loader {
	if sheet == "" {
		return l
	}
	c := *l
	c.sheet = sheet
	return &c
}

// LoadFile reads a workbook or CSV file from disk.
func (l *Loader) LoadFile(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return l.Load(filepath.Base(path), f)
}

// Load dispatches on the file name extension. Anything that is not .csv
// is read as a workbook.
func (l *Loader) Load(name string, r io.Reader) (*domain.Dataset, error) {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return l.LoadCSV(r)
	}
	return l.LoadWorkbook(r)
}

// LoadWorkbook reads the configured (or first) sheet of an XLSX workbook.
func (l *Loader) LoadWorkbook(r io.Reader) (*domain.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &InputFormatError{Reason: "workbook has no sheets"}
	}

	sheetName := sheets[0]
	if l.sheet != "" {
		found := false
		for _, name := range sheets {
			if strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(l.sheet)) {
				sheetName = name
				found = true
				break
			}
		}
		if !found {
			l.logger.Warn("Preferred sheet not found, using first sheet",
				slog.String("preferred", l.sheet),
				slog.String("sheet", sheetName))
		}
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %s: %v", ErrUnreadableFile, sheetName, err)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	ds, err := l.loadRows(rows, NewWorkbookDateParser(date1904))
	if err != nil {
		return nil, err
	}
	ds.Sheet = sheetName
	return ds, nil
}

// LoadCSV reads a comma separated table whose first non-blank row is the header.
func (l *Loader) LoadCSV(r io.Reader) (*domain.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: csv read: %v", ErrUnreadableFile, err)
	}
	return l.loadRows(rows, NewDateParser())
}

// LoadRows builds a dataset from a header row and untyped data rows.
func (l *Loader) LoadRows(header []string, rows [][]string) (*domain.Dataset, error) {
	all := make([][]string, 0, len(rows)+1)
	all = append(all, header)
	all = append(all, rows...)
	return l.loadRows(all, NewDateParser())
}

func (l *Loader) loadRows(rows [][]string, dates DateParser) (*domain.Dataset, error) {
	headerIdx := -1
	for i, row := range rows {
		if !isBlankRow(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, &InputFormatError{Reason: "file has no header row"}
	}

	header := rows[headerIdx]
	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	ds := &domain.Dataset{
		Columns: headerNames(header),
		Records: make([]domain.Record, 0, len(rows)-headerIdx-1),
	}

	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		ds.TotalRows++
		rowNumber := i + 1

		cell := func(column string) string {
			idx := columns[column]
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		date, ok := dates.Parse(cell(ColumnDate))
		if !ok {
			ds.DroppedRows++
			l.logger.Debug("Dropped row with unparseable date",
				slog.Int("row", rowNumber),
				slog.String("value", cell(ColumnDate)))
			continue
		}

		record := domain.Record{
			Date:         date,
			Channel:      categoryValue(cell(ColumnChannel)),
			Season:       categoryValue(cell(ColumnSeason)),
			CustomerType: categoryValue(cell(ColumnCustomerType)),
			TimeOfDay:    categoryValue(cell(ColumnTimeOfDay)),
		}

		cellError := func(column string) {
			ds.CellErrors = append(ds.CellErrors, domain.CellError{Row: rowNumber, Column: column, Value: cell(column)})
		}

		if v, blank, ok := parseNumber(cell(ColumnRevenue)); blank {
			record.Blank |= domain.FieldRevenue
		} else if ok {
			record.Revenue = v
		} else {
			cellError(ColumnRevenue)
		}
		if v, blank, ok := parseNumber(cell(ColumnAdSpend)); blank {
			record.Blank |= domain.FieldAdSpend
		} else if ok {
			record.AdSpend = v
		} else {
			cellError(ColumnAdSpend)
		}
		// Integral decimals such as "5.0" are accepted, fractional ones are not.
		if v, blank, ok := parseNumber(cell(ColumnConversions)); blank {
			record.Blank |= domain.FieldConversions
		} else if ok && v.IsInteger() {
			record.Conversions = v.IntPart()
		} else {
			cellError(ColumnConversions)
		}

		ds.Records = append(ds.Records, record)
	}

	l.logger.Info("Dataset loaded",
		slog.Int("rows", ds.TotalRows),
		slog.Int("valid_rows", len(ds.Records)),
		slog.Int("dropped_rows", ds.DroppedRows),
		slog.Int("cell_errors", len(ds.CellErrors)))

	return ds, nil
}

// mapColumns locates every required column in the header.
func mapColumns(header []string) (map[string]int, error) {
	wanted := make(map[string]string, len(RequiredColumns))
	for _, name := range RequiredColumns {
		wanted[normalizeHeader(name)] = name
	}

	columns := make(map[string]int, len(RequiredColumns))
	for i, h := range header {
		if name, ok := wanted[normalizeHeader(h)]; ok {
			if _, seen := columns[name]; !seen {
				columns[name] = i
			}
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &InputFormatError{Missing: missing}
	}
	return columns, nil
}

// normalizeHeader folds case, separators and a UTF-8 BOM so that
// "customer_type" and " Customer Type" compare equal.
func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ToLower(s)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func headerNames(header []string) []string {
	last := len(header) - 1
	for last >= 0 && strings.TrimSpace(header[last]) == "" {
		last--
	}
	names := make([]string, 0, last+1)
	for _, h := range header[:last+1] {
		names = append(names, strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}
	return names
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func categoryValue(s string) string {
	if s == "" {
		return domain.UnknownKey
	}
	return s
}

var numberCleaner = strings.NewReplacer(",", "", "$", "", " ", "")

// parseNumber coerces a numeric cell. blank is true for empty cells, which
// hold no value; ok is false for text that is not a number.
func parseNumber(s string) (d decimal.Decimal, blank, ok bool) {
	s = numberCleaner.Replace(s)
	if s == "" {
		return decimal.Zero, true, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false, false
	}
	return d, false, true
}
