package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

// Sheet names of the report workbook.
const (
	SummarySheet = "Summary"
	PreviewSheet = "Preview"
)

// WriteWorkbook encodes the analysis as an XLSX report to w.
func WriteWorkbook(w io.Writer, a *domain.Analysis) error {
	f, err := BuildWorkbook(a)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveWorkbook writes the report workbook to path, creating its directory.
func SaveWorkbook(path string, a *domain.Analysis) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := BuildWorkbook(a)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// BuildWorkbook lays out the report: a Summary sheet, one sheet per
// breakdown with a revenue column chart, and a Preview sheet.
func BuildWorkbook(a *domain.Analysis) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeSummarySheet(f, a, bold); err != nil {
		f.Close()
		return nil, fmt.Errorf("summary sheet: %w", err)
	}

	titles := make(map[domain.Dimension]string, len(a.Charts))
	for _, c := range a.Charts {
		titles[c.Dimension] = c.Title
	}
	for _, b := range a.Breakdowns {
		if err := writeBreakdownSheet(f, b, titles[b.Dimension], bold); err != nil {
			f.Close()
			return nil, fmt.Errorf("%s sheet: %w", b.Dimension, err)
		}
	}

	if err := writePreviewSheet(f, a.Preview, bold); err != nil {
		f.Close()
		return nil, fmt.Errorf("preview sheet: %w", err)
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSummarySheet(f *excelize.File, a *domain.Analysis, bold int) error {
	rows := [][]interface{}{
		{"Thread & Trend Performance Report"},
		{},
		{"Source", a.Source},
		{"Sheet", a.Sheet},
		{"Generated", a.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")},
		{"Rows", a.RowCount},
		{"Columns", a.ColumnCount},
		{"Dropped Rows", a.DroppedRows},
		{},
		{"Total Revenue", FormatMoney(a.KPIs.TotalRevenue)},
		{"Total Ad Spend", FormatMoney(a.KPIs.TotalAdSpend)},
		{"Total Conversions", FormatCount(a.KPIs.TotalConversions)},
		{"ROI", FormatPercent(a.KPIs.ROI)},
		{},
		{"Highlights"},
	}
	for _, line := range a.Summary.Highlights {
		rows = append(rows, []interface{}{line})
	}

	if err := setRows(f, SummarySheet, 1, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "A1", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A15", "A15", bold); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "A", "A", 36)
}

func writeBreakdownSheet(f *excelize.File, b domain.Breakdown, title string, bold int) error {
	sheet := b.Dimension.Label()
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	table := BreakdownTable(b)
	lastCol, err := writeTable(f, sheet, table, bold)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
		return err
	}

	if len(table.Rows) == 0 {
		return nil
	}
	if title == "" {
		title = "Revenue by " + b.Dimension.Label()
	}
	last := len(table.Rows) + 1
	chartCell, err := excelize.CoordinatesToCellName(len(table.Headers)+2, 1)
	if err != nil {
		return err
	}
	return f.AddChart(sheet, chartCell, &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$C$1", sheet),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, last),
			Values:     fmt.Sprintf("'%s'!$C$2:$C$%d", sheet, last),
		}},
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "none"},
	})
}

func writePreviewSheet(f *excelize.File, preview []domain.Record, bold int) error {
	if _, err := f.NewSheet(PreviewSheet); err != nil {
		return err
	}
	_, err := writeTable(f, PreviewSheet, PreviewTable(preview), bold)
	return err
}

// writeTable writes t from A1 with a bold header row and returns the name
// of its last column. Numeric cells are stored as numbers.
func writeTable(f *excelize.File, sheet string, t Table, bold int) (string, error) {
	rows := make([][]interface{}, 0, len(t.Rows)+1)
	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	rows = append(rows, header)
	for _, r := range t.Rows {
		row := make([]interface{}, len(r))
		for i, c := range r {
			if c.Number != nil {
				row[i] = *c.Number
			} else {
				row[i] = c.Text
			}
		}
		rows = append(rows, row)
	}
	if err := setRows(f, sheet, 1, rows); err != nil {
		return "", err
	}

	lastCol, err := excelize.ColumnNumberToName(len(t.Headers))
	if err != nil {
		return "", err
	}
	return lastCol, f.SetCellStyle(sheet, "A1", lastCol+"1", bold)
}

func setRows(f *excelize.File, sheet string, start int, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, start+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
