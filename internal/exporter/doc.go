// Package exporter renders analysis results for people and spreadsheets.
//
// This package contains three main components:
//
// Formatting: FormatMoney, FormatCount, FormatDecimal and FormatPercent
// render KPI values the way the dashboard shows them.
//
// CSVWriter: writes breakdown tables as CSV with an optional UTF-8 BOM
// for Excel compatibility.
//
// Workbook: BuildWorkbook lays out a full XLSX report with a summary
// sheet, one sheet and revenue chart per breakdown, and a record preview.
//
// Example usage:
//
//	w := exporter.NewCSVWriter("reports", logger)
//	err := w.WriteBreakdown(os.Stdout, analysis.Breakdowns[0], false)
//
//	err = exporter.SaveWorkbook("reports/q1.xlsx", analysis)
package exporter
