package testutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Header is the header row of a complete marketing transactions sheet.
var Header = []interface{}{"Date", "Channel", "Season", "Customer Type", "Time of Day", "Revenue", "Ad Spend", "Conversions"}

// WorkbookBytes writes rows to sheet starting at A1 and returns the
// encoded XLSX workbook.
func WorkbookBytes(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

// CSVRows splits simple comma separated text (no quoting) into string
// cells, one row per non-empty line.
func CSVRows(text string) [][]interface{} {
	var rows [][]interface{}
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, ",")
		row := make([]interface{}, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		rows = append(rows, row)
	}
	return rows
}

// WorkbookFromCSV stores the cells of text as strings in a workbook.
func WorkbookFromCSV(t *testing.T, sheet, text string) *bytes.Buffer {
	t.Helper()
	return WorkbookBytes(t, sheet, CSVRows(text))
}
