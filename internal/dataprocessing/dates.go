package dataprocessing

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order. Month-first slash dates come before
// day-first ones, so 03/04/2024 reads as March 4.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/06",
	"02/01/2006",
	"2/1/2006",
	"2006/01/02",
	"2006/1/2",
	"2006.01.02",
	"02-Jan-2006",
	"2-Jan-2006",
	"02-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"Mon, 02 Jan 2006",
	"20060102",
}

// maxExcelSerial is the serial number of 9999-12-31.
const maxExcelSerial = 2958465

// DateParser converts date cells to calendar dates.
type DateParser struct {
	serials  bool
	date1904 bool
}

// NewDateParser creates a parser for text sources such as CSV. Bare
// numbers are not dates.
func NewDateParser() DateParser {
	return DateParser{}
}

// NewWorkbookDateParser creates a parser that also reads numeric Excel
// serial dates. date1904 selects the 1904 workbook date system.
func NewWorkbookDateParser(date1904 bool) DateParser {
	return DateParser{serials: true, date1904: date1904}
}

// Parse returns the calendar date (UTC midnight) of s, or false when s is
// not recognised.
func (p DateParser) Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && p.serials {
		if serial >= 1 && serial <= maxExcelSerial {
			t, err := excelize.ExcelDateToTime(serial, p.date1904)
			if err != nil {
				return time.Time{}, false
			}
			return truncateToDate(t), true
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateToDate(t), true
		}
	}
	return time.Time{}, false
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
