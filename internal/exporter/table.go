package exporter

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

// Cell is one typed value of a breakdown table. Text holds the plain
// CSV rendering; Number is set for numeric cells so workbooks can store
// real numbers.
type Cell struct {
	Text   string
	Number *float64
}

// Table is a breakdown laid out as header plus rows.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]Cell
}

// BreakdownTable lays out a breakdown. Mean breakdowns get "Avg" column
// headers; ad spend and ROI columns appear only when the groups carry them.
func BreakdownTable(b domain.Breakdown) Table {
	prefix := ""
	if b.Statistic == domain.StatisticMean {
		prefix = "Avg "
	}

	withAdSpend, withROI := false, false
	if len(b.Groups) > 0 {
		withAdSpend = b.Groups[0].AdSpend != nil
		withROI = b.Groups[0].ROI != nil
	}

	t := Table{
		Title:   b.Dimension.Label(),
		Headers: []string{b.Dimension.Label(), "Records", prefix + "Revenue", prefix + "Conversions"},
		Rows:    make([][]Cell, 0, len(b.Groups)),
	}
	if withAdSpend {
		t.Headers = append(t.Headers, prefix+"Ad Spend")
	}
	if withROI {
		t.Headers = append(t.Headers, "ROI %")
	}

	for _, g := range b.Groups {
		row := []Cell{
			{Text: g.Key},
			intCell(int64(g.Count)),
			decimalCell(g.Revenue),
			decimalCell(g.Conversions),
		}
		if withAdSpend {
			if g.AdSpend != nil {
				row = append(row, decimalCell(*g.AdSpend))
			} else {
				row = append(row, Cell{})
			}
		}
		if withROI {
			row = append(row, ratioCell(g.ROI))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

var previewHeaders = []string{"Date", "Channel", "Season", "Customer Type", "Time of Day", "Revenue", "Ad Spend", "Conversions"}

// PreviewTable lays out the leading records of a dataset.
func PreviewTable(records []domain.Record) Table {
	t := Table{
		Title:   "Preview",
		Headers: previewHeaders,
		Rows:    make([][]Cell, 0, len(records)),
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []Cell{
			{Text: r.Date.Format("2006-01-02")},
			{Text: r.Channel},
			{Text: r.Season},
			{Text: r.CustomerType},
			{Text: r.TimeOfDay},
			blankOr(r, domain.FieldRevenue, decimalCell(r.Revenue)),
			blankOr(r, domain.FieldAdSpend, decimalCell(r.AdSpend)),
			blankOr(r, domain.FieldConversions, intCell(r.Conversions)),
		})
	}
	return t
}

// Records returns the table as plain strings, header first.
func (t Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, t.Headers)
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, c := range row {
			rec[i] = c.Text
		}
		out = append(out, rec)
	}
	return out
}

// blankOr returns an empty cell where the source cell was blank.
func blankOr(r domain.Record, f domain.NumericField, c Cell) Cell {
	if !r.Has(f) {
		return Cell{}
	}
	return c
}

func intCell(n int64) Cell {
	f := float64(n)
	return Cell{Text: strconv.FormatInt(n, 10), Number: &f}
}

func decimalCell(d decimal.Decimal) Cell {
	f := d.Round(2).InexactFloat64()
	return Cell{Text: FormatDecimal(d), Number: &f}
}

func ratioCell(r *domain.Ratio) Cell {
	if r == nil || !r.Defined {
		return Cell{Text: "n/a"}
	}
	f := r.Value.Round(2).InexactFloat64()
	return Cell{Text: FormatDecimal(r.Value), Number: &f}
}
