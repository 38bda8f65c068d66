package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one validated marketing transaction row.
type Record struct {
	Date         time.Time       `json:"date"`
	Channel      string          `json:"channel"`
	Season       string          `json:"season"`
	CustomerType string          `json:"customer_type"`
	TimeOfDay    string          `json:"time_of_day"`
	Revenue      decimal.Decimal `json:"revenue"`
	AdSpend      decimal.Decimal `json:"ad_spend"`
	Conversions  int64           `json:"conversions"`

	// Blank marks numeric cells that were empty in the source. They read
	// as zero in totals and are left out of means.
	Blank NumericField `json:"-"`
}

// NumericField is a bit set of a record's numeric columns.
type NumericField uint8

const (
	FieldRevenue NumericField = 1 << iota
	FieldAdSpend
	FieldConversions
)

// Has reports whether the record holds a value for f.
func (r Record) Has(f NumericField) bool {
	return r.Blank&f == 0
}

// UnknownKey is the group key used for records whose category cell is blank.
const UnknownKey = "Unknown"

// Dimension names a categorical column records can be grouped by.
type Dimension string

const (
	DimensionChannel      Dimension = "channel"
	DimensionSeason       Dimension = "season"
	DimensionCustomerType Dimension = "customer_type"
	DimensionTimeOfDay    Dimension = "time_of_day"
)

// Dimensions lists every grouping dimension in presentation order.
var Dimensions = []Dimension{
	DimensionChannel,
	DimensionSeason,
	DimensionCustomerType,
	DimensionTimeOfDay,
}

// Label returns the spreadsheet column name of the dimension.
func (d Dimension) Label() string {
	switch d {
	case DimensionChannel:
		return "Channel"
	case DimensionSeason:
		return "Season"
	case DimensionCustomerType:
		return "Customer Type"
	case DimensionTimeOfDay:
		return "Time of Day"
	}
	return string(d)
}

// Valid reports whether d is one of the known dimensions.
func (d Dimension) Valid() bool {
	for _, known := range Dimensions {
		if d == known {
			return true
		}
	}
	return false
}

// Key returns the record's value for the given dimension.
func (r Record) Key(d Dimension) string {
	switch d {
	case DimensionChannel:
		return r.Channel
	case DimensionSeason:
		return r.Season
	case DimensionCustomerType:
		return r.CustomerType
	case DimensionTimeOfDay:
		return r.TimeOfDay
	}
	return ""
}

// CellError describes a numeric cell that could not be coerced.
// Row is the 1-based spreadsheet row number.
type CellError struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Dataset is the output of the record loader for one uploaded file.
type Dataset struct {
	Sheet       string      `json:"sheet,omitempty"`
	Columns     []string    `json:"columns"`
	Records     []Record    `json:"records"`
	TotalRows   int         `json:"total_rows"`
	DroppedRows int         `json:"dropped_rows"`
	CellErrors  []CellError `json:"cell_errors,omitempty"`
}
