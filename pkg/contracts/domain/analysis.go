package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statistic is the per-group fold applied by a breakdown.
type Statistic string

const (
	StatisticSum  Statistic = "sum"
	StatisticMean Statistic = "mean"
)

// Ratio is a percentage that may be undefined because its denominator is zero.
type Ratio struct {
	Value   decimal.Decimal
	Defined bool
}

// UndefinedRatio is the value reported when a ratio's denominator is zero.
var UndefinedRatio = Ratio{}

// NewRatio returns a defined ratio holding v.
func NewRatio(v decimal.Decimal) Ratio {
	return Ratio{Value: v, Defined: true}
}

// Float64 returns the ratio as a float and whether it is defined.
func (r Ratio) Float64() (float64, bool) {
	if !r.Defined {
		return 0, false
	}
	return r.Value.InexactFloat64(), true
}

// String renders the ratio as a percentage with two decimals, or "n/a"
// when undefined.
func (r Ratio) String() string {
	if !r.Defined {
		return "n/a"
	}
	return r.Value.StringFixed(2) + "%"
}

// KPISummary holds the overall totals of a dataset.
type KPISummary struct {
	TotalRevenue     decimal.Decimal
	TotalAdSpend     decimal.Decimal
	TotalConversions int64
	ROI              Ratio
}

// GroupAggregate holds the statistics of one group within a breakdown.
// AdSpend is nil when the breakdown does not report it and ROI is nil
// when the breakdown does not derive it.
type GroupAggregate struct {
	Key         string
	Count       int
	Revenue     decimal.Decimal
	Conversions decimal.Decimal
	AdSpend     *decimal.Decimal
	ROI         *Ratio
}

// Breakdown is the grouping of a dataset by one dimension.
type Breakdown struct {
	Dimension Dimension
	Statistic Statistic
	Groups    []GroupAggregate
	Top       string
}

// ChartPoint is one bar of a revenue chart.
type ChartPoint struct {
	Key     string
	Revenue decimal.Decimal
}

// ChartSeries is a chart-ready (key, revenue) series for one breakdown.
type ChartSeries struct {
	Title     string
	Dimension Dimension
	Points    []ChartPoint
}

// Summary names the top performers of every breakdown and the overall ROI.
type Summary struct {
	TopChannel       string
	BestSeason       string
	BestCustomerType string
	BestTimeOfDay    string
	OverallROI       Ratio
	Highlights       []string
}

// Analysis is the complete result of one analysis run.
type Analysis struct {
	ID          string
	Source      string
	Sheet       string
	GeneratedAt time.Time
	RowCount    int
	ColumnCount int
	Columns     []string
	DroppedRows int
	Preview     []Record
	KPIs        KPISummary
	Breakdowns  []Breakdown
	Charts      []ChartSeries
	Summary     Summary
}

// Breakdown returns the breakdown for d, if present.
func (a *Analysis) Breakdown(d Dimension) (Breakdown, bool) {
	for _, b := range a.Breakdowns {
		if b.Dimension == d {
			return b, true
		}
	}
	return Breakdown{}, false
}
