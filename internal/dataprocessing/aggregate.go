package dataprocessing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

// DivisionPlaces is the number of decimal places kept by means and ratios.
const DivisionPlaces = 16

var hundred = decimal.NewFromInt(100)

// Aggregates is the typed output of the aggregation engine.
type Aggregates struct {
	KPIs       domain.KPISummary
	Breakdowns []domain.Breakdown
}

// breakdownSpec describes how one dimension is folded.
type breakdownSpec struct {
	dimension   domain.Dimension
	statistic   domain.Statistic
	withAdSpend bool
	withROI     bool
	byRevenue   bool
}

var breakdownSpecs = []breakdownSpec{
	{dimension: domain.DimensionChannel, statistic: domain.StatisticSum, withAdSpend: true, withROI: true, byRevenue: true},
	{dimension: domain.DimensionSeason, statistic: domain.StatisticMean},
	{dimension: domain.DimensionCustomerType, statistic: domain.StatisticMean, withAdSpend: true},
	{dimension: domain.DimensionTimeOfDay, statistic: domain.StatisticMean},
}

// Aggregate computes the overall KPIs and the four breakdowns of records.
// It is pure: the input is not modified and equal input yields equal output.
func Aggregate(records []domain.Record) (Aggregates, error) {
	if len(records) == 0 {
		return Aggregates{}, ErrEmptyDataset
	}

	out := Aggregates{
		KPIs:       ComputeKPIs(records),
		Breakdowns: make([]domain.Breakdown, 0, len(breakdownSpecs)),
	}
	for _, spec := range breakdownSpecs {
		out.Breakdowns = append(out.Breakdowns, buildBreakdown(records, spec))
	}
	return out, nil
}

// ComputeKPIs returns the overall totals and ROI of records.
func ComputeKPIs(records []domain.Record) domain.KPISummary {
	var kpi domain.KPISummary
	for _, r := range records {
		kpi.TotalRevenue = kpi.TotalRevenue.Add(r.Revenue)
		kpi.TotalAdSpend = kpi.TotalAdSpend.Add(r.AdSpend)
		kpi.TotalConversions += r.Conversions
	}
	kpi.ROI = ROI(kpi.TotalRevenue, kpi.TotalAdSpend)
	return kpi
}

// ROI returns (revenue - adSpend) / adSpend * 100, undefined when adSpend is zero.
func ROI(revenue, adSpend decimal.Decimal) domain.Ratio {
	if adSpend.IsZero() {
		return domain.UndefinedRatio
	}
	return domain.NewRatio(revenue.Sub(adSpend).Mul(hundred).DivRound(adSpend, DivisionPlaces))
}

// groupTotals holds the sums of one group and, per numeric field, how
// many records carried a value. Means divide by those counts so blank
// cells do not pull them down.
type groupTotals struct {
	count        int
	revenue      decimal.Decimal
	adSpend      decimal.Decimal
	conversions  decimal.Decimal
	revenueN     int64
	adSpendN     int64
	conversionsN int64
}

// mean returns sum/n, or zero for a group with no values.
func mean(sum decimal.Decimal, n int64) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.DivRound(decimal.NewFromInt(n), DivisionPlaces)
}

func buildBreakdown(records []domain.Record, spec breakdownSpec) domain.Breakdown {
	totals := make(map[string]*groupTotals)
	for _, r := range records {
		key := r.Key(spec.dimension)
		t, ok := totals[key]
		if !ok {
			t = &groupTotals{}
			totals[key] = t
		}
		t.count++
		if r.Has(domain.FieldRevenue) {
			t.revenue = t.revenue.Add(r.Revenue)
			t.revenueN++
		}
		if r.Has(domain.FieldAdSpend) {
			t.adSpend = t.adSpend.Add(r.AdSpend)
			t.adSpendN++
		}
		if r.Has(domain.FieldConversions) {
			t.conversions = t.conversions.Add(decimal.NewFromInt(r.Conversions))
			t.conversionsN++
		}
	}

	groups := make([]domain.GroupAggregate, 0, len(totals))
	for key, t := range totals {
		g := domain.GroupAggregate{Key: key, Count: t.count}
		adSpend := t.adSpend
		switch spec.statistic {
		case domain.StatisticSum:
			g.Revenue = t.revenue
			g.Conversions = t.conversions
		case domain.StatisticMean:
			g.Revenue = mean(t.revenue, t.revenueN)
			g.Conversions = mean(t.conversions, t.conversionsN)
			adSpend = mean(t.adSpend, t.adSpendN)
		}
		if spec.withAdSpend {
			g.AdSpend = &adSpend
		}
		if spec.withROI {
			roi := ROI(t.revenue, t.adSpend)
			g.ROI = &roi
		}
		groups = append(groups, g)
	}

	if spec.byRevenue {
		sort.Slice(groups, func(i, j int) bool {
			if c := groups[i].Revenue.Cmp(groups[j].Revenue); c != 0 {
				return c > 0
			}
			return groups[i].Key < groups[j].Key
		})
	} else {
		sort.Slice(groups, func(i, j int) bool {
			return groups[i].Key < groups[j].Key
		})
	}

	return domain.Breakdown{
		Dimension: spec.dimension,
		Statistic: spec.statistic,
		Groups:    groups,
		Top:       TopPerformer(groups),
	}
}

// TopPerformer returns the key of the first group holding the maximum revenue.
func TopPerformer(groups []domain.GroupAggregate) string {
	if len(groups) == 0 {
		return ""
	}
	best := 0
	for i := 1; i < len(groups); i++ {
		if groups[i].Revenue.GreaterThan(groups[best].Revenue) {
			best = i
		}
	}
	return groups[best].Key
}
