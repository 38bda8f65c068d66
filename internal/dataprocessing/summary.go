package dataprocessing

import (
	"fmt"

	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

// chartTitles are the headings of the revenue charts.
var chartTitles = map[domain.Dimension]string{
	domain.DimensionChannel:      "Revenue by Channel",
	domain.DimensionSeason:       "Average Revenue by Season",
	domain.DimensionCustomerType: "Average Revenue by Customer Type",
	domain.DimensionTimeOfDay:    "Average Revenue by Time of Day",
}

// ChartTitle returns the heading of the revenue chart for d.
func ChartTitle(d domain.Dimension) string {
	if title, ok := chartTitles[d]; ok {
		return title
	}
	return "Revenue by " + d.Label()
}

// Charts projects every breakdown onto a (key, revenue) series in the
// breakdown's own order.
func Charts(breakdowns []domain.Breakdown) []domain.ChartSeries {
	charts := make([]domain.ChartSeries, 0, len(breakdowns))
	for _, b := range breakdowns {
		series := domain.ChartSeries{
			Title:     ChartTitle(b.Dimension),
			Dimension: b.Dimension,
			Points:    make([]domain.ChartPoint, 0, len(b.Groups)),
		}
		for _, g := range b.Groups {
			series.Points = append(series.Points, domain.ChartPoint{Key: g.Key, Revenue: g.Revenue})
		}
		charts = append(charts, series)
	}
	return charts
}

// Summarize names the top performer of each breakdown and renders the
// highlight lines shown under the charts.
func Summarize(agg Aggregates) domain.Summary {
	s := domain.Summary{OverallROI: agg.KPIs.ROI}
	for _, b := range agg.Breakdowns {
		switch b.Dimension {
		case domain.DimensionChannel:
			s.TopChannel = b.Top
		case domain.DimensionSeason:
			s.BestSeason = b.Top
		case domain.DimensionCustomerType:
			s.BestCustomerType = b.Top
		case domain.DimensionTimeOfDay:
			s.BestTimeOfDay = b.Top
		}
	}

	s.Highlights = []string{
		fmt.Sprintf("Top Channel: %s", s.TopChannel),
		fmt.Sprintf("Best Season: %s", s.BestSeason),
		fmt.Sprintf("Best Customer Type: %s", s.BestCustomerType),
		fmt.Sprintf("Best Time of Day: %s", s.BestTimeOfDay),
		fmt.Sprintf("Overall ROI: %s", s.OverallROI),
	}
	return s
}
