package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

func TestCharts(t *testing.T) {
	agg, err := Aggregate(sampleRecords())
	require.NoError(t, err)

	charts := Charts(agg.Breakdowns)
	require.Len(t, charts, 4)

	titles := []string{
		"Revenue by Channel",
		"Average Revenue by Season",
		"Average Revenue by Customer Type",
		"Average Revenue by Time of Day",
	}
	for i, c := range charts {
		assert.Equal(t, titles[i], c.Title)
		b := agg.Breakdowns[i]
		assert.Equal(t, b.Dimension, c.Dimension)
		require.Len(t, c.Points, len(b.Groups))
		for j, p := range c.Points {
			assert.Equal(t, b.Groups[j].Key, p.Key)
			assert.True(t, b.Groups[j].Revenue.Equal(p.Revenue))
		}
	}
}

func TestSummarize(t *testing.T) {
	records := []domain.Record{
		rec("Email", "Winter", "New", "Morning", 100, 50, 2),
		rec("Social", "Summer", "Returning", "Evening", 200, 20, 5),
	}
	agg, err := Aggregate(records)
	require.NoError(t, err)

	s := Summarize(agg)
	assert.Equal(t, "Social", s.TopChannel)
	assert.Equal(t, "Summer", s.BestSeason)
	assert.Equal(t, "Returning", s.BestCustomerType)
	assert.Equal(t, "Evening", s.BestTimeOfDay)
	assert.Equal(t, []string{
		"Top Channel: Social",
		"Best Season: Summer",
		"Best Customer Type: Returning",
		"Best Time of Day: Evening",
		"Overall ROI: 328.57%",
	}, s.Highlights)
}

func TestChartTitle_Fallback(t *testing.T) {
	assert.Equal(t, "Revenue by region", ChartTitle(domain.Dimension("region")))
}
