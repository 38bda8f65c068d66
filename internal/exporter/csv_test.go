package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

func TestCSVWriter_WriteBreakdown(t *testing.T) {
	a := testAnalysis(t)
	w := NewCSVWriter("", nil)

	tests := []struct {
		name      string
		dimension domain.Dimension
		header    []string
		first     []string
	}{
		{
			name:      "channel sums with roi",
			dimension: domain.DimensionChannel,
			header:    []string{"Channel", "Records", "Revenue", "Conversions", "Ad Spend", "ROI %"},
			first:     []string{"Social", "1", "200.00", "5.00", "20.00", "900.00"},
		},
		{
			name:      "season means",
			dimension: domain.DimensionSeason,
			header:    []string{"Season", "Records", "Avg Revenue", "Avg Conversions"},
			first:     []string{"Summer", "1", "200.00", "5.00"},
		},
		{
			name:      "customer type means with ad spend",
			dimension: domain.DimensionCustomerType,
			header:    []string{"Customer Type", "Records", "Avg Revenue", "Avg Conversions", "Avg Ad Spend"},
			first:     []string{"New", "1", "100.00", "2.00", "50.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := a.Breakdown(tt.dimension)
			require.True(t, ok)

			var buf bytes.Buffer
			require.NoError(t, w.WriteBreakdown(&buf, b, false))

			records, err := csv.NewReader(&buf).ReadAll()
			require.NoError(t, err)
			require.Len(t, records, len(b.Groups)+1)
			assert.Equal(t, tt.header, records[0])
			assert.Equal(t, tt.first, records[1])
		})
	}
}

func TestCSVWriter_UndefinedROI(t *testing.T) {
	undefined := domain.UndefinedRatio
	b := domain.Breakdown{
		Dimension: domain.DimensionChannel,
		Statistic: domain.StatisticSum,
		Groups:    []domain.GroupAggregate{{Key: "Email", Count: 1, ROI: &undefined}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter("", nil).WriteBreakdown(&buf, b, false))
	assert.Contains(t, buf.String(), "Email,1,0.00,0.00,n/a")
}

func TestCSVWriter_BOM(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSVWriter("", nil).Write(&buf, WriteOptions{
		Headers:   []string{"A"},
		Records:   [][]string{{"1"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))
	assert.Equal(t, "A\n1\n", string(buf.Bytes()[3:]))
}

func TestCSVWriter_WriteBreakdowns(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(filepath.Join(dir, "reports"), nil)

	paths, err := w.WriteBreakdowns(testAnalysis(t), "q1")
	require.NoError(t, err)
	require.Len(t, paths, 4)
	assert.Equal(t, filepath.Join(dir, "reports", "q1_by_channel.csv"), paths[0])
	assert.Equal(t, filepath.Join(dir, "reports", "q1_by_time_of_day.csv"), paths[3])

	content, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, utf8BOM))
	assert.Contains(t, string(content), "Channel,Records,Revenue")
}

func TestBreakdownFileName(t *testing.T) {
	assert.Equal(t, "report_by_season.csv", BreakdownFileName("", domain.DimensionSeason))
	assert.Equal(t, "jan_by_channel.csv", BreakdownFileName("jan", domain.DimensionChannel))
}
