package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

func TestBreakdownTable_MeanHeaders(t *testing.T) {
	a := testAnalysis(t)
	b, ok := a.Breakdown(domain.DimensionSeason)
	require.True(t, ok)

	table := BreakdownTable(b)
	assert.Equal(t, "Season", table.Title)
	assert.Equal(t, "Avg Revenue", table.Headers[2])
	assert.Len(t, table.Rows, 2)
}

func TestPreviewTable(t *testing.T) {
	table := PreviewTable(testAnalysis(t).Preview)

	records := table.Records()
	require.Len(t, records, 3)
	assert.Equal(t, previewHeaders, records[0])
	assert.Equal(t, []string{"2024-01-05", "Email", "Winter", "New", "Morning", "100.00", "50.00", "2"}, records[1])

	require.NotNil(t, table.Rows[1][7].Number)
	assert.Equal(t, float64(5), *table.Rows[1][7].Number)
	assert.Nil(t, table.Rows[1][0].Number)
}

func TestPreviewTable_Empty(t *testing.T) {
	table := PreviewTable(nil)
	assert.Empty(t, table.Rows)
	assert.Len(t, table.Records(), 1)
}

func TestPreviewTable_BlankNumbers(t *testing.T) {
	r := testAnalysis(t).Preview[0]
	r.Blank = domain.FieldAdSpend

	table := PreviewTable([]domain.Record{r})
	assert.Equal(t, "100.00", table.Records()[1][5])
	assert.Equal(t, "", table.Records()[1][6])
	assert.Nil(t, table.Rows[0][6].Number)
}
