package exporter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ahmedokasha74/thread-trend-dashboard/internal/dataprocessing"
	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

func testAnalysis(t *testing.T) *domain.Analysis {
	t.Helper()

	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	records := []domain.Record{
		{Date: day, Channel: "Email", Season: "Winter", CustomerType: "New", TimeOfDay: "Morning",
			Revenue: decimal.NewFromInt(100), AdSpend: decimal.NewFromInt(50), Conversions: 2},
		{Date: day, Channel: "Social", Season: "Summer", CustomerType: "Returning", TimeOfDay: "Evening",
			Revenue: decimal.NewFromInt(200), AdSpend: decimal.NewFromInt(20), Conversions: 5},
	}

	agg, err := dataprocessing.Aggregate(records)
	require.NoError(t, err)

	return &domain.Analysis{
		ID:          "test",
		Source:      "transactions.xlsx",
		Sheet:       "Sheet1",
		GeneratedAt: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		RowCount:    2,
		ColumnCount: 8,
		Preview:     records,
		KPIs:        agg.KPIs,
		Breakdowns:  agg.Breakdowns,
		Charts:      dataprocessing.Charts(agg.Breakdowns),
		Summary:     dataprocessing.Summarize(agg),
	}
}
