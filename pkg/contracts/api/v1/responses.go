package api

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

// AnalysisResponse is the JSON view of domain.Analysis.
// Ratios are null when undefined.
type AnalysisResponse struct {
	ID          string              `json:"id"`
	Source      string              `json:"source"`
	Sheet       string              `json:"sheet,omitempty"`
	GeneratedAt time.Time           `json:"generated_at"`
	Rows        int                 `json:"rows"`
	Columns     int                 `json:"columns"`
	ColumnNames []string            `json:"column_names"`
	DroppedRows int                 `json:"dropped_rows"`
	Preview     []RecordResponse    `json:"preview"`
	KPIs        KPIResponse         `json:"kpis"`
	Breakdowns  []BreakdownResponse `json:"breakdowns"`
	Charts      []ChartResponse     `json:"charts"`
	Summary     SummaryResponse     `json:"summary"`
}

// RecordResponse is the JSON view of a validated record.
type RecordResponse struct {
	Date         string  `json:"date"`
	Channel      string  `json:"channel"`
	Season       string  `json:"season"`
	CustomerType string  `json:"customer_type"`
	TimeOfDay    string  `json:"time_of_day"`
	Revenue      float64 `json:"revenue"`
	AdSpend      float64 `json:"ad_spend"`
	Conversions  int64   `json:"conversions"`
}

// KPIResponse is the JSON view of the overall KPIs.
type KPIResponse struct {
	TotalRevenue     float64  `json:"total_revenue"`
	TotalAdSpend     float64  `json:"total_ad_spend"`
	TotalConversions int64    `json:"total_conversions"`
	ROI              *float64 `json:"roi_percent"`
}

// GroupResponse is the JSON view of one group of a breakdown.
type GroupResponse struct {
	Key         string   `json:"key"`
	Count       int      `json:"count"`
	Revenue     float64  `json:"revenue"`
	Conversions float64  `json:"conversions"`
	AdSpend     *float64 `json:"ad_spend,omitempty"`
	ROI         *float64 `json:"roi_percent,omitempty"`
	HasROI      bool     `json:"-"`
}

// MarshalJSON writes roi_percent as null for groups that derive ROI but
// whose ad spend is zero.
func (g GroupResponse) MarshalJSON() ([]byte, error) {
	type alias GroupResponse
	if !g.HasROI {
		return json.Marshal(alias(g))
	}
	return json.Marshal(struct {
		alias
		ROI *float64 `json:"roi_percent"`
	}{alias(g), g.ROI})
}

// BreakdownResponse is the JSON view of a breakdown.
type BreakdownResponse struct {
	Dimension string          `json:"dimension"`
	Label     string          `json:"label"`
	Statistic string          `json:"statistic"`
	Top       string          `json:"top"`
	Groups    []GroupResponse `json:"groups"`
}

// ChartPointResponse is one bar of a chart.
type ChartPointResponse struct {
	Key     string  `json:"key"`
	Revenue float64 `json:"revenue"`
}

// ChartResponse is a chart-ready series.
type ChartResponse struct {
	Title     string               `json:"title"`
	Dimension string               `json:"dimension"`
	Points    []ChartPointResponse `json:"points"`
}

// SummaryResponse is the JSON view of the highlights block.
type SummaryResponse struct {
	TopChannel       string   `json:"top_channel"`
	BestSeason       string   `json:"best_season"`
	BestCustomerType string   `json:"best_customer_type"`
	BestTimeOfDay    string   `json:"best_time_of_day"`
	OverallROI       *float64 `json:"overall_roi_percent"`
	Highlights       []string `json:"highlights"`
}

// NewAnalysisResponse converts a domain analysis into its JSON view.
func NewAnalysisResponse(a *domain.Analysis) AnalysisResponse {
	resp := AnalysisResponse{
		ID:          a.ID,
		Source:      a.Source,
		Sheet:       a.Sheet,
		GeneratedAt: a.GeneratedAt,
		Rows:        a.RowCount,
		Columns:     a.ColumnCount,
		ColumnNames: a.Columns,
		DroppedRows: a.DroppedRows,
		Preview:     make([]RecordResponse, 0, len(a.Preview)),
		KPIs: KPIResponse{
			TotalRevenue:     a.KPIs.TotalRevenue.InexactFloat64(),
			TotalAdSpend:     a.KPIs.TotalAdSpend.InexactFloat64(),
			TotalConversions: a.KPIs.TotalConversions,
			ROI:              ratioPtr(a.KPIs.ROI),
		},
		Breakdowns: make([]BreakdownResponse, 0, len(a.Breakdowns)),
		Charts:     make([]ChartResponse, 0, len(a.Charts)),
		Summary: SummaryResponse{
			TopChannel:       a.Summary.TopChannel,
			BestSeason:       a.Summary.BestSeason,
			BestCustomerType: a.Summary.BestCustomerType,
			BestTimeOfDay:    a.Summary.BestTimeOfDay,
			OverallROI:       ratioPtr(a.Summary.OverallROI),
			Highlights:       a.Summary.Highlights,
		},
	}

	for _, r := range a.Preview {
		resp.Preview = append(resp.Preview, RecordResponse{
			Date:         r.Date.Format("2006-01-02"),
			Channel:      r.Channel,
			Season:       r.Season,
			CustomerType: r.CustomerType,
			TimeOfDay:    r.TimeOfDay,
			Revenue:      r.Revenue.InexactFloat64(),
			AdSpend:      r.AdSpend.InexactFloat64(),
			Conversions:  r.Conversions,
		})
	}

	for _, b := range a.Breakdowns {
		br := BreakdownResponse{
			Dimension: string(b.Dimension),
			Label:     b.Dimension.Label(),
			Statistic: string(b.Statistic),
			Top:       b.Top,
			Groups:    make([]GroupResponse, 0, len(b.Groups)),
		}
		for _, g := range b.Groups {
			gr := GroupResponse{
				Key:         g.Key,
				Count:       g.Count,
				Revenue:     g.Revenue.InexactFloat64(),
				Conversions: g.Conversions.InexactFloat64(),
				AdSpend:     decimalPtr(g.AdSpend),
			}
			if g.ROI != nil {
				gr.HasROI = true
				gr.ROI = ratioPtr(*g.ROI)
			}
			br.Groups = append(br.Groups, gr)
		}
		resp.Breakdowns = append(resp.Breakdowns, br)
	}

	for _, c := range a.Charts {
		cr := ChartResponse{
			Title:     c.Title,
			Dimension: string(c.Dimension),
			Points:    make([]ChartPointResponse, 0, len(c.Points)),
		}
		for _, p := range c.Points {
			cr.Points = append(cr.Points, ChartPointResponse{Key: p.Key, Revenue: p.Revenue.InexactFloat64()})
		}
		resp.Charts = append(resp.Charts, cr)
	}

	return resp
}

func ratioPtr(r domain.Ratio) *float64 {
	v, ok := r.Float64()
	if !ok {
		return nil
	}
	return &v
}

func decimalPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	v := d.InexactFloat64()
	return &v
}
