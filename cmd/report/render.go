package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ahmedokasha74/thread-trend-dashboard/internal/dataprocessing"
	"github.com/ahmedokasha74/thread-trend-dashboard/internal/exporter"
	api "github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/api/v1"
	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

func render(w io.Writer, format string, analyses []*domain.Analysis) error {
	switch format {
	case "json":
		return renderJSON(w, analyses)
	case "markdown":
		return renderMarkdown(w, analyses)
	default:
		return renderText(w, analyses)
	}
}

// renderJSON writes one array holding the API view of every analysis.
func renderJSON(w io.Writer, analyses []*domain.Analysis) error {
	out := make([]api.AnalysisResponse, 0, len(analyses))
	for _, a := range analyses {
		out = append(out, api.NewAnalysisResponse(a))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderText(w io.Writer, analyses []*domain.Analysis) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, a := range analyses {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "== %s ==\n", a.Source)
		fmt.Fprintf(tw, "Rows: %d | Columns: %d | Dropped rows: %d\n\n", a.RowCount, a.ColumnCount, a.DroppedRows)

		fmt.Fprintf(tw, "Total Revenue\t%s\n", exporter.FormatMoney(a.KPIs.TotalRevenue))
		fmt.Fprintf(tw, "Total Ad Spend\t%s\n", exporter.FormatMoney(a.KPIs.TotalAdSpend))
		fmt.Fprintf(tw, "Total Conversions\t%s\n", exporter.FormatCount(a.KPIs.TotalConversions))
		fmt.Fprintf(tw, "ROI\t%s\n", exporter.FormatPercent(a.KPIs.ROI))

		fmt.Fprintln(tw, "\nPreview")
		writeTextTable(tw, exporter.PreviewTable(a.Preview))

		for _, b := range a.Breakdowns {
			fmt.Fprintf(tw, "\n%s\n", dataprocessing.ChartTitle(b.Dimension))
			writeTextTable(tw, exporter.BreakdownTable(b))
		}

		fmt.Fprintln(tw, "\nSummary")
		for _, line := range a.Summary.Highlights {
			fmt.Fprintf(tw, "- %s\n", line)
		}
	}
	return tw.Flush()
}

// writeTextTable writes t as tab-separated cells. Callers flush the
// tabwriter once all sections are written.
func writeTextTable(w io.Writer, t exporter.Table) {
	for _, rec := range t.Records() {
		fmt.Fprintln(w, strings.Join(rec, "\t"))
	}
}

func renderMarkdown(w io.Writer, analyses []*domain.Analysis) error {
	var b strings.Builder
	for i, a := range analyses {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "# %s\n\n", a.Source)
		fmt.Fprintf(&b, "**Rows:** %d | **Columns:** %d | **Dropped rows:** %d\n\n", a.RowCount, a.ColumnCount, a.DroppedRows)

		b.WriteString("| KPI | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| Total Revenue | %s |\n", exporter.FormatMoney(a.KPIs.TotalRevenue))
		fmt.Fprintf(&b, "| Total Ad Spend | %s |\n", exporter.FormatMoney(a.KPIs.TotalAdSpend))
		fmt.Fprintf(&b, "| Total Conversions | %s |\n", exporter.FormatCount(a.KPIs.TotalConversions))
		fmt.Fprintf(&b, "| ROI | %s |\n", exporter.FormatPercent(a.KPIs.ROI))

		b.WriteString("\n## Preview\n\n")
		writeMarkdownTable(&b, exporter.PreviewTable(a.Preview))

		for _, bd := range a.Breakdowns {
			fmt.Fprintf(&b, "\n## %s\n\n", dataprocessing.ChartTitle(bd.Dimension))
			writeMarkdownTable(&b, exporter.BreakdownTable(bd))
		}

		b.WriteString("\n## Summary\n\n")
		for _, line := range a.Summary.Highlights {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeMarkdownTable(b *strings.Builder, t exporter.Table) {
	records := t.Records()
	for i, rec := range records {
		cells := make([]string, len(rec))
		for j, c := range rec {
			cells[j] = strings.ReplaceAll(c, "|", `\|`)
		}
		fmt.Fprintf(b, "| %s |\n", strings.Join(cells, " | "))
		if i == 0 {
			b.WriteString("|" + strings.Repeat("---|", len(rec)) + "\n")
		}
	}
}
