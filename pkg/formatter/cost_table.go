package formatter

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/younsl/awskit/pkg/cost"
)

// PrintCostBreakdown prints services by cost with a TOTAL footer
func PrintCostBreakdown(w io.Writer, b cost.Breakdown) {
	fmt.Fprintln(w, "\nCurrent Period Cost Breakdown:")
	if len(b.Services) == 0 {
		fmt.Fprintln(w, "No cost data found for the period.")
		return
	}

	t := newGridTable(w)
	t.AppendHeader(table.Row{"Service", "Cost", "% of Total"})
	for _, s := range b.Services {
		t.AppendRow(table.Row{s.Service, cost.FormatCost(s.Cost), cost.FormatPercent(s.Percent)})
	}
	t.AppendFooter(table.Row{"TOTAL", cost.FormatCost(b.Total), "100.00%"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	t.Render()
}

// PrintCostInsights prints the numbered insights. Lines whose figure is
// unavailable are left out and the numbering is kept.
func PrintCostInsights(w io.Writer, r *cost.Report) {
	fmt.Fprintln(w, "\nComprehensive Cost Insights:")
	fmt.Fprintf(w, "1. Total cost for the past %d days: %s\n", r.Days, cost.FormatCost(r.Breakdown.Total))
	fmt.Fprintf(w, "2. Number of services used: %d\n", len(r.Breakdown.Services))
	if most, ok := r.Breakdown.MostExpensive(); ok {
		fmt.Fprintf(w, "3. Most expensive service: %s (%s)\n", most.Service, cost.FormatCost(most.Cost))
	}
	if least, ok := r.Breakdown.LeastExpensive(); ok {
		fmt.Fprintf(w, "4. Least expensive service: %s (%s)\n", least.Service, cost.FormatCost(least.Cost))
	}
	fmt.Fprintf(w, "5. Daily average cost: %s\n", cost.FormatCost(r.DailyAverage))

	if r.PreviousMonth != nil {
		fmt.Fprintf(w, "6. Previous month's total cost: %s\n", cost.FormatCost(*r.PreviousMonth))
	}
	if r.MonthToDate != nil {
		fmt.Fprintf(w, "7. Current month-to-date cost: %s\n", cost.FormatCost(*r.MonthToDate))
	}
	if r.MonthForecast != nil {
		fmt.Fprintf(w, "8. Forecasted cost for this month: %s\n", cost.FormatCost(*r.MonthForecast))
	}
	if r.YearToDate != nil {
		fmt.Fprintf(w, "9. Year-to-date cost: %s\n", cost.FormatCost(*r.YearToDate))
	}
	if r.Trend != nil {
		fmt.Fprintf(w, "10. Cost trend: %s compared to previous %d days\n", cost.DescribeTrend(*r.Trend), r.Days)
	}
}
