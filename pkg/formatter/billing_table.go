package formatter

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/younsl/awskit/internal/models"
	"github.com/younsl/awskit/pkg/cost"
)

// PrintBillingTable prints one row per profile. Rows whose lookup failed
// keep only the profile and the error.
func PrintBillingTable(w io.Writer, rows []models.BillingInfo) {
	if len(rows) == 0 {
		io.WriteString(w, "No billing information available.\n")
		return
	}

	hasErrors := false
	for _, r := range rows {
		if r.Err != nil {
			hasErrors = true
			break
		}
	}

	t := newGridTable(w)
	header := table.Row{"Profile", "Month-to-Date Cost", "Forecast", "Estimated Amount Due"}
	if hasErrors {
		header = append(header, "Error")
	}
	t.AppendHeader(header)

	for _, r := range rows {
		if r.Err != nil {
			t.AppendRow(table.Row{r.Profile, "", "", "", r.Err.Error()})
			continue
		}
		row := table.Row{
			r.Profile,
			cost.FormatCost(r.MonthToDate),
			cost.FormatCost(r.Forecast),
			cost.FormatCost(r.EstimatedDue),
		}
		if hasErrors {
			row = append(row, "")
		}
		t.AppendRow(row)
	}

	t.Render()
}
