package formatter

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/younsl/awskit/internal/models"
	"github.com/younsl/awskit/pkg/profiles"
)

// PrintProfilesTable prints discovered profiles with masked access keys and
// the files each profile was found in
func PrintProfilesTable(w io.Writer, list []models.Profile) {
	if len(list) == 0 {
		io.WriteString(w, "No AWS profiles found.\n")
		return
	}

	t := newGridTable(w)
	t.AppendHeader(table.Row{"Profile", "Region", "Account ID", "Access Key", "Source"})
	for _, p := range list {
		t.AppendRow(table.Row{p.Name, p.Region, p.AccountID, profiles.MaskAccessKey(p.AccessKey), p.Source})
	}
	t.Render()
}
