package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/younsl/awskit/internal/models"
	"github.com/younsl/awskit/pkg/cost"
)

// InstanceColumns selects the optional instance table columns
type InstanceColumns struct {
	CPU     bool
	Pricing bool
}

// PrintInstancesTable prints instances in API order. Launch times are shown
// with their age relative to now.
func PrintInstancesTable(w io.Writer, instances []models.InstanceSummary, cols InstanceColumns, now time.Time) {
	t := newGridTable(w)

	header := table.Row{"Instance ID", "Name", "State", "Type", "Private IP", "Public IP", "Launch Time"}
	if cols.CPU {
		header = append(header, "Avg CPU (24h)")
	}
	if cols.Pricing {
		header = append(header, "Cost/Mo", "Pricing")
	}
	t.AppendHeader(header)

	var totalMonthly float64
	for _, instance := range instances {
		row := table.Row{
			instance.InstanceID,
			orNone(instance.Name),
			instance.State,
			instance.InstanceType,
			orNone(instance.PrivateIP),
			orNone(instance.PublicIP),
			launchTime(instance.LaunchTime, now),
		}
		if cols.CPU {
			row = append(row, cpuCell(instance.AvgCPU))
		}
		if cols.Pricing {
			row = append(row, monthlyCell(instance), GetPricingMarker(instance.PricingSource))
			totalMonthly += instance.MonthlyCost
		}
		t.AppendRow(row)
	}

	if cols.Pricing {
		footer := table.Row{"Total", fmt.Sprintf("%d instances", len(instances)), "", "", "", "", ""}
		if cols.CPU {
			footer = append(footer, "")
		}
		footer = append(footer, cost.FormatCost(totalMonthly), "")
		t.AppendFooter(footer)
	}

	t.Render()
}

// PrintLaunchResult prints the details of a newly created instance
func PrintLaunchResult(w io.Writer, r *models.LaunchResult) {
	fmt.Fprintln(w, "\nEC2 Instance Details:")
	fmt.Fprintf(w, "Instance ID: %s\n", r.InstanceID)
	fmt.Fprintf(w, "Public IP: %s\n", orNone(r.PublicIP))
	fmt.Fprintf(w, "Private IP: %s\n", orNone(r.PrivateIP))
	fmt.Fprintf(w, "Instance Type: %s\n", r.InstanceType)
	fmt.Fprintf(w, "Key Name: %s\n", r.KeyName)
	if r.KeyFile != "" {
		fmt.Fprintf(w, "Key File: %s\n", r.KeyFile)
	}
	fmt.Fprintf(w, "AMI: %s\n", r.ImageID)
	fmt.Fprintf(w, "Security Group: %s\n", r.GroupID)
}

// GetPricingMarker returns a suitable marker for the pricing source
func GetPricingMarker(source string) string {
	switch source {
	case "API":
		return "API"
	case "Cache":
		return "CACHE"
	case "N/A":
		return "N/A"
	default:
		return "-"
	}
}

func launchTime(t, now time.Time) string {
	if t.IsZero() {
		return None
	}
	return fmt.Sprintf("%s (%s)", t.UTC().Format("2006-01-02 15:04:05 MST"), humanize.RelTime(t, now, "ago", "from now"))
}

func cpuCell(avg *float64) string {
	if avg == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", *avg)
}

func monthlyCell(instance models.InstanceSummary) string {
	if instance.PricingSource == "" || instance.PricingSource == "N/A" {
		return "N/A"
	}
	return cost.FormatCost(instance.MonthlyCost)
}
