// Package formatter renders awskit reports as grid tables and text.
package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// None is printed for empty cells
const None = "None"

// newGridTable returns a table mirrored to w with every cell boxed
func newGridTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleDefault)
	t.Style().Options.SeparateRows = true
	t.Style().Format.Header = text.FormatDefault // keep header case as written
	t.Style().Format.Footer = text.FormatDefault
	return t
}

// PrintScanTime prints when a listing started and how long it took
func PrintScanTime(w io.Writer, scanStartTime time.Time, scanDuration time.Duration) {
	fmt.Fprintf(w, "Scan completed at %s (took %.2fs)\n",
		scanStartTime.Format("2006-01-02 15:04:05"), scanDuration.Seconds())
}

func orNone(s string) string {
	if s == "" {
		return None
	}
	return s
}
