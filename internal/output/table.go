package output

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// TableFormatter renders every considered bucket as an ASCII table with the
// selected one marked.
type TableFormatter struct{}

// Format implements Formatter.
func (f *TableFormatter) Format(report *Report) (string, error) {
	if report == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"", "Bucket", "Remaining", "Reset", "Relative"})

	marked := false
	for _, row := range report.Considered {
		marker := ""
		if !marked && row.Bucket == report.Selected.Bucket {
			marker = "*"
			marked = true
		}
		t.AppendRow(table.Row{marker, row.Name, row.Remaining, row.ResetAt, row.Relative})
	}

	t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d considered", len(report.Considered))})
	return t.Render(), nil
}
