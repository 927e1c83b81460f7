package ui

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"cafecrawler/pkg/models"
)

// RenderSummary writes the statistics of a finished run as a table
func RenderSummary(w io.Writer, stats models.RunStats, outputDir string, ok bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Run %s", stats.RunID)

	status := "succeeded"
	switch {
	case !ok:
		status = "failed"
	case stats.Truncated:
		status = "succeeded (partial)"
	}

	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Status", status},
		{"Posts", stats.Posts},
		{"Comments", stats.Comments},
		{"Images", stats.Images},
		{"Total views", stats.Views},
		{"Pages scanned", stats.PagesScanned},
		{"Entries skipped", stats.Skipped},
		{"Files exported", stats.Exported},
	})
	if stats.ExportFailed > 0 {
		t.AppendRow(table.Row{"Export failures", stats.ExportFailed})
	}
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Output", outputDir},
		{"Duration", formatDuration(stats.Duration())},
	})

	fmt.Fprintln(w)
	t.Render()
}
