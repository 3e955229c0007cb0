package ui

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/bamsammich/ppcp/internal/stats"
)

// StatsTable renders the final counters as a table for verbose output.
func StatsTable(snap stats.Snapshot) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.Style().Color.Row = text.Colors{text.Reset}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.AppendHeader(table.Row{text.Bold.Sprint("Metric"), text.Bold.Sprint("Done"), text.Bold.Sprint("Total")})
	t.AppendRows([]table.Row{
		{"files", FormatCount(snap.FilesDone), FormatCount(snap.FilesTotal)},
		{"failed", FormatCount(snap.FilesFailed), ""},
		{"bytes", FormatBytes(snap.BytesDone), FormatBytes(snap.BytesTotal)},
		{"elapsed", FormatDuration(snap.Elapsed), ""},
		{"avg rate", FormatRate(float64(snap.AvgRate())), ""},
	})
	return t.Render()
}
