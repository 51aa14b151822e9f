package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"lyricsync/internal/align"
	"lyricsync/internal/config"
)

// summaryTable renders aligned lines with their timestamps, confidence,
// and anchor status.
func summaryTable(lines []align.AlignedLine, cfg *config.Settings) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Time", "Conf", "Anchor", "Line"})

	for i, line := range lines {
		anchor := ""
		if line.Confidence >= cfg.AnchorConfidence {
			anchor = "yes"
		}
		tw.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%.2f", line.Timestamp),
			fmt.Sprintf("%.2f", line.Confidence),
			anchor,
			line.Text,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
