package tui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/diillson/aws-cost-console/internal/shared/types"
)

// TableData is a titled grid whose first row is the header.
type TableData struct {
	Title string
	Rows  [][]string
}

func newTable(title string) *tview.Table {
	table := tview.NewTable()
	table.SetBorder(true).SetTitle(" " + title + " ")
	table.SetSelectable(true, false)
	table.SetFixed(1, 0)
	return table
}

// populateTable replaces the contents of table. A table without rows shows empty.
// Data cells may carry color tags; callers escape untrusted text.
func populateTable(table *tview.Table, data TableData, empty string) {
	table.Clear()
	if data.Title != "" {
		table.SetTitle(" " + data.Title + " ")
	}

	if len(data.Rows) <= 1 {
		table.SetCell(0, 0, tview.NewTableCell(colorMuted+tview.Escape(empty)+colorReset).
			SetAlign(tview.AlignCenter).
			SetSelectable(false).
			SetExpansion(1))
		return
	}

	for col, cell := range data.Rows[0] {
		table.SetCell(0, col, tview.NewTableCell(colorHeader+tview.Escape(cell)+colorReset).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))
	}
	for row := 1; row < len(data.Rows); row++ {
		for col, cell := range data.Rows[row] {
			align := tview.AlignLeft
			if strings.HasPrefix(cell, "$") {
				align = tview.AlignRight
			}
			table.SetCell(row, col, tview.NewTableCell(cell).
				SetAlign(align).
				SetExpansion(1))
		}
	}
	table.ScrollToBeginning()
}

// levelColor returns the color tag of a usage level.
func levelColor(level types.UsageLevel) string {
	switch level {
	case types.UsageCritical:
		return colorCritical
	case types.UsageWarning:
		return colorWarning
	default:
		return colorNormal
	}
}

// usageBar draws a width-wide bar filled to pct percent, colored by level.
func usageBar(pct float64, level types.UsageLevel, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return levelColor(level) + strings.Repeat("█", filled) + colorMuted + strings.Repeat("░", width-filled) + colorReset
}

// chartText draws one stacked bar per month followed by a legend.
func chartText(chart *types.ServiceChart, width int) string {
	if chart == nil || len(chart.Labels) == 0 {
		return ""
	}

	totals := make([]float64, len(chart.Labels))
	maxTotal := 0.0
	for i := range chart.Labels {
		for _, ds := range chart.Datasets {
			if i < len(ds.Data) && ds.Data[i] > 0 {
				totals[i] += ds.Data[i]
			}
		}
		if totals[i] > maxTotal {
			maxTotal = totals[i]
		}
	}

	var sb strings.Builder
	for i, label := range chart.Labels {
		fmt.Fprintf(&sb, "%-8s ", tview.Escape(label))
		if maxTotal > 0 {
			for d, ds := range chart.Datasets {
				if i >= len(ds.Data) || ds.Data[i] <= 0 {
					continue
				}
				if n := int(ds.Data[i] / maxTotal * float64(width)); n > 0 {
					fmt.Fprintf(&sb, "[%s]%s", seriesColors[d%len(seriesColors)], strings.Repeat("█", n))
				}
			}
		}
		fmt.Fprintf(&sb, "%s $%.2f\n", colorReset, totals[i])
	}

	sb.WriteString("\n")
	for d, ds := range chart.Datasets {
		fmt.Fprintf(&sb, "[%s]■%s %s  ", seriesColors[d%len(seriesColors)], colorReset, tview.Escape(ds.Label))
	}
	return sb.String()
}
