package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a new Bubbles table with default styling.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	// Not interactive: the selected row looks like any other.
	s.Selected = s.Cell

	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a non-interactive table string.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := NewTable(columns, tableRows)
	return t.View()
}

// MetricTableRow is one line of `tally list`.
type MetricTableRow struct {
	Metric  string
	Entries string
	Latest  string
	Trend   string // pre-rendered sparkline
}

// RenderMetricTable renders the metric overview. Column widths fit the
// longest value in each column.
func RenderMetricTable(rows []MetricTableRow) string {
	if len(rows) == 0 {
		return lipgloss.NewStyle().Foreground(ColorMuted).Render("No metrics yet. Add one with 'tally add <metric> --value <n>'.")
	}

	columns := []TableColumn{
		{Title: "METRIC", Width: len("METRIC")},
		{Title: "ENTRIES", Width: len("ENTRIES")},
		{Title: "LATEST", Width: len("LATEST")},
		{Title: "TREND", Width: len("TREND")},
	}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{r.Metric, r.Entries, r.Latest, r.Trend}
		for j, c := range cells[i] {
			if w := lipgloss.Width(c); w > columns[j].Width {
				columns[j].Width = w
			}
		}
	}
	for i := range columns {
		columns[i].Width += 2
	}

	return RenderSimpleTable(columns, cells)
}
