package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"
)

func TestNewTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Name", Width: 20},
		{Title: "Status", Width: 10},
	}
	rows := []table.Row{
		{"item1", "ok"},
		{"item2", "error"},
	}

	view := NewTable(columns, rows).View()
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "Status")
	assert.Contains(t, view, "item1")
	assert.Contains(t, view, "item2")
}

func TestNewTable_EmptyRows(t *testing.T) {
	view := NewTable([]TableColumn{{Title: "Name", Width: 20}}, []table.Row{}).View()
	assert.Contains(t, view, "Name")
}

func TestRenderSimpleTable(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		want    []string
		isEmpty bool
	}{
		{
			name: "rows",
			rows: [][]string{{"weight", "3"}, {"pushups", "10"}},
			want: []string{"weight", "pushups", "10"},
		},
		{
			name:    "no rows",
			rows:    nil,
			isEmpty: true,
		},
	}

	columns := []TableColumn{{Title: "Metric", Width: 12}, {Title: "N", Width: 4}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderSimpleTable(columns, tt.rows)
			if tt.isEmpty {
				assert.Empty(t, out)
				return
			}
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestRenderMetricTable(t *testing.T) {
	out := RenderMetricTable([]MetricTableRow{
		{Metric: "a-rather-long-metric-name", Entries: "12", Latest: "180", Trend: "▁▂▃"},
		{Metric: "pushups", Entries: "3", Latest: "—", Trend: ""},
	})

	for _, want := range []string{"METRIC", "ENTRIES", "LATEST", "TREND", "a-rather-long-metric-name", "pushups", "180", "▁▂▃"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderMetricTableEmpty(t *testing.T) {
	assert.Contains(t, RenderMetricTable(nil), "No metrics yet")
}
