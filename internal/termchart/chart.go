// Package termchart draws viz chart configs as text for the terminal.
//
// Line charts are plotted on a braille grid (2x4 dots per cell) with one
// color per dataset and range labels for each value axis. Bar charts are
// horizontal bars scaled to the largest value.
package termchart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/tally/internal/errors"
	"github.com/rileyhilliard/tally/internal/viz"
)

// MinHeight is the smallest plot height in rows.
const MinHeight = 3

// Builder implements viz.ChartBuilder.
type Builder struct{}

// New creates a chart builder.
func New() *Builder {
	return &Builder{}
}

// Build renders cfg at the canvas width and draws it.
func (b *Builder) Build(canvas viz.Canvas, cfg viz.ChartConfig) (viz.Chart, error) {
	out, err := Render(cfg, canvas.Width())
	if err != nil {
		return nil, err
	}
	canvas.Draw(out)
	return &chart{canvas: canvas}, nil
}

type chart struct {
	once   sync.Once
	canvas viz.Canvas
}

// Destroy clears the canvas. Later calls do nothing.
func (c *chart) Destroy() {
	c.once.Do(c.canvas.Clear)
}

// Render draws cfg into a block of text at most width columns wide.
func Render(cfg viz.ChartConfig, width int) (string, error) {
	if width < 20 {
		width = 20
	}
	if cfg.Height < MinHeight {
		cfg.Height = MinHeight
	}

	var body string
	switch cfg.Type {
	case viz.ChartLine:
		body = renderLine(cfg, width)
	case viz.ChartBar:
		body = renderBar(cfg, width)
	default:
		return "", errors.New(errors.ErrVisualization,
			fmt.Sprintf("Can't draw chart type %d", cfg.Type), "")
	}

	var parts []string
	if cfg.ShowTitle && cfg.Title != "" {
		parts = append(parts, lipgloss.NewStyle().
			Bold(true).
			Foreground(cfg.Theme.Text).
			Width(width).
			Align(lipgloss.Center).
			Render(cfg.Title))
	}
	parts = append(parts, body)
	if cfg.Legend {
		parts = append(parts, legend(cfg, width))
	}
	return strings.Join(parts, "\n"), nil
}

// axisSeries collects the values drawn against one axis.
type axisSeries struct {
	axis   viz.Axis
	min    float64
	max    float64
	labels [2]string // max, min
}

func renderLine(cfg viz.ChartConfig, width int) string {
	muted := lipgloss.NewStyle().Foreground(cfg.Theme.Muted)

	left, hasLeft := cfg.Axis(viz.AxisY)
	right, hasRight := cfg.Axis(viz.AxisY2)

	var leftAxis, rightAxis *axisSeries
	if hasLeft {
		leftAxis = newAxisSeries(left, cfg.Datasets)
	}
	if hasRight {
		rightAxis = newAxisSeries(right, cfg.Datasets)
	}

	leftW, rightW := labelWidth(leftAxis), labelWidth(rightAxis)
	plotW := width - leftW - rightW - 2
	if plotW < 4 {
		plotW = 4
	}

	tmin, tmax, ok := timeRange(cfg.Datasets)
	if !ok {
		msg := muted.Width(width).Align(lipgloss.Center).Render("No data")
		return lipgloss.NewStyle().Height(cfg.Height).Render(msg)
	}

	grid := newDotGrid(plotW, cfg.Height)
	for i, ds := range cfg.Datasets {
		axis := leftAxis
		if ds.Axis == viz.AxisY2 {
			axis = rightAxis
		}
		if axis == nil || len(ds.Points) == 0 {
			continue
		}
		color := viz.PaletteColor(i)
		if len(ds.Colors) > 0 {
			color = ds.Colors[0]
		}

		px, py := -1, -1
		for _, p := range ds.Points {
			x := scaleTime(p.X, tmin, tmax, grid.dotsWide())
			y := clampInt(int(math.Round(normalizeValue(p.Y, axis.min, axis.max)*float64(grid.dotsHigh()-1))), grid.dotsHigh()-1)
			if px >= 0 {
				grid.line(px, py, x, y, color)
			} else {
				grid.set(x, y, color)
			}
			px, py = x, y
		}
	}

	rows := grid.rows()
	lines := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		if leftAxis != nil {
			b.WriteString(muted.Render(padLeft(axisLabel(leftAxis, i, len(rows)), leftW)))
			b.WriteString(muted.Render(axisEdge(leftAxis, i, len(rows), "│", "┤")))
		} else {
			b.WriteString(" ")
		}
		b.WriteString(row)
		if rightAxis != nil {
			b.WriteString(muted.Render(axisEdge(rightAxis, i, len(rows), "│", "├")))
			b.WriteString(muted.Render(padRight(axisLabel(rightAxis, i, len(rows)), rightW)))
		}
		lines[i] = b.String()
	}

	first, last := tmin.Format(cfg.DateFormat), tmax.Format(cfg.DateFormat)
	gap := plotW - lipgloss.Width(first) - lipgloss.Width(last)
	var xAxis string
	if tmin.Equal(tmax) || gap < 1 {
		xAxis = first
	} else {
		xAxis = first + strings.Repeat(" ", gap) + last
	}
	lines = append(lines, strings.Repeat(" ", leftW+1)+muted.Render(xAxis))

	return strings.Join(lines, "\n")
}

func newAxisSeries(axis viz.Axis, datasets []viz.ChartDataset) *axisSeries {
	var values []float64
	for _, ds := range datasets {
		onAxis := ds.Axis == axis.ID || (ds.Axis == "" && axis.ID == viz.AxisY)
		if !onAxis {
			continue
		}
		for _, p := range ds.Points {
			values = append(values, p.Y)
		}
	}
	minVal, maxVal := findMinMax(values)
	return &axisSeries{
		axis:   axis,
		min:    minVal,
		max:    maxVal,
		labels: [2]string{formatValue(maxVal), formatValue(minVal)},
	}
}

// axisLabel puts the max on the top row and the min on the bottom row.
func axisLabel(a *axisSeries, row, rows int) string {
	switch row {
	case 0:
		return a.labels[0]
	case rows - 1:
		return a.labels[1]
	default:
		return ""
	}
}

// axisEdge draws the axis line, with a tick on labeled rows when enabled.
func axisEdge(a *axisSeries, row, rows int, plain, tick string) string {
	if a.axis.Ticks && (row == 0 || row == rows-1) {
		return tick
	}
	return plain
}

func labelWidth(a *axisSeries) int {
	if a == nil {
		return 0
	}
	w := 0
	for _, l := range a.labels {
		if lw := lipgloss.Width(l); lw > w {
			w = lw
		}
	}
	return w
}

func timeRange(datasets []viz.ChartDataset) (tmin, tmax time.Time, ok bool) {
	for _, ds := range datasets {
		for _, p := range ds.Points {
			if !ok || p.X.Before(tmin) {
				tmin = p.X
			}
			if !ok || p.X.After(tmax) {
				tmax = p.X
			}
			ok = true
		}
	}
	return tmin, tmax, ok
}

// scaleTime maps t onto [0, dots). A single instant sits in the middle.
func scaleTime(t, tmin, tmax time.Time, dots int) int {
	span := tmax.Sub(tmin)
	if span <= 0 {
		return dots / 2
	}
	pos := float64(t.Sub(tmin)) / float64(span)
	return clampInt(int(math.Round(pos*float64(dots-1))), dots-1)
}

func formatValue(v float64) string {
	switch {
	case math.Abs(v) >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', 1, 64) + "M"
	case math.Abs(v) >= 1e4:
		return strconv.FormatFloat(v/1e3, 'f', 1, 64) + "k"
	case v == math.Trunc(v):
		return strconv.FormatFloat(v, 'f', 0, 64)
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}

func padLeft(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

func padRight(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func renderBar(cfg viz.ChartConfig, width int) string {
	muted := lipgloss.NewStyle().Foreground(cfg.Theme.Muted)
	if len(cfg.Labels) == 0 || len(cfg.Datasets) == 0 {
		return muted.Width(width).Align(lipgloss.Center).Render("No data")
	}
	ds := cfg.Datasets[0]

	labelW := 0
	valueW := 0
	maxVal := 0.0
	for i, l := range cfg.Labels {
		if w := lipgloss.Width(l); w > labelW {
			labelW = w
		}
		if i < len(ds.Values) {
			if w := len(formatValue(ds.Values[i])); w > valueW {
				valueW = w
			}
			if ds.Values[i] > maxVal {
				maxVal = ds.Values[i]
			}
		}
	}

	barW := width - labelW - valueW - 3
	if barW < 1 {
		barW = 1
	}

	lines := make([]string, len(cfg.Labels))
	for i, l := range cfg.Labels {
		var v float64
		if i < len(ds.Values) {
			v = ds.Values[i]
		}
		n := 0
		if maxVal > 0 && v > 0 {
			n = clampInt(int(math.Round(v/maxVal*float64(barW))), barW)
		}
		color := viz.PaletteColor(i)
		if i < len(ds.Colors) {
			color = ds.Colors[i]
		}

		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", n))
		lines[i] = fmt.Sprintf("%s %s %s",
			lipgloss.NewStyle().Foreground(cfg.Theme.Text).Render(padRight(l, labelW)),
			bar,
			muted.Render(formatValue(v)))
	}
	return strings.Join(lines, "\n")
}

func legend(cfg viz.ChartConfig, width int) string {
	var items []string
	for i, ds := range cfg.Datasets {
		color := viz.PaletteColor(i)
		if len(ds.Colors) > 0 {
			color = ds.Colors[0]
		}
		label := ds.Label
		if label == "" {
			label = fmt.Sprintf("series %d", i+1)
		}
		items = append(items, lipgloss.NewStyle().Foreground(color).Render("●")+" "+
			lipgloss.NewStyle().Foreground(cfg.Theme.Text).Render(label))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(items, "  "))
}
