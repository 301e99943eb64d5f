package viz

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/tally/internal/errors"
	"github.com/rileyhilliard/tally/internal/metrics"
)

// ChartType selects how the builder draws a config.
type ChartType int

const (
	ChartLine ChartType = iota + 1
	ChartBar
)

// Axis IDs.
const (
	AxisY  = "y"
	AxisY2 = "y2"
)

// Axis is a value axis.
type Axis struct {
	ID string
	// Right places the axis labels on the right-hand side.
	Right bool
	// Ticks draws tick marks along the axis line.
	Ticks bool
}

// ChartDataset is one series of a chart. Line charts use Points; bar
// charts use Values, one per label, with one color per bar.
type ChartDataset struct {
	Label  string
	Points []metrics.Point
	Values []float64
	Colors []lipgloss.Color
	Axis   string
}

// ChartConfig is everything a builder needs to draw a chart.
type ChartConfig struct {
	Type      ChartType
	Title     string
	ShowTitle bool
	// Labels name the bars of a bar chart.
	Labels   []string
	Datasets []ChartDataset
	// Axes lists the value axes, left axis first when present.
	Axes   []Axis
	Legend bool
	Height int
	// DateFormat formats dates on the time axis.
	DateFormat string
	Theme      Theme
}

// Axis returns the axis with the given ID.
func (c ChartConfig) Axis(id string) (Axis, bool) {
	for _, a := range c.Axes {
		if a.ID == id {
			return a, true
		}
	}
	return Axis{}, false
}

// chartData loads the datasets for a chart and adjusts the config.
type chartData func(ctx context.Context, cfg *ChartConfig) error

// chartBase is the lifecycle shared by every chart kind.
type chartBase struct {
	spec  Spec
	kind  Kind
	env   Env
	theme func() Theme
	data  chartData

	// renderMu serializes PostRender so only one chart occupies the canvas.
	renderMu sync.Mutex

	mu       sync.Mutex
	chart    Chart
	released bool
}

func (c *chartBase) Spec() Spec { return c.spec }
func (c *chartBase) Kind() Kind { return c.kind }

// Render returns the frame the chart is later drawn into.
func (c *chartBase) Render(ctx context.Context) (string, error) {
	theme := c.theme()
	style := lipgloss.NewStyle().
		Foreground(theme.Muted).
		Height(c.env.ChartHeight).
		Padding(0, 1)
	return style.Render(fmt.Sprintf("Loading %s…", c.spec.DisplayName())), nil
}

// PostRender rebuilds the chart in the slot's canvas. A slot that has gone
// away is not an error.
func (c *chartBase) PostRender(ctx context.Context) error {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	if c.isReleased() {
		return nil
	}
	canvas, ok := c.env.Host.Canvas(c.spec.Slot)
	if !ok {
		c.env.Log.Debug("Slot doesn't exist: %s", c.spec.Slot)
		return nil
	}

	c.destroy()

	cfg := c.baseConfig()
	if err := c.data(ctx, &cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrVisualization,
			fmt.Sprintf("Couldn't load data for %s", c.spec.DisplayName()), "")
	}
	for i := range cfg.Datasets {
		if len(cfg.Datasets[i].Colors) == 0 {
			cfg.Datasets[i].Colors = []lipgloss.Color{PaletteColor(i)}
		}
	}
	cfg.Legend = len(cfg.Datasets) > 1

	if c.isReleased() {
		return nil
	}
	chart, err := c.env.Charts.Build(canvas, cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrVisualization,
			fmt.Sprintf("Couldn't draw the %s chart for %s", c.kind, c.spec.DisplayName()), "")
	}

	c.mu.Lock()
	if c.released {
		c.mu.Unlock()
		chart.Destroy()
		return nil
	}
	c.chart = chart
	c.mu.Unlock()
	return nil
}

// Release destroys the chart, if one was built. A PostRender still in
// flight discards the chart it builds.
func (c *chartBase) Release() {
	c.mu.Lock()
	c.released = true
	c.mu.Unlock()
	c.destroy()
}

func (c *chartBase) isReleased() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

func (c *chartBase) destroy() {
	c.mu.Lock()
	chart := c.chart
	c.chart = nil
	c.mu.Unlock()

	if chart != nil {
		chart.Destroy()
	}
}

func (c *chartBase) baseConfig() ChartConfig {
	return ChartConfig{
		Type:       ChartLine,
		Height:     c.env.ChartHeight,
		DateFormat: c.env.DateFormat,
		Theme:      c.theme(),
		Axes:       []Axis{{ID: AxisY}},
		ShowTitle:  true,
	}
}

func toChartDatasets(in []metrics.Dataset) []ChartDataset {
	out := make([]ChartDataset, len(in))
	for i, d := range in {
		out[i] = ChartDataset{Label: d.Label, Points: d.Points, Axis: AxisY}
	}
	return out
}

func newBarChart(base *chartBase) *chartBase {
	base.data = func(ctx context.Context, cfg *ChartConfig) error {
		groups, err := base.env.Source.LoadChildMetrics(ctx, base.spec.Metric)
		if err != nil {
			return err
		}

		ds := ChartDataset{Axis: AxisY}
		for i, g := range groups {
			cfg.Labels = append(cfg.Labels, g.Label)
			ds.Values = append(ds.Values, metrics.Sum(g.Metrics))
			ds.Colors = append(ds.Colors, PaletteColor(i))
		}
		cfg.Type = ChartBar
		cfg.Title = base.spec.Metric
		cfg.Datasets = []ChartDataset{ds}
		return nil
	}
	return base
}

func newLineChart(base *chartBase) *chartBase {
	base.data = func(ctx context.Context, cfg *ChartConfig) error {
		datasets, err := base.env.Source.LineDatasets(ctx, base.spec.Metric, isCumulative(base.spec.Type))
		if err != nil {
			return err
		}
		cfg.Title = base.spec.Metric
		cfg.Datasets = toChartDatasets(datasets)
		return nil
	}
	return base
}

// secondaryAxisSuffix routes a property series to the right-hand axis.
const secondaryAxisSuffix = "*"

// propertyDelimiters separate property names in a properties directive.
const propertyDelimiters = " :"

func newPropertiesChart(base *chartBase) *chartBase {
	base.data = func(ctx context.Context, cfg *ChartConfig) error {
		props := SplitBy(base.spec.Metric, propertyDelimiters)

		names := make([]string, len(props))
		secondary := make([]bool, len(props))
		for i, p := range props {
			secondary[i] = strings.HasSuffix(p, secondaryAxisSuffix)
			names[i] = strings.TrimSuffix(p, secondaryAxisSuffix)
		}

		datasets, err := base.env.Source.PropertiesQuery(ctx, names, isCumulative(base.spec.Type))
		if err != nil {
			return err
		}
		cfg.Datasets = toChartDatasets(datasets)

		anySecondary, allSecondary := false, len(props) > 0
		for i := range cfg.Datasets {
			if i < len(secondary) && secondary[i] {
				cfg.Datasets[i].Label = props[i]
				cfg.Datasets[i].Axis = AxisY2
				anySecondary = true
			} else {
				allSecondary = false
			}
		}

		switch {
		case allSecondary:
			cfg.Axes = []Axis{{ID: AxisY2, Right: true, Ticks: true}}
		case anySecondary:
			cfg.Axes = []Axis{{ID: AxisY, Ticks: true}, {ID: AxisY2, Right: true, Ticks: true}}
		}

		cfg.Title = base.spec.Child
		cfg.ShowTitle = base.spec.Child != ""
		return nil
	}
	return base
}
