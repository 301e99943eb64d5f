package viz

import (
	"context"

	"github.com/rileyhilliard/tally/internal/logger"
	"github.com/rileyhilliard/tally/internal/metrics"
)

// Spec identifies a visualization and what it shows.
type Spec struct {
	UUID   string
	Slot   string
	Metric string
	Child  string
	Type   string
}

// matches reports whether d describes the same visualization as s.
func (s Spec) matches(d Directive) bool {
	return s.Metric == d.Metric && s.Child == d.Child && s.Type == d.Type
}

// DisplayName is the metric path shown in titles.
func (s Spec) DisplayName() string {
	return metrics.FullName(s.Metric, s.Child)
}

// Visualization is a live card or chart bound to a host slot.
type Visualization interface {
	Spec() Spec
	Kind() Kind
	// Render returns the markup the host places in the slot.
	Render(ctx context.Context) (string, error)
	// PostRender runs once the markup is in place. Chart kinds build their
	// chart here.
	PostRender(ctx context.Context) error
	// Release frees anything PostRender built. It is safe to call twice.
	Release()
}

// Source is the data a visualization reads. *metrics.Repository satisfies it.
type Source interface {
	LoadMetrics(ctx context.Context, name, childName string) ([]metrics.Metric, error)
	LoadChildMetrics(ctx context.Context, name string) ([]metrics.MetricGroup, error)
	LineDatasets(ctx context.Context, name string, cumulative bool) ([]metrics.Dataset, error)
	PropertiesQuery(ctx context.Context, props []string, cumulative bool) ([]metrics.Dataset, error)
}

// Host owns the slots visualizations are displayed in.
type Host interface {
	// Provide replaces the slot's content with markup. key names the
	// provider so the host can reset it later.
	Provide(slot, key, markup string)
	// HasSlot reports whether the slot still exists.
	HasSlot(slot string) bool
	// Canvas returns the drawing surface of a slot.
	Canvas(slot string) (Canvas, bool)
}

// Canvas is the area of a slot a chart draws into.
type Canvas interface {
	Width() int
	Draw(content string)
	Clear()
}

// ChartBuilder turns a chart config into a chart drawn on a canvas.
type ChartBuilder interface {
	Build(canvas Canvas, cfg ChartConfig) (Chart, error)
}

// Chart is a built chart.
type Chart interface {
	Destroy()
}

// Env is what visualizations need from their surroundings.
type Env struct {
	Source Source
	Charts ChartBuilder
	Host   Host
	// ChartHeight is the chart height in terminal rows.
	ChartHeight int
	// DateFormat is the Go layout for dates shown on charts.
	DateFormat string
	Theme      Theme
	Log        logger.Logger
}

// DefaultChartHeight is used when Env.ChartHeight is unset.
const DefaultChartHeight = 8

func (e Env) withDefaults() Env {
	if e.ChartHeight <= 0 {
		e.ChartHeight = DefaultChartHeight
	}
	if e.DateFormat == "" {
		e.DateFormat = metrics.DefaultDateFormat
	}
	if e.Theme.Name == "" {
		e.Theme = DarkTheme
	}
	e.Log = logger.OrDefault(e.Log)
	return e
}
