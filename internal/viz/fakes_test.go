package viz

import (
	"context"
	"sync"

	"github.com/rileyhilliard/tally/internal/logger"
	"github.com/rileyhilliard/tally/internal/metrics"
)

type fakeSource struct {
	metrics  map[string][]metrics.Metric
	groups   map[string][]metrics.MetricGroup
	lines    map[string][]metrics.Dataset
	props    map[string][]metrics.Point
	err      error
	propsAsk [][]string
	cumul    []bool
}

func key(name, child string) string { return name + "/" + child }

func (s *fakeSource) LoadMetrics(ctx context.Context, name, child string) ([]metrics.Metric, error) {
	return s.metrics[key(name, child)], s.err
}

func (s *fakeSource) LoadChildMetrics(ctx context.Context, name string) ([]metrics.MetricGroup, error) {
	return s.groups[name], s.err
}

func (s *fakeSource) LineDatasets(ctx context.Context, name string, cumulative bool) ([]metrics.Dataset, error) {
	s.cumul = append(s.cumul, cumulative)
	return s.lines[name], s.err
}

func (s *fakeSource) PropertiesQuery(ctx context.Context, props []string, cumulative bool) ([]metrics.Dataset, error) {
	s.propsAsk = append(s.propsAsk, props)
	s.cumul = append(s.cumul, cumulative)
	out := make([]metrics.Dataset, len(props))
	for i, p := range props {
		out[i] = metrics.Dataset{Label: p, Points: s.props[p]}
	}
	return out, s.err
}

type fakeChart struct {
	mu        sync.Mutex
	destroyed int
}

func (c *fakeChart) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroyed++
}

func (c *fakeChart) destroyCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

type fakeBuilder struct {
	mu      sync.Mutex
	configs []ChartConfig
	charts  []*fakeChart
	err     error
}

func (b *fakeBuilder) Build(canvas Canvas, cfg ChartConfig) (Chart, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	b.configs = append(b.configs, cfg)
	c := &fakeChart{}
	b.charts = append(b.charts, c)
	canvas.Draw("chart:" + cfg.Title)
	return c, nil
}

func (b *fakeBuilder) builds() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.configs)
}

func (b *fakeBuilder) last() ChartConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.configs[len(b.configs)-1]
}

type testEnv struct {
	source  *fakeSource
	builder *fakeBuilder
	host    *BufferHost
	log     *logger.BufferLogger
	reg     *Registry
}

func newTestEnv() *testEnv {
	e := &testEnv{
		source:  &fakeSource{},
		builder: &fakeBuilder{},
		host:    NewBufferHost(60),
		log:     logger.NewBufferLogger(),
	}
	e.reg = NewRegistry(Env{
		Source: e.source,
		Charts: e.builder,
		Host:   e.host,
		Log:    e.log,
	})
	return e
}
