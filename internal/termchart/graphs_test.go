package termchart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMinMax(t *testing.T) {
	tests := []struct {
		name    string
		data    []float64
		wantMin float64
		wantMax float64
	}{
		{name: "empty data", data: nil, wantMin: 0, wantMax: 1},
		{name: "actual range", data: []float64{-50, 200, 500}, wantMin: -50, wantMax: 500},
		{name: "flat series is padded", data: []float64{80, 80}, wantMin: 72, wantMax: 88},
		{name: "flat zero", data: []float64{0}, wantMin: -1, wantMax: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minVal, maxVal := findMinMax(tt.data)
			assert.InDelta(t, tt.wantMin, minVal, 1e-9)
			assert.InDelta(t, tt.wantMax, maxVal, 1e-9)
		})
	}
}

func TestNormalizeValue(t *testing.T) {
	assert.InDelta(t, 0.5, normalizeValue(50, 0, 100), 0.001)
	assert.InDelta(t, 0.0, normalizeValue(0, 0, 100), 0.001)
	assert.InDelta(t, 1.0, normalizeValue(100, 0, 100), 0.001)
	assert.InDelta(t, 0.5, normalizeValue(50, 50, 50), 0.001)
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 5, clampInt(5, 10))
	assert.Equal(t, 10, clampInt(15, 10))
	assert.Equal(t, 0, clampInt(-5, 10))
}

func TestDotGrid(t *testing.T) {
	g := newDotGrid(2, 1)
	g.set(0, 0, "1")
	g.set(3, 3, "2")
	g.set(9, 9, "3") // outside, ignored

	assert.Equal(t, brailleBase|1<<6, g.cells[0][0], "bottom-left dot")
	assert.Equal(t, brailleBase|1<<3, g.cells[0][1], "top-right dot")

	g = newDotGrid(1, 1)
	g.line(0, 0, 1, 3, "1")
	assert.Equal(t, brailleBase|1<<6|1<<2|1<<4|1<<3, g.cells[0][0], "diagonal from bottom-left to top-right")
}

func TestResampleData(t *testing.T) {
	assert.Nil(t, resampleData(nil, 10))
	assert.Nil(t, resampleData([]float64{1, 2, 3}, 0))
	assert.Equal(t, []float64{1, 2, 3}, resampleData([]float64{1, 2, 3}, 3))
	assert.Equal(t, []float64{42, 42, 42}, resampleData([]float64{42}, 3))
	assert.Equal(t, []float64{0, 50, 100}, resampleData([]float64{0, 100}, 3))

	// Downsampling keeps the spike.
	result := resampleData([]float64{10, 10, 10, 100, 10, 10, 10, 10, 10, 10}, 5)
	require.Len(t, result, 5)
	assert.Contains(t, result, 100.0)
}

func TestRenderSparkline(t *testing.T) {
	assert.Empty(t, RenderSparkline(nil, 10, ""))
	assert.Equal(t, "▁█", RenderSparkline([]float64{1, 2}, 10, ""))
	assert.Equal(t, 4, len([]rune(RenderSparkline([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 4, ""))))
}
