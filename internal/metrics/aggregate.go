package metrics

import (
	"math"
	"sort"
	"time"
)

// Point is one chart sample.
type Point struct {
	X time.Time
	Y float64
}

// Dataset is one series on a chart. Label is empty for a metric without
// child groups.
type Dataset struct {
	Label  string
	Points []Point
}

// FilterInvalidMetrics keeps the entries with a numeric value and a parseable date.
func FilterInvalidMetrics(metrics []Metric) []Metric {
	out := make([]Metric, 0, len(metrics))
	for _, m := range metrics {
		if _, ok := m.Float(); !ok {
			continue
		}
		if _, err := m.Time(); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out
}

// SortMetricsByDate returns a copy ordered by ascending date. Equal dates
// keep their input order; unparseable dates sort first.
func SortMetricsByDate(metrics []Metric) []Metric {
	type keyed struct {
		m Metric
		t time.Time
	}
	ks := make([]keyed, len(metrics))
	for i, m := range metrics {
		t, _ := m.Time()
		ks[i] = keyed{m: m, t: t}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		return ks[i].t.Before(ks[j].t)
	})

	out := make([]Metric, len(ks))
	for i, k := range ks {
		out[i] = k.m
	}
	return out
}

// PrepareSeries filters and sorts metrics, then maps them to points. In
// cumulative mode each Y is the running sum up to and including that entry.
func PrepareSeries(metrics []Metric, cumulative bool) []Point {
	sorted := SortMetricsByDate(FilterInvalidMetrics(metrics))

	points := make([]Point, 0, len(sorted))
	var sum float64
	for _, m := range sorted {
		y, _ := m.Float()
		t, _ := m.Time()
		sum += y
		if cumulative {
			y = sum
		}
		points = append(points, Point{X: t, Y: y})
	}
	return points
}

// Sum adds every numeric value. Entries with a bad date still count.
func Sum(metrics []Metric) float64 {
	var sum float64
	for _, m := range metrics {
		if v, ok := m.Float(); ok {
			sum += v
		}
	}
	return sum
}

// Average is Sum divided by the number of entries, rounded to two decimals.
// It is 0 when there are no entries.
func Average(metrics []Metric) float64 {
	if len(metrics) == 0 {
		return 0
	}
	return math.Round(Sum(metrics)/float64(len(metrics))*100) / 100
}

// Latest returns the most recent valid entry.
func Latest(metrics []Metric) (Metric, bool) {
	valid := SortMetricsByDate(FilterInvalidMetrics(metrics))
	if len(valid) == 0 {
		return Metric{}, false
	}
	return valid[len(valid)-1], true
}
