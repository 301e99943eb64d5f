package metrics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetric(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Metric
		result  ParseResult
	}{
		{
			name:    "number value",
			content: `{"date":"2024-01-01T08:00:00.000Z","value":80.2}`,
			want:    Metric{Date: "2024-01-01T08:00:00.000Z", Value: "80.2"},
			result:  Parsed,
		},
		{
			name:    "string value",
			content: `{"date":"2024-01-01","value":"12"}`,
			want:    Metric{Date: "2024-01-01", Value: "12"},
			result:  Parsed,
		},
		{
			name:    "zero is a value",
			content: `{"date":"2024-01-01","value":0}`,
			want:    Metric{Date: "2024-01-01", Value: "0"},
			result:  Parsed,
		},
		{
			name:    "large integer keeps its digits",
			content: `{"date":"2024-01-01","value":12345678901234567890}`,
			want:    Metric{Date: "2024-01-01", Value: "12345678901234567890"},
			result:  Parsed,
		},
		{name: "label", content: "Running", result: NotJSON},
		{name: "empty", content: "", result: NotJSON},
		{name: "directive", content: "{{renderer :metrics, Weight, -, line}}", result: NotJSON},
		{name: "trailing garbage", content: `{"date":"2024-01-01","value":1} x`, result: NotJSON},
		{name: "missing value", content: `{"date":"2024-01-01"}`, result: NotMetric},
		{name: "missing date", content: `{"value":3}`, result: NotMetric},
		{name: "empty value", content: `{"date":"2024-01-01","value":""}`, result: NotMetric},
		{name: "bool value", content: `{"date":"2024-01-01","value":true}`, result: NotMetric},
		{name: "array", content: `[1,2]`, result: NotMetric},
		{name: "bare number", content: `42`, result: NotMetric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := ParseMetric(tt.content)
			assert.Equal(t, tt.result, res, res.String())
			if tt.result == Parsed {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestValue_Float(t *testing.T) {
	tests := []struct {
		in   Value
		want float64
		ok   bool
	}{
		{"80.2", 80.2, true},
		{" 5 ", 5, true},
		{"-3e2", -300, true},
		{"0", 0, true},
		{"abc", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"12kg", 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.in.Float()
		assert.Equal(t, tt.ok, ok, "value %q", tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, "value %q", tt.in)
	}
}

func TestMetric_JSON(t *testing.T) {
	m := NewMetric(time.Date(2024, 1, 2, 8, 30, 0, 0, time.UTC), "79.9")
	s, err := m.JSON()
	require.NoError(t, err)
	assert.Equal(t, `{"date":"2024-01-02T08:30:00.000Z","value":79.9}`, s)

	m.Value = "heavy"
	s, err = m.JSON()
	require.NoError(t, err)
	assert.Equal(t, `{"date":"2024-01-02T08:30:00.000Z","value":"heavy"}`, s)

	var back Metric
	require.NoError(t, json.Unmarshal([]byte(`{"date":"x","value":3}`), &back))
	assert.Equal(t, Value("3"), back.Value)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-02T08:30:00.000Z", time.Date(2024, 1, 2, 8, 30, 0, 0, time.UTC)},
		{"2024-01-02T08:30:00+02:00", time.Date(2024, 1, 2, 6, 30, 0, 0, time.UTC)},
		{"2024-01-02", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2024-01-02T08:30:00", time.Date(2024, 1, 2, 8, 30, 0, 0, time.Local)},
		{"2024-01-02 08:30", time.Date(2024, 1, 2, 8, 30, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %s want %s", tt.in, got, tt.want)
	}

	for _, bad := range []string{"", "yesterday", "2024-13-01", "01/02/2024"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestJournalDate(t *testing.T) {
	got, ok := JournalDate(20240131)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.Local), got)
	assert.Equal(t, 20240131, JournalDay(got))

	for _, bad := range []int{0, 2024131, 20241301, 123456789} {
		_, ok := JournalDate(bad)
		assert.False(t, ok, bad)
	}
}
