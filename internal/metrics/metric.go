package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// isoLayout matches the millisecond ISO-8601 form entries are written with.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Value is a stored metric value in its textual form. Entries may hold the
// value as a JSON number or as a string; both decode to the same Value.
type Value string

// Float parses the value as a finite number.
func (v Value) Float() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// MarshalJSON writes numeric values as JSON numbers and everything else as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	s := strings.TrimSpace(string(v))
	if _, ok := v.Float(); ok && isJSONNumber(s) {
		return []byte(s), nil
	}
	return json.Marshal(string(v))
}

// UnmarshalJSON accepts a JSON number or string.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return fmt.Errorf("metrics: empty value")
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case isJSONNumber(string(data)):
		*v = Value(data)
	default:
		return fmt.Errorf("metrics: value must be a number or string, got %s", data)
	}
	return nil
}

func isJSONNumber(s string) bool {
	if s == "" || !(s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) {
		return false
	}
	var n json.Number
	return json.Unmarshal([]byte(s), &n) == nil
}

// Metric is one dated data point.
type Metric struct {
	Date  string `json:"date"`
	Value Value  `json:"value"`
}

// NewMetric creates an entry dated t, formatted the way entries are stored.
func NewMetric(t time.Time, value string) Metric {
	return Metric{
		Date:  t.UTC().Format(isoLayout),
		Value: Value(strings.TrimSpace(value)),
	}
}

// Time parses the entry date.
func (m Metric) Time() (time.Time, error) {
	return ParseDate(m.Date)
}

// Float parses the entry value.
func (m Metric) Float() (float64, bool) {
	return m.Value.Float()
}

// JSON encodes the entry as leaf node content.
func (m Metric) JSON() (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseResult says what ParseMetric found in a node's content.
type ParseResult int

const (
	// NotJSON means the content did not decode; such nodes are labels.
	NotJSON ParseResult = iota
	// NotMetric means the content is JSON but lacks a date or value.
	NotMetric
	// Parsed means the content is a metric entry.
	Parsed
)

// String returns a short name for the result.
func (r ParseResult) String() string {
	switch r {
	case NotJSON:
		return "not-json"
	case NotMetric:
		return "not-metric"
	case Parsed:
		return "metric"
	default:
		return "unknown"
	}
}

// ParseMetric decodes node content. A metric needs a non-empty string date
// and a non-empty number or string value; validity of either is checked
// later by FilterInvalidMetrics.
func ParseMetric(content string) (Metric, ParseResult) {
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return Metric{}, NotJSON
	}
	if dec.More() {
		return Metric{}, NotJSON
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		return Metric{}, NotMetric
	}

	date, _ := obj["date"].(string)

	var value Value
	switch v := obj["value"].(type) {
	case json.Number:
		value = Value(v.String())
	case string:
		value = Value(v)
	}

	if date == "" || value == "" {
		return Metric{}, NotMetric
	}
	return Metric{Date: date, Value: value}, Parsed
}

// isJSON reports whether content decodes as any JSON value.
func isJSON(content string) bool {
	return json.Valid([]byte(strings.TrimSpace(content)))
}

// dateLayouts are tried in order by ParseDate. Layouts without a zone are
// read as local time, except date-only strings which are UTC.
var dateLayouts = []struct {
	layout string
	local  bool
}{
	{time.RFC3339Nano, false},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02T15:04", true},
	{"2006-01-02 15:04:05", true},
	{"2006-01-02 15:04", true},
	{"2006-01-02", false},
}

// ParseDate parses an entry date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		var (
			t   time.Time
			err error
		)
		if l.local {
			t, err = time.ParseInLocation(l.layout, s, time.Local)
		} else {
			t, err = time.Parse(l.layout, s)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("metrics: invalid date %q", s)
}

// JournalDate converts a yyyymmdd journal day to local midnight.
func JournalDate(day int) (time.Time, bool) {
	s := strconv.Itoa(day)
	if len(s) != 8 {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("20060102", s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// JournalDay converts a time to its yyyymmdd journal day.
func JournalDay(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
