// Package metrics stores and queries numeric time series kept in an outline.
//
// # Layout
//
// All metrics live on one root page (the data page). A metric is a root
// node whose content is the metric name. Its children are either entries or
// group labels, and a label's children are entries:
//
//	metrics-data
//	├── Weight
//	│   ├── {"date":"2024-01-01T08:00:00.000Z","value":80.2}
//	│   └── {"date":"2024-01-02T08:00:00.000Z","value":79.9}
//	└── Exercise
//	    ├── Running
//	    │   └── {"date":"2024-01-01T18:00:00.000Z","value":5}
//	    └── Cycling
//	        └── {"date":"2024-01-03T18:00:00.000Z","value":20}
//
// Entries are leaf nodes whose content is a JSON object with a date and a
// value. Anything that is not JSON is a label; JSON that is not an entry is
// ignored.
//
// # Repository
//
// Repository resolves (name, child) key paths to nodes, creating them on
// write, and loads entries back for aggregation. Lookups are by exact
// content and the first match at a level wins.
//
// # Aggregation
//
// FilterInvalidMetrics, SortMetricsByDate and PrepareSeries turn loaded
// entries into chart points. LineDatasets and PropertiesQuery build the
// per-series input for line charts.
package metrics
