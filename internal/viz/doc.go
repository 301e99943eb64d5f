// Package viz turns visualization directives into rendered cards and charts.
//
// A directive is embedded in node content:
//
//	{{renderer :metrics, Weight, -, line}}
//
// Its arguments are a discriminator (always :metrics), a metric name (or a
// property list for properties charts), a child name or "-" for none, and a
// visualization type. The host that displays the outline hands each rendered
// directive a slot, and Registry.Mount fills the slot.
//
// # Lifecycle
//
// Registry keeps at most one live Visualization per (uuid, slot). Mounting a
// live key only refreshes it; mounting a new key creates, renders and
// provides markup to the host, then post-renders. Chart kinds draw into the
// slot's canvas during PostRender and destroy the chart on Release.
//
// Theme changes re-run PostRender on every live instance. Navigation
// releases everything, since the host is about to tear down its slots.
//
// # Kinds
//
// The type tag picks one of four kinds:
//
//	card             sum, average, latest, count
//	bar              bar
//	line             line, cumulative-line
//	properties-line  properties-line, properties-cumulative-line
package viz
