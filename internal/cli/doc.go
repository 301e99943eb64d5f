// Package cli implements the tally command-line interface.
//
// Each Cobra command parses flags and delegates to a plain function that
// takes an options struct and an io.Writer, so the logic can be tested
// without running the command tree.
//
// # Command Structure
//
//	tally add [metric] [child]     - Store a data point
//	tally list [parent]            - List metrics with a trend sparkline
//	tally show <metric> [child]    - Print one visualization
//	tally embed <page> <metric>    - Add a directive to a page
//	tally render <page>            - Print every visualization on a page
//	tally dashboard                - Interactive page browser
//	tally init                     - Create .tally.yaml
//	tally config [show|set]        - Inspect or edit the config
//
// # Wiring
//
// openWorkspace loads and validates the config, opens the graph file and
// builds the metrics repository. Commands that draw visualizations create a
// viz.Registry over a BufferHost through workspace.registry.
//
// # Flag Handling
//
// Global flags (--config, --graph, --no-color, --verbose, --json) live on
// the root command. --json switches commands that support it to the JSON
// envelope in json.go.
package cli
