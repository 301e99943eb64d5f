package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/rileyhilliard/tally/internal/metrics"
	"github.com/rileyhilliard/tally/internal/termchart"
	"github.com/rileyhilliard/tally/internal/ui"
	"github.com/spf13/cobra"
)

// trendWidth is the sparkline width in the list table.
const trendWidth = 16

// MetricSummary is one metric in the list output.
type MetricSummary struct {
	Name       string  `json:"name"`
	Entries    int     `json:"entries"`
	Latest     *string `json:"latest,omitempty"`
	LatestDate string  `json:"latest_date,omitempty"`
	trend      []float64
}

var listCmd = &cobra.Command{
	Use:   "list [parent]",
	Short: "List metrics",
	Long: `List the metrics on the data page with their entry count, latest value
and a trend sparkline. With a parent, list that metric's child groups.

Examples:
  tally list
  tally list Exercise
  tally list --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent := ""
		if len(args) == 1 {
			parent = args[0]
		}
		return listCommand(cmd.Context(), globals(), parent, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// summarize loads each metric (or child group of parent) and condenses it.
func summarize(ctx context.Context, repo *metrics.Repository, parent string) ([]MetricSummary, error) {
	names, err := repo.LoadMetricNames(ctx, parent)
	if err != nil {
		return nil, err
	}

	out := make([]MetricSummary, 0, len(names))
	for _, n := range names {
		name, child := n.Label, ""
		if parent != "" {
			name, child = parent, n.Label
		}
		entries, err := repo.LoadMetrics(ctx, name, child)
		if err != nil {
			return nil, err
		}

		valid := metrics.FilterInvalidMetrics(entries)
		s := MetricSummary{Name: metrics.FullName(name, child), Entries: len(valid)}
		if latest, ok := metrics.Latest(valid); ok {
			v := string(latest.Value)
			s.Latest = &v
			s.LatestDate = latest.Date
		}
		for _, p := range metrics.PrepareSeries(valid, false) {
			s.trend = append(s.trend, p.Y)
		}
		out = append(out, s)
	}
	return out, nil
}

func listCommand(ctx context.Context, g GlobalOptions, parent string, w io.Writer) error {
	ws, err := openWorkspace(g, nil)
	if err != nil {
		return err
	}

	summaries, err := summarize(ctx, ws.repo, parent)
	if err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(w, summaries)
	}

	rows := make([]ui.MetricTableRow, len(summaries))
	for i, s := range summaries {
		latest := "-"
		if s.Latest != nil {
			latest = *s.Latest
		}
		rows[i] = ui.MetricTableRow{
			Metric:  s.Name,
			Entries: strconv.Itoa(s.Entries),
			Latest:  latest,
			// Uncolored: table cell widths count escape codes.
			Trend: termchart.RenderSparkline(s.trend, trendWidth, ""),
		}
	}
	fmt.Fprintln(w, ui.RenderMetricTable(rows))
	return nil
}
