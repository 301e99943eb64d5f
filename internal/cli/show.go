package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rileyhilliard/tally/internal/dashboard"
	"github.com/rileyhilliard/tally/internal/errors"
	"github.com/rileyhilliard/tally/internal/ui"
	"github.com/rileyhilliard/tally/internal/util"
	"github.com/rileyhilliard/tally/internal/viz"
	"github.com/spf13/cobra"
)

// showSlot is the single slot used by show.
const showSlot = "show"

var showType string

var showCmd = &cobra.Command{
	Use:   "show <metric> [child]",
	Short: "Print one visualization",
	Long: `Render a single card or chart for a metric and print it.

Types: sum, average, latest, count, bar, line, cumulative-line,
properties-line, properties-cumulative-line.

Examples:
  tally show Weight
  tally show Exercise --as bar
  tally show Exercise Running --as sum`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		child := ""
		if len(args) == 2 {
			child = args[1]
		}
		w := cmd.OutOrStdout()
		return showCommand(cmd.Context(), globals(), args[0], child, showType, terminalWidth(w), w)
	},
}

var renderCmd = &cobra.Command{
	Use:   "render <page>",
	Short: "Print every visualization on a page",
	Long: `Mount every metrics directive on a page and print the results in
outline order.

Examples:
  tally render Health`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		return renderCommand(cmd.Context(), globals(), args[0], terminalWidth(w), w, os.Stderr)
	},
}

func init() {
	showCmd.Flags().StringVar(&showType, "as", "line", "visualization type")
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(renderCmd)
}

// checkType rejects type tags no visualization accepts.
func checkType(tag string) error {
	if _, ok := viz.KindFor(tag); ok {
		return nil
	}
	suggestion := "Use one of: " + util.JoinOrDefault(viz.Types(), "(none)")
	if similar := util.SuggestSimilar(tag, viz.Types(), 1); len(similar) > 0 {
		suggestion = fmt.Sprintf("Did you mean '%s'? %s", similar[0], suggestion)
	}
	return errors.New(errors.ErrVisualization,
		fmt.Sprintf("Unknown visualization type: %s", tag),
		suggestion)
}

func showCommand(ctx context.Context, g GlobalOptions, metric, child, typeTag string, width int, w io.Writer) error {
	if err := checkType(typeTag); err != nil {
		return err
	}

	ws, err := openWorkspace(g, nil)
	if err != nil {
		return err
	}

	host := viz.NewBufferHost(width)
	registry := ws.registry(host)
	defer registry.ReleaseAll()

	host.Open(showSlot)
	args := viz.FindDirectives(viz.FormatDirective(metric, child, typeTag))[0]
	if err := registry.Mount(ctx, showSlot, showSlot, args); err != nil {
		return err
	}

	fmt.Fprintln(w, host.Content(showSlot))
	return nil
}

// renderCommand mounts a page's directives one after another. Progress goes
// to status so stdout only carries the rendered output.
func renderCommand(ctx context.Context, g GlobalOptions, pageName string, width int, w, status io.Writer) error {
	ws, err := openWorkspace(g, nil)
	if err != nil {
		return err
	}

	pages, err := dashboard.Discover(ctx, ws.store)
	if err != nil {
		return err
	}
	var page *dashboard.Page
	for i := range pages {
		if strings.EqualFold(pages[i].Name, pageName) {
			page = &pages[i]
			break
		}
	}
	if page == nil {
		return errors.New(errors.ErrNotFound,
			fmt.Sprintf("No visualizations on page %s", pageName),
			fmt.Sprintf("Add one with 'tally embed %s <metric>'", pageName))
	}

	host := viz.NewBufferHost(width)
	registry := ws.registry(host)
	defer registry.ReleaseAll()

	n := page.Slots()
	spinner := ui.NewSpinner(status, fmt.Sprintf("Rendering %d %s on %s", n, util.Pluralize(n, "visualization", "visualizations"), page.Name))
	spinner.Start()

	var failed []string
	for _, b := range page.Blocks {
		for i, args := range b.Directives {
			slot := dashboard.SlotID(b.NodeID, i)
			host.Open(slot)
			if err := registry.Mount(ctx, b.NodeID, slot, args); err != nil {
				failed = append(failed, slot)
			}
		}
	}

	if len(failed) > 0 {
		spinner.Fail()
	} else {
		spinner.Success()
	}

	fmt.Fprintln(w, host.String())
	if len(failed) > 0 {
		return errors.New(errors.ErrVisualization,
			fmt.Sprintf("%d of %d visualizations failed to render", len(failed), page.Slots()),
			"Run with --verbose to see why")
	}
	return nil
}
