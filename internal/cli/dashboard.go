package cli

import (
	"github.com/rileyhilliard/tally/internal/dashboard"
	"github.com/rileyhilliard/tally/internal/errors"
	"github.com/rileyhilliard/tally/internal/viz"
	"github.com/spf13/cobra"
)

// DashboardOptions holds options for the dashboard command.
type DashboardOptions struct {
	Page  string
	Watch bool
}

var dashboardOpts DashboardOptions

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Browse pages with visualizations",
	Long: `Start an interactive view of every page that embeds metrics
visualizations, one page at a time.

Keyboard shortcuts:
  n / Right   Next page
  p / Left    Previous page
  t           Toggle dark/light theme
  r           Reload the graph file
  j/k         Scroll
  ?           Show help
  q / Ctrl+C  Quit

With --watch, edits to the graph file by other programs reload the
current page automatically.

Examples:
  tally dashboard
  tally dashboard --page Health --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(globals(), dashboardOpts)
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardOpts.Page, "page", "", "page to open first")
	dashboardCmd.Flags().BoolVar(&dashboardOpts.Watch, "watch", false, "reload when the graph file changes")
	rootCmd.AddCommand(dashboardCmd)
}

func dashboardCommand(g GlobalOptions, opts DashboardOptions) error {
	if machineMode {
		return errors.New(errors.ErrConfig,
			"The dashboard is interactive and has no JSON output",
			"Use 'tally render <page>' or 'tally list --json' instead")
	}

	// Log lines would tear the alternate screen; errors show in the footer.
	g.Silent = true
	ws, err := openWorkspace(g, nil)
	if err != nil {
		return err
	}

	host := viz.NewBufferHost(viz.DefaultWidth)
	watchPath := ""
	if opts.Watch {
		watchPath = ws.store.Path()
	}

	return dashboard.Run(dashboard.Options{
		Store:     ws.store,
		Registry:  ws.registry(host),
		Host:      host,
		StartPage: opts.Page,
		Log:       ws.logger("[dashboard]"),
	}, watchPath)
}
