package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rileyhilliard/tally/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile   string
	graphFile string
	noColor   bool
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Track numbers in an outline and chart them in the terminal",
	Long: `tally stores numeric data points as nodes of an outline graph and
draws them as cards and charts.

Visualizations are embedded in pages with directives like
{{renderer :metrics, Weight, -, line}} and rendered by "tally render"
or browsed with "tally dashboard".

Examples:
  tally add Weight --value 80.5
  tally add Exercise Running --value 5 --journal
  tally embed Health Weight --as line
  tally dashboard --watch`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || os.Getenv("NO_COLOR") != "" {
			ui.DisableColors()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .tally.yaml, searched upward)")
	rootCmd.PersistentFlags().StringVar(&graphFile, "graph", "", "graph file (overrides the config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log informational messages")
	rootCmd.PersistentFlags().BoolVar(&machineMode, "json", false, "machine-readable JSON output")
}

// Execute runs the root command and returns the process exit code. Errors
// are printed once, as JSON with --json.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	if machineMode {
		_ = WriteJSONFromError(os.Stdout, err)
	} else {
		fmt.Fprint(os.Stderr, formatError(err))
	}
	return 1
}

// formatError renders err for the terminal. Structured errors already carry
// their own layout; anything else gets the failure symbol.
func formatError(err error) string {
	msg := err.Error()
	if !strings.HasPrefix(msg, ui.SymbolFail) {
		msg = ui.SymbolFail + " " + msg
	}
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	return msg
}
