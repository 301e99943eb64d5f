package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rileyhilliard/tally/internal/errors"
	"github.com/rileyhilliard/tally/internal/outline"
	"github.com/rileyhilliard/tally/internal/ui"
	"github.com/rileyhilliard/tally/internal/viz"
	"github.com/spf13/cobra"
)

// EmbedResult is the --json payload of embed.
type EmbedResult struct {
	Page      string `json:"page"`
	NodeID    string `json:"node_id"`
	Directive string `json:"directive"`
}

var embedType string

var embedCmd = &cobra.Command{
	Use:   "embed <page> <metric> [child]",
	Short: "Add a visualization directive to a page",
	Long: `Append a metrics directive to a page, creating the page if needed.

For properties charts, pass the journal property names separated by spaces
or colons; a trailing * puts a property on the secondary axis.

Examples:
  tally embed Health Weight --as line
  tally embed Health Exercise Running --as sum
  tally embed Journal "water coffee*" --as properties-line`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		child := ""
		if len(args) == 3 {
			child = args[2]
		}
		return embedCommand(cmd.Context(), globals(), args[0], args[1], child, embedType, cmd.OutOrStdout())
	},
}

func init() {
	embedCmd.Flags().StringVar(&embedType, "as", "line", "visualization type")
	rootCmd.AddCommand(embedCmd)
}

func embedCommand(ctx context.Context, g GlobalOptions, pageName, metric, child, typeTag string, w io.Writer) error {
	if err := checkType(typeTag); err != nil {
		return err
	}

	ws, err := openWorkspace(g, nil)
	if err != nil {
		return err
	}

	if _, err := ws.store.GetPage(ctx, pageName); err != nil {
		if !errors.IsNotFound(err) {
			return err
		}
		if _, err := ws.store.CreatePage(ctx, pageName, outline.PageOptions{}); err != nil {
			return errors.WrapWithCode(err, errors.ErrCreate,
				fmt.Sprintf("Couldn't create page %q", pageName), "")
		}
	}

	directive := viz.FormatDirective(metric, child, typeTag)
	node, err := ws.store.AppendToPage(ctx, pageName, directive, nil)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrCreate,
			fmt.Sprintf("Couldn't add the directive to %q", pageName), "")
	}

	if machineMode {
		return WriteJSONSuccess(w, EmbedResult{Page: pageName, NodeID: node.ID, Directive: directive})
	}
	ui.NewNotice(w).Success("Added %s to %s", directive, pageName)
	return nil
}
