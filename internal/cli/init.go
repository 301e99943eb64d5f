package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/tally/internal/config"
	"github.com/rileyhilliard/tally/internal/errors"
	"github.com/rileyhilliard/tally/internal/ui"
	"github.com/spf13/cobra"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir         string // directory to write .tally.yaml in
	Graph       string // graph file to record; empty keeps the default
	Force       bool   // overwrite an existing config without asking
	Interactive bool   // ask before overwriting
}

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .tally.yaml configuration",
	Long: `Write a .tally.yaml with default settings in the current directory.

Examples:
  tally init
  tally init --graph ./metrics.yaml
  tally init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(InitOptions{
			Dir:         ".",
			Graph:       graphFile,
			Force:       initForce,
			Interactive: isInteractive(),
		}, cmd.OutOrStdout())
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	rootCmd.AddCommand(initCmd)
}

func initCommand(opts InitOptions, w io.Writer) error {
	path := filepath.Join(opts.Dir, config.ConfigFileName)
	notice := ui.NewNotice(w)

	force := opts.Force
	if _, err := os.Stat(path); err == nil && !force && opts.Interactive {
		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			notice.Info("Cancelled.")
			return nil
		}
		force = true
	}

	cfg := config.DefaultConfig()
	if opts.Graph != "" {
		cfg.Graph = opts.Graph
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if err := config.Write(path, cfg, force); err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(w, map[string]string{"path": path})
	}
	notice.Success("Created %s", path)
	notice.Info("Graph file: %s", cfg.Graph)
	return nil
}
