package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rileyhilliard/tally/internal/config"
	"github.com/rileyhilliard/tally/internal/errors"
	"github.com/rileyhilliard/tally/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ConfigShowResult is the --json payload of config show.
type ConfigShowResult struct {
	Path   string         `json:"path,omitempty"`
	Config *config.Config `json:"config"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Long: `Print the configuration after defaults, the config file and TALLY_*
environment overrides are applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowCommand(globals(), cmd.OutOrStdout())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting in the config file",
	Long: fmt.Sprintf(`Set a top-level key in the config file, keeping its comments and layout.

Keys: %s

Examples:
  tally config set chart_height 12
  tally config set theme light`, strings.Join(config.SettableKeys(), ", ")),
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return config.SettableKeys(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSetCommand(globals(), args[0], args[1], cmd.OutOrStdout())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func configShowCommand(g GlobalOptions, w io.Writer) error {
	cfg, path, err := config.LoadOrDefault(g.ConfigPath)
	if err != nil {
		return err
	}
	if g.Graph != "" {
		cfg.Graph = g.Graph
	}

	if machineMode {
		return WriteJSONSuccess(w, ConfigShowResult{Path: path, Config: cfg})
	}

	notice := ui.NewNotice(w)
	if path == "" {
		notice.Info("# no config file found, showing defaults")
	} else {
		notice.Info("# %s", path)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

func configSetCommand(g GlobalOptions, key, value string, w io.Writer) error {
	path, err := config.Find(g.ConfigPath)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"No config file to change",
			"Create one with 'tally init'")
	}

	if err := config.SetValue(path, key, value); err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(w, map[string]string{"path": path, "key": key, "value": value})
	}
	ui.NewNotice(w).Success("Set %s = %s in %s", key, value, path)
	return nil
}
