package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rileyhilliard/tally/internal/errors"
)

// MinChartHeight is the smallest chart_height that still draws a plot.
const MinChartHeight = 3

// ValidationOption controls validation behavior.
type ValidationOption func(*validationContext)

type validationContext struct {
	checkGraph bool
}

// WithGraphCheck also checks that the graph file, if it exists, is a
// regular file and not a directory.
func WithGraphCheck() ValidationOption {
	return func(c *validationContext) {
		c.checkGraph = true
	}
}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config, opts ...ValidationOption) error {
	ctx := &validationContext{}
	for _, opt := range opts {
		opt(ctx)
	}

	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but tally only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest tally: https://github.com/rileyhilliard/tally/releases")
	}

	if strings.TrimSpace(cfg.Graph) == "" {
		return errors.New(errors.ErrConfig,
			"No graph file configured",
			fmt.Sprintf("Set 'graph' in your %s, e.g. graph: %s", ConfigFileName, DefaultGraphPath))
	}

	if strings.TrimSpace(cfg.DataPageName) == "" {
		return errors.New(errors.ErrConfig,
			"data_page_name can't be empty",
			"Remove the key to use the default 'metrics-data'.")
	}

	if err := validateJournalTitle(cfg.JournalTitle); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check 'journal_title' in your "+ConfigFileName+".")
	}

	if cfg.ChartHeight < MinChartHeight {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("chart_height %d is too small to draw anything", cfg.ChartHeight),
			fmt.Sprintf("Use at least %d rows.", MinChartHeight))
	}

	if err := validateDateFormat(cfg.DateFormat); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Use a Go time layout like 'Jan 2, 2006' or '2006-01-02'.")
	}

	if err := validateTheme(cfg.Theme); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check 'theme' in your "+ConfigFileName+".")
	}

	if ctx.checkGraph {
		if err := validateGraph(cfg.Graph); err != nil {
			return err
		}
	}

	return nil
}

// validateJournalTitle requires the ${metric} placeholder so entries stay
// distinguishable on a shared journal page.
func validateJournalTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("journal_title can't be empty")
	}
	if !strings.Contains(title, "${metric}") {
		return fmt.Errorf("journal_title '%s' needs a ${metric} placeholder", title)
	}
	return nil
}

// validateDateFormat rejects layouts that format every date the same way.
func validateDateFormat(layout string) error {
	if strings.TrimSpace(layout) == "" {
		return fmt.Errorf("date_format can't be empty")
	}
	a := time.Date(2001, time.February, 3, 0, 0, 0, 0, time.UTC)
	b := time.Date(2004, time.May, 6, 0, 0, 0, 0, time.UTC)
	if a.Format(layout) == b.Format(layout) {
		return fmt.Errorf("date_format '%s' doesn't contain any date fields", layout)
	}
	return nil
}

func validateTheme(theme string) error {
	switch theme {
	case ThemeAuto, ThemeDark, ThemeLight, "":
		return nil
	default:
		return fmt.Errorf("theme '%s' isn't valid - use 'auto', 'dark', or 'light'", theme)
	}
}

func validateGraph(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			dir := filepath.Dir(path)
			if di, derr := os.Stat(dir); derr == nil && !di.IsDir() {
				return errors.New(errors.ErrConfig,
					fmt.Sprintf("Graph directory %s is a file", dir),
					"Point 'graph' somewhere else.")
			}
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot access graph file "+path,
			"Check file permissions")
	}
	if info.IsDir() {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Graph path %s is a directory", path),
			"Point 'graph' at a .yaml file, e.g. "+filepath.Join(path, "graph.yaml"))
	}
	return nil
}
