package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/tally/internal/errors"
	"github.com/rileyhilliard/tally/internal/metrics"
	"github.com/rileyhilliard/tally/internal/ui"
	"github.com/spf13/cobra"
)

// AddOptions holds options for the add command.
type AddOptions struct {
	Metric  string
	Child   string
	Value   string
	Date    string // empty means now
	Journal bool   // also record the entry on the day's journal page
}

// AddResult is the --json payload of add.
type AddResult struct {
	Metric      string `json:"metric"`
	Child       string `json:"child,omitempty"`
	Date        string `json:"date"`
	Value       string `json:"value"`
	JournalPage string `json:"journal_page,omitempty"`
}

var addOpts AddOptions

var addCmd = &cobra.Command{
	Use:   "add [metric] [child]",
	Short: "Store a data point",
	Long: `Store a numeric data point under a metric, optionally grouped by a child.

When the metric or the value is missing and stdin is a terminal, a form
asks for them.

Examples:
  tally add Weight --value 80.5
  tally add Exercise Running --value 5 --date 2024-03-01
  tally add Water --value 2 --journal`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := addOpts
		if len(args) > 0 {
			opts.Metric = args[0]
		}
		if len(args) > 1 {
			opts.Child = args[1]
		}
		if (opts.Metric == "" || opts.Value == "") && isInteractive() {
			if err := promptEntry(&opts); err != nil {
				return err
			}
		}
		return addCommand(cmd.Context(), globals(), opts, cmd.OutOrStdout())
	},
}

func init() {
	addCmd.Flags().StringVar(&addOpts.Value, "value", "", "numeric value to store")
	addCmd.Flags().StringVar(&addOpts.Date, "date", "", "entry date (RFC3339 or YYYY-MM-DD, default now)")
	addCmd.Flags().BoolVar(&addOpts.Journal, "journal", false, "also add the entry to the day's journal page")
	rootCmd.AddCommand(addCmd)
}

// promptEntry asks for whatever the command line left out.
func promptEntry(opts *AddOptions) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Metric").
				Placeholder("Weight").
				Value(&opts.Metric).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("metric name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Child (optional)").
				Description("Groups entries under the metric, e.g. Running under Exercise").
				Value(&opts.Child),
			huh.NewInput().
				Title("Value").
				Placeholder("80.5").
				Value(&opts.Value).
				Validate(validateValue),
			huh.NewConfirm().
				Title("Add to today's journal?").
				Value(&opts.Journal),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Pass the metric as an argument and the value with --value")
	}
	return nil
}

func validateValue(s string) error {
	if _, ok := metrics.Value(s).Float(); !ok {
		return fmt.Errorf("%q is not a finite number", s)
	}
	return nil
}

// entryDate resolves --date.
func entryDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	t, err := metrics.ParseDate(s)
	if err != nil {
		return time.Time{}, errors.WrapWithCode(err, errors.ErrParse,
			fmt.Sprintf("'%s' doesn't look like a date", s),
			"Use RFC3339 (2024-03-01T08:00:00Z) or YYYY-MM-DD.")
	}
	return t, nil
}

// addCommand stores one entry and, with Journal set, mirrors it to the
// journal page of its day.
func addCommand(ctx context.Context, g GlobalOptions, opts AddOptions, w io.Writer) error {
	opts.Metric = strings.TrimSpace(opts.Metric)
	opts.Child = strings.TrimSpace(opts.Child)
	if opts.Metric == "" {
		return errors.New(errors.ErrConfig,
			"No metric given",
			"Usage: tally add <metric> [child] --value <n>")
	}
	if err := validateValue(opts.Value); err != nil {
		return errors.WrapWithCode(err, errors.ErrParse,
			"The value must be a number",
			"Pass it with --value, e.g. --value 80.5")
	}

	date, err := entryDate(opts.Date, time.Now())
	if err != nil {
		return err
	}
	entry := metrics.NewMetric(date, opts.Value)

	notice := ui.NewNotice(w)
	var notifier metrics.Notifier
	if !machineMode {
		notifier = metrics.NotifierFunc(func(msg string) { notice.Success("%s", msg) })
	}

	ws, err := openWorkspace(g, notifier)
	if err != nil {
		return err
	}

	if err := ws.repo.StoreMetric(ctx, opts.Metric, opts.Child, entry); err != nil {
		return err
	}

	result := AddResult{
		Metric: opts.Metric,
		Child:  opts.Child,
		Date:   entry.Date,
		Value:  string(entry.Value),
	}

	if opts.Journal {
		page, _, err := ws.repo.JournalPageName(entry)
		if err != nil {
			return err
		}
		if _, err := ws.repo.AddToJournal(ctx, opts.Metric, opts.Child, entry); err != nil {
			return err
		}
		result.JournalPage = page
		if !machineMode {
			notice.Info("Added to journal page %s", page)
		}
	}

	if machineMode {
		return WriteJSONSuccess(w, result)
	}
	return nil
}
