package cli

import (
	"io"
	"os"

	"github.com/rileyhilliard/tally/internal/config"
	"github.com/rileyhilliard/tally/internal/logger"
	"github.com/rileyhilliard/tally/internal/metrics"
	"github.com/rileyhilliard/tally/internal/outline"
	"github.com/rileyhilliard/tally/internal/termchart"
	"github.com/rileyhilliard/tally/internal/viz"
	"golang.org/x/term"
)

// GlobalOptions are the root flags every command reads.
type GlobalOptions struct {
	ConfigPath string
	Graph      string
	Verbose    bool
	// Silent drops all logging, for full-screen programs.
	Silent bool
}

// globals collects the root flags.
func globals() GlobalOptions {
	return GlobalOptions{ConfigPath: cfgFile, Graph: graphFile, Verbose: verbose}
}

// workspace is everything a command needs to read or write metrics.
type workspace struct {
	cfg        *config.Config
	configPath string
	store      *outline.FileStore
	repo       *metrics.Repository
	verbose    bool
	silent     bool
}

// openWorkspace loads the config, opens the graph file and builds the
// repository. notifier may be nil.
func openWorkspace(opts GlobalOptions, notifier metrics.Notifier) (*workspace, error) {
	cfg, path, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Graph != "" {
		wd, _ := os.Getwd()
		cfg.Graph = config.ExpandPath(opts.Graph, wd)
	}
	if err := config.Validate(cfg, config.WithGraphCheck()); err != nil {
		return nil, err
	}

	store, err := outline.OpenFile(cfg.Graph)
	if err != nil {
		return nil, err
	}

	ws := &workspace{cfg: cfg, configPath: path, store: store, verbose: opts.Verbose, silent: opts.Silent}
	repoOpts := []metrics.Option{
		metrics.WithDataPage(cfg.DataPageName),
		metrics.WithJournalTitle(cfg.JournalTitle),
		metrics.WithDateFormat(cfg.DateFormat),
		metrics.WithLogger(ws.logger("[metrics]")),
	}
	if notifier != nil {
		repoOpts = append(repoOpts, metrics.WithNotifier(notifier))
	}
	ws.repo = metrics.NewRepository(store, store, repoOpts...)
	return ws, nil
}

// logger returns a component logger. Without --verbose only warnings and
// errors are printed.
func (w *workspace) logger(prefix string) logger.Logger {
	if w.silent {
		return logger.Noop()
	}
	l := logger.NewEnvLogger(prefix)
	if w.verbose {
		return l
	}
	return logger.Quiet(l)
}

// registry creates a visualization registry drawing into host.
func (w *workspace) registry(host viz.Host) *viz.Registry {
	return viz.NewRegistry(viz.Env{
		Source:      w.repo,
		Charts:      termchart.New(),
		Host:        host,
		ChartHeight: w.cfg.ChartHeight,
		DateFormat:  w.cfg.DateFormat,
		Theme:       config.ResolveTheme(w.cfg.Theme),
		Log:         w.logger("[viz]"),
	})
}

// terminalWidth returns the width of w when it is a terminal, and the
// default canvas width otherwise.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return viz.DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return viz.DefaultWidth
	}
	return width
}

// isInteractive reports whether prompts can be shown.
func isInteractive() bool {
	return !machineMode && term.IsTerminal(int(os.Stdin.Fd()))
}
