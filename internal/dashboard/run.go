package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/tally/internal/errors"
	"github.com/rileyhilliard/tally/internal/outline"
)

// Run starts the dashboard and blocks until the user quits. When watchPath
// is set, external edits of that file reload the current page.
func Run(opts Options, watchPath string) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())

	if watchPath != "" {
		w, err := outline.Watch(watchPath, func(err error) {
			p.Send(ReloadMsg{Err: err})
		}, 0)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrStore,
				"Can't watch "+watchPath,
				"Run without --watch, or check the directory exists")
		}
		w.Start()
		defer w.Stop()
	}

	_, err := p.Run()
	opts.Registry.ReleaseAll()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrVisualization,
			"Dashboard exited with an error", "")
	}
	return nil
}
