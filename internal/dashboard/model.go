package dashboard

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/tally/internal/logger"
	"github.com/rileyhilliard/tally/internal/outline"
	"github.com/rileyhilliard/tally/internal/ui"
	"github.com/rileyhilliard/tally/internal/viz"
)

// Reloader is implemented by stores that can re-read their backing file.
type Reloader interface {
	Reload() error
}

// Options configure a dashboard Model.
type Options struct {
	Store    outline.Store
	Registry *viz.Registry
	// Host must be the host the registry was created with.
	Host *viz.BufferHost
	// StartPage selects the first page shown. Empty means the first page.
	StartPage string
	Log       logger.Logger
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	store    outline.Store
	registry *viz.Registry
	host     *viz.BufferHost
	log      logger.Logger

	pages     []Page
	current   int
	startPage string
	loaded    bool

	// gen increases on every page entry. Mount results from an older
	// generation are ignored.
	gen     int
	pending int
	lastErr string

	spinner  ui.SpinnerComponent
	viewport viewport.Model
	ready    bool
	width    int
	height   int
	showHelp bool
	quitting bool
}

// Header and footer heights reserved around the viewport.
const (
	headerHeight = 2
	footerHeight = 2
)

// pagesMsg carries the result of page discovery.
type pagesMsg struct {
	pages []Page
	err   error
}

// mountedMsg reports that one directive finished mounting.
type mountedMsg struct {
	gen  int
	slot string
	err  error
}

// refreshedMsg reports that live visualizations were redrawn in place.
type refreshedMsg struct {
	err error
}

// ReloadMsg asks the dashboard to reload the store and remount the current
// page. The file watcher sends it on external edits; Err carries a watcher
// failure, if any.
type ReloadMsg struct {
	Err error
}

// NewModel creates a dashboard model.
func NewModel(opts Options) Model {
	return Model{
		store:     opts.Store,
		registry:  opts.Registry,
		host:      opts.Host,
		log:       logger.OrDefault(opts.Log),
		startPage: opts.StartPage,
		spinner:   ui.NewSpinnerComponent("Loading"),
	}
}

// Init discovers the pages to show.
func (m Model) Init() tea.Cmd {
	return m.discoverCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}
		if m.ready {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.MouseMsg:
		if m.ready {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		return m, m.resize(msg.Width, msg.Height)

	case pagesMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			m.log.Warn("Failed to load pages: %v", msg.err)
			return m, nil
		}
		warning := m.setPages(msg.pages)
		cmd := m.enterPage()
		if warning != "" {
			m.lastErr = warning
		}
		return m, cmd

	case mountedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.pending--
		if msg.err != nil {
			m.lastErr = msg.err.Error()
		}
		if m.pending <= 0 {
			m.pending = 0
			m.spinner.Stop()
		}
		m.refreshContent()

	case refreshedMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
		}
		m.refreshContent()

	case ReloadMsg:
		if msg.Err != nil {
			m.log.Warn("Watcher error: %v", msg.Err)
		}
		return m, m.reloadCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// CurrentPage returns the page being shown, or nil when there is none.
func (m Model) CurrentPage() *Page {
	if m.current < 0 || m.current >= len(m.pages) {
		return nil
	}
	p := m.pages[m.current]
	return &p
}

// Pages returns the navigable pages.
func (m Model) Pages() []Page {
	return m.pages
}

// Pending returns the number of mounts still in flight.
func (m Model) Pending() int {
	return m.pending
}

// setPages installs a fresh page list. The current page is kept when it
// still exists; the first list honors the start page. It returns a warning
// when the start page has no visualizations.
func (m *Model) setPages(pages []Page) string {
	first := !m.loaded
	want := m.startPage
	if !first {
		if p := m.CurrentPage(); p != nil {
			want = p.Name
		}
	}

	m.pages = pages
	m.loaded = true
	m.current = 0
	if want == "" {
		return ""
	}
	if i := indexOf(pages, want); i >= 0 {
		m.current = i
		return ""
	}
	if first {
		return "No visualizations on page " + want
	}
	return ""
}

// enterPage releases everything and mounts every directive of the current
// page into freshly opened slots.
func (m *Model) enterPage() tea.Cmd {
	m.gen++
	m.registry.Navigated()
	m.host.Reset()
	m.lastErr = ""
	m.pending = 0
	m.spinner.Stop()

	page := m.CurrentPage()
	if page == nil {
		m.refreshContent()
		return nil
	}

	var cmds []tea.Cmd
	for _, b := range page.Blocks {
		for i, args := range b.Directives {
			slot := SlotID(b.NodeID, i)
			m.host.Open(slot)
			cmds = append(cmds, mountCmd(m.registry, m.gen, b.NodeID, slot, args))
		}
	}
	m.pending = len(cmds)
	if m.pending > 0 {
		cmds = append(cmds, m.spinner.Start())
	}
	if m.ready {
		m.viewport.GotoTop()
	}
	m.refreshContent()
	return tea.Batch(cmds...)
}

// resize adapts the viewport and redraws charts at the new width.
func (m *Model) resize(width, height int) tea.Cmd {
	m.width = width
	m.height = height

	vpHeight := height - headerHeight - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.viewport.YPosition = headerHeight
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}

	m.host.SetWidth(width)
	m.refreshContent()
	if len(m.registry.Live()) == 0 {
		return nil
	}
	return m.themeCmd(m.registry.Theme())
}

func mountCmd(registry *viz.Registry, gen int, uuid, slot string, args []string) tea.Cmd {
	return func() tea.Msg {
		err := registry.Mount(context.Background(), uuid, slot, args)
		return mountedMsg{gen: gen, slot: slot, err: err}
	}
}

// themeCmd switches the theme and redraws every live visualization.
func (m Model) themeCmd(theme viz.Theme) tea.Cmd {
	registry := m.registry
	return func() tea.Msg {
		return refreshedMsg{err: registry.ThemeChanged(context.Background(), theme)}
	}
}

func (m Model) discoverCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		pages, err := Discover(context.Background(), store)
		return pagesMsg{pages: pages, err: err}
	}
}

// reloadCmd re-reads the store, when it supports it, then rediscovers pages.
func (m Model) reloadCmd() tea.Cmd {
	store := m.store
	log := m.log
	return func() tea.Msg {
		if r, ok := store.(Reloader); ok {
			if err := r.Reload(); err != nil {
				log.Warn("Failed to reload graph: %v", err)
				return pagesMsg{err: err}
			}
		}
		pages, err := Discover(context.Background(), store)
		return pagesMsg{pages: pages, err: err}
	}
}
