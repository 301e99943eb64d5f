package dashboard

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/tally/internal/logger"
	"github.com/rileyhilliard/tally/internal/metrics"
	"github.com/rileyhilliard/tally/internal/outline"
	"github.com/rileyhilliard/tally/internal/termchart"
	"github.com/rileyhilliard/tally/internal/viz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

type fixture struct {
	store    *reloadingStore
	registry *viz.Registry
	host     *viz.BufferHost
	log      *logger.BufferLogger
}

// reloadingStore counts Reload calls.
type reloadingStore struct {
	*outline.MemoryStore
	reloads int
}

func (s *reloadingStore) Reload() error {
	s.reloads++
	return nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := &reloadingStore{MemoryStore: outline.NewMemoryStore()}
	log := logger.NewBufferLogger()
	repo := metrics.NewRepository(store, store, metrics.WithLogger(log))

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, v := range []string{"180", "179", "181"} {
		require.NoError(t, repo.StoreMetric(ctx, "Weight", "", metrics.NewMetric(base.AddDate(0, 0, i), v)))
	}

	addPage(t, store, "Health", viz.FormatDirective("Weight", "", "count"), viz.FormatDirective("Weight", "", "line"))
	addPage(t, store, "Archive", viz.FormatDirective("Weight", "", "sum"))
	addPage(t, store, "Notes", "just text", "{{renderer :other, x}}")

	host := viz.NewBufferHost(60)
	registry := viz.NewRegistry(viz.Env{
		Source: repo,
		Charts: termchart.New(),
		Host:   host,
		Log:    log,
	})
	return &fixture{store: store, registry: registry, host: host, log: log}
}

func addPage(t *testing.T, store outline.Store, name string, contents ...string) {
	t.Helper()
	ctx := context.Background()
	_, err := store.CreatePage(ctx, name, outline.PageOptions{})
	require.NoError(t, err)
	for _, c := range contents {
		_, err := store.AppendToPage(ctx, name, c, nil)
		require.NoError(t, err)
	}
}

func (f *fixture) model(start string) Model {
	return NewModel(Options{
		Store:     f.store,
		Registry:  f.registry,
		Host:      f.host,
		StartPage: start,
		Log:       f.log,
	})
}

// drive feeds msg to the model and runs every resulting command
// synchronously until nothing is left. Spinner ticks are dropped.
func drive(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	queue := append([]tea.Msg(nil), msgs...)
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 1000, "message loop did not settle")
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		next, cmd := m.Update(msg)
		m = next.(Model)
		queue = append(queue, runCmd(cmd)...)
	}
	return m
}

func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func start(t *testing.T, m Model) Model {
	t.Helper()
	return drive(t, m, tea.WindowSizeMsg{Width: 80, Height: 40}, m.Init()())
}

func TestDiscover(t *testing.T) {
	f := newFixture(t)

	pages, err := Discover(context.Background(), f.store)
	require.NoError(t, err)

	require.Len(t, pages, 2, "pages without metrics directives are skipped")
	assert.Equal(t, "Archive", pages[0].Name)
	assert.Equal(t, "Health", pages[1].Name)
	assert.Equal(t, 2, pages[1].Slots())
	assert.Len(t, pages[1].Blocks, 2)
}

func TestDiscoverNestedAndMultiple(t *testing.T) {
	store := outline.NewMemoryStore()
	ctx := context.Background()
	addPage(t, store, "p", "parent")
	tree, err := store.PageTree(ctx, "p")
	require.NoError(t, err)
	content := viz.FormatDirective("a", "", "sum") + " and " + viz.FormatDirective("b", "", "bar")
	child, err := store.InsertNode(ctx, tree[0].ID, content, outline.InsertOptions{})
	require.NoError(t, err)

	pages, err := Discover(ctx, store)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Len(t, pages[0].Blocks, 1)
	assert.Equal(t, child.ID, pages[0].Blocks[0].NodeID)
	assert.Len(t, pages[0].Blocks[0].Directives, 2)
}

func TestSlotID(t *testing.T) {
	assert.Equal(t, "abc#0", SlotID("abc", 0))
	assert.Equal(t, "abc#12", SlotID("abc", 12))
}

func TestModel_EntersFirstPageAndMounts(t *testing.T) {
	f := newFixture(t)
	m := start(t, f.model(""))

	require.NotNil(t, m.CurrentPage())
	assert.Equal(t, "Archive", m.CurrentPage().Name)
	assert.Equal(t, 0, m.Pending())
	assert.Len(t, f.registry.Live(), 1)

	view := m.View()
	assert.Contains(t, view, "tally dashboard")
	assert.Contains(t, view, "Archive (1/2)")
	assert.Contains(t, view, "Total Weight")
	assert.Contains(t, view, "540")
}

func TestModel_StartPage(t *testing.T) {
	f := newFixture(t)
	m := start(t, f.model("health"))

	require.NotNil(t, m.CurrentPage())
	assert.Equal(t, "Health", m.CurrentPage().Name)
	assert.Len(t, f.registry.Live(), 2)

	view := m.View()
	assert.Contains(t, view, "Count Weight")
	assert.Contains(t, view, "Weight", "line chart title")
	for _, slot := range f.host.Slots() {
		assert.True(t, strings.Contains(slot, "#"), "slot %s", slot)
	}
}

func TestModel_UnknownStartPage(t *testing.T) {
	f := newFixture(t)
	m := start(t, f.model("nope"))

	assert.Equal(t, "Archive", m.CurrentPage().Name)
	assert.Contains(t, m.View(), "No visualizations on page nope")
}

func TestModel_Navigation(t *testing.T) {
	f := newFixture(t)
	m := start(t, f.model(""))
	archive := f.registry.Live()
	require.Len(t, archive, 1)

	m = drive(t, m, key("n"))
	assert.Equal(t, "Health", m.CurrentPage().Name)
	assert.Len(t, f.registry.Live(), 2, "previous page released")
	assert.Nil(t, f.registry.Get(archive[0].Spec().UUID, archive[0].Spec().Slot))

	m = drive(t, m, key("right"))
	assert.Equal(t, "Health", m.CurrentPage().Name, "last page stays put")

	m = drive(t, m, key("left"))
	assert.Equal(t, "Archive", m.CurrentPage().Name)

	m = drive(t, m, key("p"))
	assert.Equal(t, "Archive", m.CurrentPage().Name)
}

func TestModel_StaleMountsIgnored(t *testing.T) {
	f := newFixture(t)
	m := start(t, f.model(""))

	gen := m.gen
	next, _ := m.Update(mountedMsg{gen: gen - 1, slot: "old#0", err: fmt.Errorf("late")})
	m = next.(Model)
	assert.NotContains(t, m.View(), "late")
}

func TestModel_ThemeToggle(t *testing.T) {
	f := newFixture(t)
	m := start(t, f.model("Health"))
	assert.Equal(t, viz.DarkTheme.Name, f.registry.Theme().Name)

	m = drive(t, m, key("t"))
	assert.Equal(t, viz.LightTheme.Name, f.registry.Theme().Name)
	assert.Contains(t, m.View(), "theme light")
	assert.Len(t, f.registry.Live(), 2, "theme change redraws in place")

	drive(t, m, key("t"))
	assert.Equal(t, viz.DarkTheme.Name, f.registry.Theme().Name)
}

func TestModel_ReloadKeepsPage(t *testing.T) {
	f := newFixture(t)
	m := start(t, f.model("Health"))

	addPage(t, f.store, "Zed", viz.FormatDirective("Weight", "", "latest"))

	m = drive(t, m, key("r"))
	assert.Equal(t, 1, f.store.reloads)
	assert.Len(t, m.Pages(), 3)
	assert.Equal(t, "Health", m.CurrentPage().Name)

	m = drive(t, m, ReloadMsg{})
	assert.Equal(t, 2, f.store.reloads)
}

func TestModel_ReloadAfterPageRemoved(t *testing.T) {
	f := newFixture(t)
	m := start(t, f.model("Archive"))

	// Replace the store contents: only Health keeps directives.
	f.store.MemoryStore = outline.NewMemoryStore()
	addPage(t, f.store, "Health", viz.FormatDirective("Weight", "", "count"))

	m = drive(t, m, ReloadMsg{})
	require.NotNil(t, m.CurrentPage())
	assert.Equal(t, "Health", m.CurrentPage().Name)
}

func TestModel_NoPages(t *testing.T) {
	store := outline.NewMemoryStore()
	host := viz.NewBufferHost(60)
	registry := viz.NewRegistry(viz.Env{Source: metrics.NewRepository(store, store), Charts: termchart.New(), Host: host})
	m := NewModel(Options{Store: store, Registry: registry, Host: host})

	m = start(t, m)
	assert.Nil(t, m.CurrentPage())
	assert.Contains(t, m.View(), "No pages with metric visualizations")

	m = drive(t, m, key("n"))
	assert.Nil(t, m.CurrentPage())
}

func TestModel_Help(t *testing.T) {
	f := newFixture(t)
	m := start(t, f.model(""))

	m = drive(t, m, key("?"))
	assert.Contains(t, m.View(), "Keyboard Shortcuts")
	assert.Contains(t, m.View(), "Toggle dark/light theme")

	m = drive(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, m.View(), "Keyboard Shortcuts")
}

func TestModel_Quit(t *testing.T) {
	f := newFixture(t)
	m := start(t, f.model("Health"))
	require.NotEmpty(t, f.registry.Live())

	handled, cmd := m.HandleKeyMsg(key("q"))
	assert.True(t, handled)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, f.registry.Live())
	assert.Empty(t, m.View())
}

func TestModel_ResizeRedraws(t *testing.T) {
	f := newFixture(t)
	m := start(t, f.model("Health"))

	m = drive(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})
	assert.Equal(t, 120, m.viewport.Width)
	assert.Equal(t, 50-headerHeight-footerHeight, m.viewport.Height)
	for _, slot := range f.host.Slots() {
		for _, line := range strings.Split(f.host.Content(slot), "\n") {
			assert.LessOrEqual(t, lipgloss.Width(line), 120)
		}
	}
}
