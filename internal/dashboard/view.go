package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/tally/internal/ui"
	"github.com/rileyhilliard/tally/internal/util"
)

// Base styles for the dashboard chrome. Visualizations bring their own.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(ui.ColorInfo).
			Bold(true)

	statsStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	headerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ui.ColorMuted)

	footerStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(ui.ColorError).
			Padding(0, 1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Padding(1, 2)
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.content())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the title bar with the current page and theme.
func (m Model) renderHeader() string {
	title := titleStyle.Render("tally dashboard")

	var stats string
	if page := m.CurrentPage(); page != nil {
		n := page.Slots()
		stats = fmt.Sprintf(" | %s (%d/%d) | %d %s | theme %s",
			page.Name, m.current+1, len(m.pages), n, util.Pluralize(n, "visualization", "visualizations"), m.registry.Theme().Name)
	} else if m.loaded {
		stats = " | no pages"
	}

	line := title + statsStyle.Render(stats)
	if s := m.spinner.View(); s != "" {
		line += "  " + s
	}
	return headerStyle.Render(line)
}

// renderFooter renders the key hints, or the last error when there is one.
func (m Model) renderFooter() string {
	if m.lastErr != "" {
		return errorStyle.Render(ui.SymbolFail + " " + m.lastErr)
	}
	hints := []string{
		"n/p page",
		"t theme",
		"r reload",
		"j/k scroll",
		"? help",
		"q quit",
	}
	return footerStyle.Render(strings.Join(hints, " | "))
}

// content joins the non-empty slots of the current page.
func (m Model) content() string {
	if !m.loaded {
		return emptyStyle.Render("Loading pages...")
	}
	if m.CurrentPage() == nil {
		return emptyStyle.Render("No pages with metric visualizations.\nAdd one with 'tally embed <page> <metric>'.")
	}

	var parts []string
	for _, slot := range m.host.Slots() {
		if c := m.host.Content(slot); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, "\n\n")
}

// refreshContent pushes the host's current slot contents into the viewport.
func (m *Model) refreshContent() {
	if m.ready {
		m.viewport.SetContent(m.content())
	}
}
