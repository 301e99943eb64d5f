package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/tally/internal/ui"
)

// HelpBinding is one line of the help overlay.
type HelpBinding struct {
	Key  string
	Desc string
}

// helpSection groups bindings under a heading.
type helpSection struct {
	Title    string
	Bindings []HelpBinding
}

var helpSections = []helpSection{
	{"Pages", []HelpBinding{
		{Key: "n / Right", Desc: "Next page"},
		{Key: "p / Left", Desc: "Previous page"},
		{Key: "r", Desc: "Reload graph and redraw"},
	}},
	{"View", []HelpBinding{
		{Key: "t", Desc: "Toggle dark/light theme"},
		{Key: "j / k", Desc: "Scroll down / up"},
		{Key: "PgDn / PgUp", Desc: "Scroll a page"},
	}},
	{"General", []HelpBinding{
		{Key: "?", Desc: "Toggle this help"},
		{Key: "q / Ctrl+C", Desc: "Quit"},
	}},
}

var (
	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorInfo).
			Padding(1, 2)

	helpTitleStyle = lipgloss.NewStyle().
			Foreground(ui.ColorInfo).
			Bold(true)

	helpSectionStyle = lipgloss.NewStyle().
				Foreground(ui.ColorMuted).
				Underline(true)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary).
			Bold(true).
			Width(14)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)
)

// renderHelpOverlay draws the shortcut list, centered when the window size
// is known.
func (m Model) renderHelpOverlay() string {
	lines := []string{helpTitleStyle.Render("Keyboard Shortcuts")}
	for _, section := range helpSections {
		lines = append(lines, "", helpSectionStyle.Render(section.Title))
		for _, b := range section.Bindings {
			lines = append(lines, helpKeyStyle.Render(b.Key)+helpDescStyle.Render(b.Desc))
		}
	}
	lines = append(lines, "", helpDescStyle.Render("Press ? or Esc to close"))

	box := helpBoxStyle.Render(strings.Join(lines, "\n"))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "))
}
