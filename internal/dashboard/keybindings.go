package dashboard

import tea "github.com/charmbracelet/bubbletea"

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitAlt    = "ctrl+c"
	KeyNextPage   = "n"
	KeyNextAlt    = "right"
	KeyPrevPage   = "p"
	KeyPrevAlt    = "left"
	KeyTheme      = "t"
	KeyReload     = "r"
	KeyToggleHelp = "?"
	KeyClose      = "esc"
)

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise. Unhandled keys
// scroll the viewport.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && key == KeyClose {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		m.registry.ReleaseAll()
		return true, tea.Quit

	case KeyNextPage, KeyNextAlt:
		if m.current < len(m.pages)-1 {
			m.current++
			return true, m.enterPage()
		}
		return true, nil

	case KeyPrevPage, KeyPrevAlt:
		if m.current > 0 {
			m.current--
			return true, m.enterPage()
		}
		return true, nil

	case KeyTheme:
		return true, m.themeCmd(m.registry.Theme().Toggle())

	case KeyReload:
		return true, m.reloadCmd()
	}

	return false, nil
}
