package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerFrames is the animation used inside Bubble Tea programs.
var SpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10,
}

// SpinnerComponent is a Bubble Tea spinner with a label. The dashboard shows
// one while visualizations are loading.
type SpinnerComponent struct {
	spinner spinner.Model
	Label   string
	active  bool
}

// NewSpinnerComponent creates an idle spinner component.
func NewSpinnerComponent(label string) SpinnerComponent {
	sp := spinner.New()
	sp.Spinner = SpinnerFrames
	sp.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	return SpinnerComponent{spinner: sp, Label: label}
}

// Start activates the spinner and returns its first tick.
func (s *SpinnerComponent) Start() tea.Cmd {
	if s.active {
		return nil
	}
	s.active = true
	return s.spinner.Tick
}

// Stop hides the spinner. Pending ticks are ignored.
func (s *SpinnerComponent) Stop() {
	s.active = false
}

// Active reports whether the spinner is showing.
func (s SpinnerComponent) Active() bool {
	return s.active
}

// Update handles spinner animation messages.
func (s SpinnerComponent) Update(msg tea.Msg) (SpinnerComponent, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	if tickMsg, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(tickMsg)
		return s, cmd
	}
	return s, nil
}

// View renders the spinner, or nothing when idle.
func (s SpinnerComponent) View() string {
	if !s.active {
		return ""
	}
	return s.spinner.View() + " " + lipgloss.NewStyle().Foreground(ColorMuted).Render(s.Label+"...")
}
