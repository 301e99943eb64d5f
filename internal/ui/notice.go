package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Notice prints a one-line status message with a colored symbol.
type Notice struct {
	out io.Writer
}

// NewNotice creates a notice printer writing to w.
func NewNotice(w io.Writer) *Notice {
	return &Notice{out: w}
}

// Success prints a green checkmark line.
func (n *Notice) Success(format string, args ...any) {
	n.print(SymbolSuccess, ColorSuccess, format, args...)
}

// Warn prints a yellow warning line.
func (n *Notice) Warn(format string, args ...any) {
	n.print(SymbolWarning, ColorWarning, format, args...)
}

// Error prints a red failure line.
func (n *Notice) Error(format string, args ...any) {
	n.print(SymbolFail, ColorError, format, args...)
}

// Info prints a muted line without a symbol.
func (n *Notice) Info(format string, args ...any) {
	fmt.Fprintln(n.out, lipgloss.NewStyle().Foreground(ColorMuted).Render(fmt.Sprintf(format, args...)))
}

func (n *Notice) print(symbol string, color lipgloss.Color, format string, args ...any) {
	fmt.Fprintf(n.out, "%s %s\n", lipgloss.NewStyle().Foreground(color).Render(symbol), fmt.Sprintf(format, args...))
}
