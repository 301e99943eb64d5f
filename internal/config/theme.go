package config

import (
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/tally/internal/viz"
)

// hasDarkBackground is swapped in tests.
var hasDarkBackground = termenv.HasDarkBackground

// ResolveTheme turns the configured theme name into a viz theme. "auto"
// asks the terminal for its background color.
func ResolveTheme(name string) viz.Theme {
	switch name {
	case ThemeDark:
		return viz.DarkTheme
	case ThemeLight:
		return viz.LightTheme
	default:
		if hasDarkBackground() {
			return viz.DarkTheme
		}
		return viz.LightTheme
	}
}
