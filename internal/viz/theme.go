package viz

import "github.com/charmbracelet/lipgloss"

// Palette colors datasets by index.
var Palette = []lipgloss.Color{
	"#0f9bd7",
	"#30b5a6",
	"#e6c700",
	"#e66f00",
	"#e2036b",
	"#8639ac",
	"#727274",
}

// PaletteColor returns the color for the i-th dataset.
func PaletteColor(i int) lipgloss.Color {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// Theme holds the non-data colors of cards and charts.
type Theme struct {
	Name    string
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Surface lipgloss.Color
}

var (
	DarkTheme = Theme{
		Name:    "dark",
		Text:    "#e6e6e6",
		Muted:   "#8a8a9a",
		Border:  "#3a3a4a",
		Surface: "#1c1c24",
	}
	LightTheme = Theme{
		Name:    "light",
		Text:    "#1f1f24",
		Muted:   "#6a6a7a",
		Border:  "#c8c8d2",
		Surface: "#f2f2f5",
	}
)

// ThemeByName returns the named theme. Unknown names get the dark theme.
func ThemeByName(name string) Theme {
	if name == LightTheme.Name {
		return LightTheme
	}
	return DarkTheme
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Name == LightTheme.Name {
		return DarkTheme
	}
	return LightTheme
}
