package config

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Theme names accepted in the config.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config represents the complete .tally.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version" json:"version"`

	// Graph is the outline file metrics are stored in. Relative paths are
	// resolved against the config file's directory. Supports ~ and ${HOME}.
	Graph string `yaml:"graph" mapstructure:"graph" json:"graph"`

	// DataPageName is the page every metric lives under.
	DataPageName string `yaml:"data_page_name" mapstructure:"data_page_name" json:"data_page_name"`

	// JournalTitle is the text of journal entries. ${metric} is replaced
	// with the metric name.
	JournalTitle string `yaml:"journal_title" mapstructure:"journal_title" json:"journal_title"`

	// ChartHeight is the plot height in terminal rows.
	ChartHeight int `yaml:"chart_height" mapstructure:"chart_height" json:"chart_height"`

	// DateFormat is a Go time layout. It names journal pages and labels chart dates.
	DateFormat string `yaml:"date_format" mapstructure:"date_format" json:"date_format"`

	// Theme is "auto", "dark" or "light". Auto follows the terminal background.
	Theme string `yaml:"theme" mapstructure:"theme" json:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:      CurrentConfigVersion,
		Graph:        DefaultGraphPath,
		DataPageName: "metrics-data",
		JournalTitle: "${metric}",
		ChartHeight:  8,
		DateFormat:   "Jan 2, 2006",
		Theme:        ThemeAuto,
	}
}
