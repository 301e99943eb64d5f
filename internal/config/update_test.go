package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetValue(t *testing.T) {
	tests := []struct {
		name         string
		initialYAML  string
		key          string
		value        string
		wantContains []string
		wantErr      bool
	}{
		{
			name: "replace existing key keeps comments",
			initialYAML: `# my settings
version: 1
chart_height: 8 # rows
`,
			key:          "chart_height",
			value:        "12",
			wantContains: []string{"# my settings", "chart_height: 12"},
		},
		{
			name:         "add missing key",
			initialYAML:  "version: 1\n",
			key:          "theme",
			value:        "light",
			wantContains: []string{"version: 1", "theme: light"},
		},
		{
			name:         "empty file",
			initialYAML:  "",
			key:          "date_format",
			value:        "2006-01-02",
			wantContains: []string{"date_format:", "2006-01-02"},
		},
		{
			name:        "unknown key",
			initialYAML: "version: 1\n",
			key:         "hosts",
			value:       "x",
			wantErr:     true,
		},
		{
			name:        "non numeric height",
			initialYAML: "version: 1\n",
			key:         "chart_height",
			value:       "tall",
			wantErr:     true,
		},
		{
			name:        "invalid result",
			initialYAML: "version: 1\n",
			key:         "journal_title",
			value:       "no placeholder",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.initialYAML), 0644))

			err := SetValue(path, tt.key, tt.value)
			data, readErr := os.ReadFile(path)
			require.NoError(t, readErr)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.initialYAML, string(data), "file must be left untouched")
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, string(data), want)
			}

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.NoError(t, Validate(cfg))
		})
	}
}

func TestSetValueSuggestsKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))

	err := SetValue(path, "chart_hieght", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Did you mean 'chart_height'?")
}

func TestSetValueMissingFile(t *testing.T) {
	err := SetValue(filepath.Join(t.TempDir(), "nope.yaml"), "theme", "dark")
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	cfg := DefaultConfig()
	cfg.ChartHeight = 10
	require.NoError(t, Write(path, cfg, false))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.ChartHeight)
	assert.Equal(t, cfg.DataPageName, loaded.DataPageName)

	err = Write(path, cfg, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	cfg.ChartHeight = 6
	require.NoError(t, Write(path, cfg, true))
	loaded, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, loaded.ChartHeight)
}
