package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/tally/internal/errors"
	"github.com/rileyhilliard/tally/internal/viz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, DefaultGraphPath, cfg.Graph)
	assert.Equal(t, "metrics-data", cfg.DataPageName)
	assert.Equal(t, "${metric}", cfg.JournalTitle)
	assert.Equal(t, 8, cfg.ChartHeight)
	assert.Equal(t, "Jan 2, 2006", cfg.DateFormat)
	assert.Equal(t, ThemeAuto, cfg.Theme)
	assert.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)

	content := `
version: 1
graph: data/graph.yaml
data_page_name: tracking
journal_title: "#metric ${metric}"
chart_height: 12
date_format: "2006-01-02"
theme: Light
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, filepath.Join(dir, "data", "graph.yaml"), cfg.Graph)
	assert.Equal(t, "tracking", cfg.DataPageName)
	assert.Equal(t, "#metric ${metric}", cfg.JournalTitle)
	assert.Equal(t, 12, cfg.ChartHeight)
	assert.Equal(t, "2006-01-02", cfg.DateFormat)
	assert.Equal(t, ThemeLight, cfg.Theme)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("chart_height: 5\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.ChartHeight)
	assert.Equal(t, "metrics-data", cfg.DataPageName)
	assert.Equal(t, "Jan 2, 2006", cfg.DateFormat)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("chart_height: 5\n"), 0644))

	t.Setenv("TALLY_CHART_HEIGHT", "14")
	t.Setenv("TALLY_DATA_PAGE_NAME", "from-env")

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 14, cfg.ChartHeight)
	assert.Equal(t, "from-env", cfg.DataPageName)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/.tally.yaml")
	assert.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("chart_height: [unclosed\n"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) (string, func())
		explicit string
		wantErr  bool
		wantPath string
	}{
		{
			name: "explicit path exists",
			setup: func(t *testing.T) (string, func()) {
				dir := t.TempDir()
				path := filepath.Join(dir, "custom.yaml")
				require.NoError(t, os.WriteFile(path, []byte("version: 1"), 0644))
				return path, func() {}
			},
		},
		{
			name: "explicit path not found",
			setup: func(t *testing.T) (string, func()) {
				return "/nonexistent/config.yaml", func() {}
			},
			wantErr: true,
		},
		{
			name: "current directory has config",
			setup: func(t *testing.T) (string, func()) {
				dir := t.TempDir()
				path := filepath.Join(dir, ConfigFileName)
				require.NoError(t, os.WriteFile(path, []byte("version: 1"), 0644))

				oldWd, _ := os.Getwd()
				require.NoError(t, os.Chdir(dir))

				return "", func() { os.Chdir(oldWd) }
			},
		},
		{
			name: "parent directory has config",
			setup: func(t *testing.T) (string, func()) {
				dir := t.TempDir()
				require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 1"), 0644))
				sub := filepath.Join(dir, "a", "b")
				require.NoError(t, os.MkdirAll(sub, 0o755))

				oldWd, _ := os.Getwd()
				require.NoError(t, os.Chdir(sub))

				return "", func() { os.Chdir(oldWd) }
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explicit, cleanup := tt.setup(t)
			defer cleanup()

			path, err := Find(explicit)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if explicit != "" {
				assert.Equal(t, explicit, path)
			} else {
				assert.NotEmpty(t, path)
				assert.Equal(t, ConfigFileName, filepath.Base(path))
			}
		})
	}
}

func TestFindStopsAtGitRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 1"), 0644))
	repo := filepath.Join(dir, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	sub := filepath.Join(repo, "pkg")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	t.Setenv("HOME", t.TempDir())
	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(sub))
	defer os.Chdir(oldWd)

	path, err := Find("")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoadOrDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := t.TempDir()
	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(oldWd)

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, filepath.Join(home, ".local", "share", "tally", "graph.yaml"), cfg.Graph)
}

func TestLoadOrDefaultGlobal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	globalDir := filepath.Join(home, GlobalConfigDir)
	require.NoError(t, os.MkdirAll(globalDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, GlobalConfigFile), []byte("graph: g.yaml\n"), 0644))

	dir := t.TempDir()
	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(oldWd)

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(globalDir, GlobalConfigFile), path)
	assert.Equal(t, filepath.Join(globalDir, "g.yaml"), cfg.Graph)
}

func TestExpand(t *testing.T) {
	t.Setenv("USER", "tester")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"plain", "plain"},
		{"${USER}/x", "tester/x"},
		{"${HOME}/graph.yaml", home + "/graph.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(tt.input))
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		base string
		want string
	}{
		{"tilde", "~/g.yaml", "/base", filepath.Join(home, "g.yaml")},
		{"bare tilde", "~", "/base", home},
		{"absolute", "/data/g.yaml", "/base", "/data/g.yaml"},
		{"relative", "g.yaml", "/base", "/base/g.yaml"},
		{"relative no base", "g.yaml", "", "g.yaml"},
		{"empty", "", "/base", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path, tt.base))
		})
	}
}

func TestResolveTheme(t *testing.T) {
	orig := hasDarkBackground
	defer func() { hasDarkBackground = orig }()

	assert.Equal(t, viz.DarkTheme, ResolveTheme(ThemeDark))
	assert.Equal(t, viz.LightTheme, ResolveTheme(ThemeLight))

	hasDarkBackground = func() bool { return false }
	assert.Equal(t, viz.LightTheme, ResolveTheme(ThemeAuto))

	hasDarkBackground = func() bool { return true }
	assert.Equal(t, viz.DarkTheme, ResolveTheme(ThemeAuto))
	assert.Equal(t, viz.DarkTheme, ResolveTheme(""))
}
