package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{"OYO_UI_THEME_NAME", "OYO_UI_THEME_MODE", "OYO_UI_SYNTAX_MODE", "OYO_UI_SYNTAX_THEME", "OYO_DEBUG", "OYO_THEMES_DIR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return filepath.Join(dir, appName)
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "tokyonight", cfg.UI.Theme.Name)
	assert.Empty(t, cfg.UI.Theme.Mode)
	assert.Equal(t, "on", cfg.UI.Syntax.Mode)
	assert.Empty(t, cfg.UI.Syntax.Theme)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.File)

	themes, err := cfg.ResolveThemesDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "themes"), themes)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `
[ui.theme]
name = "catppuccin"
mode = "light"

[ui.syntax]
theme = "gruvbox"
`)

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "catppuccin", cfg.UI.Theme.Name)
	assert.Equal(t, "light", cfg.UI.Theme.Mode)
	assert.Equal(t, "on", cfg.UI.Syntax.Mode)
	assert.Equal(t, "gruvbox", cfg.UI.Syntax.Theme)
}

func TestLoadTrimsThemeSelections(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
[ui.theme]
name = " nord "
mode = "light "

[ui.syntax]
mode = " off"
theme = " dracula"
`)

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "nord", cfg.UI.Theme.Name)
	assert.Equal(t, "light", cfg.UI.Theme.Mode)
	assert.Equal(t, "off", cfg.UI.Syntax.Mode)
	assert.Equal(t, "dracula", cfg.UI.Syntax.Theme)

	t.Setenv("OYO_UI_SYNTAX_THEME", "\tgruvbox\n")
	cfg, err = Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "gruvbox", cfg.UI.Syntax.Theme)

	// a blank name is still rejected
	writeConfig(t, dir, "[ui.theme]\nname = \"   \"\n")
	_, err = Load(Options{})
	assert.ErrorContains(t, err, "ui.theme.name")
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
[ui.theme]
name = "nord"
mode = "dark"
`)
	t.Setenv("OYO_UI_THEME_NAME", "dracula")
	t.Setenv("OYO_UI_SYNTAX_MODE", "off")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "dracula", cfg.UI.Theme.Name)
	assert.Equal(t, "dark", cfg.UI.Theme.Mode)
	assert.Equal(t, "off", cfg.UI.Syntax.Mode)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("theme", "", "")
	flags.String("theme-mode", "", "")
	flags.String("syntax", "", "")
	flags.String("syntax-theme", "", "")
	require.NoError(t, flags.Parse([]string{"--theme", "gruvbox", "--theme-mode", "light"}))

	cfg, err = Load(Options{Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, "gruvbox", cfg.UI.Theme.Name)
	assert.Equal(t, "light", cfg.UI.Theme.Mode)
	// unset flags do not mask lower layers
	assert.Equal(t, "off", cfg.UI.Syntax.Mode)
}

func TestLoadDebugRaisesLogLevel(t *testing.T) {
	isolate(t)
	t.Setenv("OYO_DEBUG", "true")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "bad theme mode", body: "[ui.theme]\nmode = \"dusk\"\n", want: "ui.theme.mode"},
		{name: "bad syntax mode", body: "[ui.syntax]\nmode = \"maybe\"\n", want: "ui.syntax.mode"},
		{name: "empty theme name", body: "[ui.theme]\nname = \"\"\n", want: "ui.theme.name"},
		{name: "bad log format", body: "[log]\nformat = \"xml\"\n", want: "log.format"},
		{name: "broken toml", body: "[ui.theme\n", want: "failed to read config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			writeConfig(t, dir, tt.body)

			_, err := Load(Options{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	isolate(t)

	_, err := Load(Options{File: filepath.Join(t.TempDir(), "missing.toml")})
	assert.Error(t, err)
}

func TestSaveLoadsBack(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := Default()
	want.UI.Theme.Name = "solarized"
	want.UI.Theme.Mode = "light"
	want.UI.Syntax.Theme = "~/themes/Custom.tmTheme"
	require.NoError(t, Save(path, want))

	got, err := Load(Options{File: path})
	require.NoError(t, err)
	want.File = path
	assert.Equal(t, want, got)
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "oyo"), dir)

	file, err := DefaultFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "oyo", "config.toml"), file)

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/someone")
	dir, err = Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/someone", ".config", "oyo"), dir)
}

func TestValidateNil(t *testing.T) {
	t.Parallel()
	assert.Error(t, Validate(nil))
	assert.NoError(t, Validate(Default()))
}
