package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahkohd/oyo/internal/theme"
)

// isolate points the config directory at a fresh temp dir and returns it.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{"OYO_UI_THEME_NAME", "OYO_UI_THEME_MODE", "OYO_UI_SYNTAX_MODE", "OYO_UI_SYNTAX_THEME", "OYO_DEBUG", "OYO_THEMES_DIR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return filepath.Join(dir, "oyo")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func resolveJSON(t *testing.T, args ...string) resolveReport {
	t.Helper()
	out, err := execute(t, append([]string{"resolve", "-o", "json"}, args...)...)
	require.NoError(t, err)
	var report resolveReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	return report
}

func TestResolveScenarios(t *testing.T) {
	isolate(t)

	tests := []struct {
		name   string
		args   []string
		mode   string
		theme  string
		family string
		kind   string
		step   string
	}{
		{
			name:   "light variant of the UI theme",
			args:   []string{"--theme", "tokyonight", "--theme-mode", "light"},
			mode:   "light",
			theme:  "tokyonight-day",
			family: "tokyonight",
			kind:   "builtin-variant",
			step:   "variant",
		},
		{
			name:   "missing explicit theme falls back to ansi",
			args:   []string{"--theme", "nord", "--syntax-theme", "MissingTheme.tmTheme"},
			mode:   "dark",
			theme:  "ansi",
			family: "ansi",
			kind:   "builtin",
			step:   "fallback",
		},
		{
			name:   "catppuccin light",
			args:   []string{"--theme", "catppuccin", "--theme-mode", "light"},
			mode:   "light",
			theme:  "catppuccin-latte",
			family: "catppuccin",
			kind:   "builtin-variant",
			step:   "variant",
		},
		{
			name:   "default theme",
			mode:   "dark",
			theme:  "tokyonight",
			family: "tokyonight",
			kind:   "builtin",
			step:   "inherited",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := resolveJSON(t, tt.args...)
			assert.Equal(t, tt.mode, report.Mode)
			require.NotNil(t, report.Syntax)
			assert.Equal(t, tt.theme, report.Syntax.Theme)
			assert.Equal(t, tt.family, report.Syntax.Family)
			assert.Equal(t, tt.kind, report.Syntax.Kind)
			assert.Equal(t, tt.step, report.Syntax.Step)
			assert.Len(t, report.Palette, len(theme.RequiredTokens))
		})
	}
}

func TestResolveReportsAbsorbedFailures(t *testing.T) {
	isolate(t)

	report := resolveJSON(t, "--theme", "nord", "--syntax-theme", "MissingTheme.tmTheme")
	require.NotEmpty(t, report.Events)
	assert.Equal(t, "warn", report.Events[0].Level)
	assert.Equal(t, "explicit", report.Events[0].Attributes["step"])
}

func TestResolveSyntaxOff(t *testing.T) {
	isolate(t)

	report := resolveJSON(t, "--syntax", "off")
	assert.Nil(t, report.Syntax)

	out, err := execute(t, "resolve", "--syntax", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "syntax: off")
	assert.Contains(t, out, "theme:  tokyonight (dark)")
}

func TestResolveTOML(t *testing.T) {
	isolate(t)

	out, err := execute(t, "resolve", "-o", "toml", "--theme", "gruvbox", "--theme-mode", "light")
	require.NoError(t, err)
	assert.Contains(t, out, `mode = "light"`)
	assert.Contains(t, out, `theme = "gruvbox-light"`)
}

func TestResolveUnknownTheme(t *testing.T) {
	isolate(t)

	_, err := execute(t, "resolve", "--theme", "tokynight")
	var unknown *theme.UnknownUIThemeError
	require.True(t, errors.As(err, &unknown))
	assert.Contains(t, unknown.Suggestions, "tokyonight")
}

func TestResolveUsesConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[ui.theme]
name = "solarized"
mode = "light"
`), 0o644))

	report := resolveJSON(t)
	assert.Equal(t, "solarized", report.Theme)
	assert.Equal(t, "solarized-light", report.Syntax.Theme)

	// flags win over the file
	report = resolveJSON(t, "--theme-mode", "dark")
	assert.Equal(t, "solarized", report.Syntax.Theme)
}

func TestInvalidFlagValues(t *testing.T) {
	isolate(t)

	_, err := execute(t, "resolve", "--theme-mode", "dusk")
	assert.Error(t, err)
	_, err = execute(t, "resolve", "-o", "yaml")
	assert.Error(t, err)
	_, err = execute(t, "preview", "--color", "sometimes")
	assert.Error(t, err)
}

func TestThemes(t *testing.T) {
	dir := isolate(t)
	zen := `{"theme": {` +
		`"background": "#000000", "text": "#ffffff", "textMuted": "#888888",` +
		`"primary": "#0000ff", "secondary": "#00ff00", "accent": "#ff00ff",` +
		`"border": "#333333", "borderActive": "#666666",` +
		`"error": "#ff0000", "warning": "#ffff00", "success": "#00ff00", "info": "#00ffff",` +
		`"diffAdded": "#00ff00", "diffRemoved": "#ff0000", "diffModified": "#ffff00",` +
		`"diffAddedBg": "none", "diffRemovedBg": "none", "diffModifiedBg": "none",` +
		`"diffContext": "#888888", "diffLineNumber": "#444444", "diffExtMarker": "#444444"}}`
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "themes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "themes", "zen.json"), []byte(zen), 0o644))

	out, err := execute(t, "themes", "-o", "json")
	require.NoError(t, err)
	var list uiThemeList
	require.NoError(t, json.Unmarshal([]byte(out), &list))

	byName := map[string]uiThemeRow{}
	for _, row := range list.Themes {
		byName[row.Name] = row
	}
	assert.Equal(t, uiThemeRow{Name: "tokyonight", Source: "embedded", Dark: true, Light: true}, byName["tokyonight"])
	assert.Equal(t, uiThemeRow{Name: "nord", Source: "embedded", Dark: true}, byName["nord"])
	assert.Equal(t, uiThemeRow{Name: "zen", Source: "user", Dark: true}, byName["zen"])
	assert.True(t, byName["catppuccin"].Light)

	out, err = execute(t, "themes")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "tokyonight")
	assert.Contains(t, out, "zen")

	// the user theme resolves by name
	report := resolveJSON(t, "--theme", "zen")
	assert.Equal(t, "#000000", report.Palette["background"])
}

func TestSyntaxThemes(t *testing.T) {
	isolate(t)

	out, err := execute(t, "syntax-themes", "-o", "json")
	require.NoError(t, err)
	var list syntaxThemeList
	require.NoError(t, json.Unmarshal([]byte(out), &list))

	names := make([]string, 0, len(list.Themes))
	for _, row := range list.Themes {
		assert.Equal(t, "embedded", row.Source)
		names = append(names, row.Name)
	}
	assert.Contains(t, names, "ansi")
	assert.Contains(t, names, "tokyonight-day")
	assert.Contains(t, names, "catppuccin-latte")
}

func TestPreview(t *testing.T) {
	isolate(t)

	out, err := execute(t, "preview", "--color", "never", "--theme", "nord")
	require.NoError(t, err)
	assert.Contains(t, out, "sample.go\n")
	assert.Contains(t, out, "@@ ")
	assert.Contains(t, out, "greet")
	assert.NotContains(t, out, "\x1b[")

	out, err = execute(t, "preview", "--color", "always", "--theme", "tokyonight")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
}

func TestPreviewFiles(t *testing.T) {
	isolate(t)
	tmp := t.TempDir()
	oldFile := filepath.Join(tmp, "old.txt")
	newFile := filepath.Join(tmp, "new.txt")
	require.NoError(t, os.WriteFile(oldFile, []byte("one\ntwo\n"), 0o644))
	require.NoError(t, os.WriteFile(newFile, []byte("one\nthree\n"), 0o644))

	out, err := execute(t, "preview", "--color", "never", oldFile, newFile)
	require.NoError(t, err)
	assert.Contains(t, out, "new.txt\n")
	assert.Contains(t, out, "   1    1 │   one\n")
	assert.Contains(t, out, "   2      │ - two\n")
	assert.Contains(t, out, "        2 │ ~ three\n")

	out, err = execute(t, "preview", oldFile, oldFile)
	require.NoError(t, err)
	assert.Equal(t, "no differences\n", out)

	_, err = execute(t, "preview", oldFile)
	assert.Error(t, err)
	_, err = execute(t, "preview", oldFile, filepath.Join(tmp, "missing.txt"))
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")

	out, err := execute(t, "config", "init", "--theme", "nord", "--syntax-theme", "gruvbox")
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+path+"\n", out)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	out, err = execute(t, "config", "show", "-o", "json")
	require.NoError(t, err)
	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	ui := cfg["ui"].(map[string]any)
	assert.Equal(t, "nord", ui["theme"].(map[string]any)["name"])
	assert.Equal(t, "gruvbox", ui["syntax"].(map[string]any)["theme"])

	report := resolveJSON(t)
	assert.Equal(t, "nord", report.Theme)
	assert.Equal(t, "gruvbox", report.Syntax.Theme)
	assert.Equal(t, "explicit", report.Syntax.Step)

	_, err = execute(t, "config", "init", "--force", "--theme-mode", "dusk")
	assert.Error(t, err)
	_, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.Equal(t, "tokyonight", resolveJSON(t).Theme)
}

func TestBrokenConfigIsReported(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[ui.syntax]\nmode = \"maybe\"\n"), 0o644))

	_, err := execute(t, "resolve")
	assert.ErrorContains(t, err, "ui.syntax.mode")

	// init can still replace it
	_, err = execute(t, "config", "init", "--force")
	assert.NoError(t, err)
}
