// Package theme resolves the configured UI and syntax themes into a
// palette and a syntax highlighting theme.
//
// UI themes are JSON documents (comments allowed) mapping UI tokens to
// colors, optionally through named "defs" and {"dark", "light"} pairs.
// Syntax themes are TextMate .tmTheme files. Both come from an embedded
// set of built-ins or from the user's themes directory.
package theme

import (
	"log/slog"
	"os"
)

// Resolution is the outcome of resolving both themes. Syntax is nil when
// highlighting is off.
type Resolution struct {
	Mode   Mode
	UI     *Palette
	Syntax *SyntaxTheme
}

// UIThemeInfo describes a listed UI theme.
type UIThemeInfo struct {
	Name   string
	Source Source
	Dark   bool
	Light  bool
}

// Engine is the entry point for theme resolution and listings.
type Engine struct {
	catalog *Catalog
	ui      *UIResolver
	syntax  *SyntaxResolver
	logger  *slog.Logger
}

type Option func(*Engine)

// WithLogger sets the logger used to report absorbed syntax failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New returns an engine reading user themes from themesDir.
func New(themesDir string, opts ...Option) *Engine {
	e := &Engine{
		catalog: NewCatalog(themesDir),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.ui = NewUIResolver(e.catalog)
	e.syntax = NewSyntaxResolver(e.catalog, e.logger)
	return e
}

// Catalog exposes the underlying catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Resolve resolves the UI theme, then the syntax theme in the UI theme's
// mode. Only UI errors are returned.
func (e *Engine) Resolve(ui UIConfig, syntax SyntaxConfig) (*Resolution, error) {
	mode, palette, err := e.ui.Resolve(ui)
	if err != nil {
		return nil, err
	}
	return &Resolution{
		Mode:   mode,
		UI:     palette,
		Syntax: e.syntax.Resolve(syntax, ui.Name, mode),
	}, nil
}

// UIThemes lists UI themes with the modes each declares. Broken user
// themes are logged and left out.
func (e *Engine) UIThemes() ([]UIThemeInfo, error) {
	entries, err := e.catalog.ListUI()
	if err != nil {
		return nil, err
	}

	set, err := builtins()
	if err != nil {
		return nil, err
	}

	infos := make([]UIThemeInfo, 0, len(entries))
	for _, entry := range entries {
		data := set.ui[entry.Name]
		if entry.Source == SourceUser {
			data, err = os.ReadFile(entry.Path)
			if err != nil {
				e.logger.Warn("Failed to read theme", "path", entry.Path, "error", err)
				continue
			}
		}
		palette, err := ParsePalette(entry.Name, data, ModeDark)
		if err != nil {
			e.logger.Warn("Skipping malformed theme", "name", entry.Name, "source", entry.Source, "error", err)
			continue
		}
		infos = append(infos, UIThemeInfo{
			Name:   entry.Name,
			Source: entry.Source,
			Dark:   palette.Supports(ModeDark),
			Light:  palette.Supports(ModeLight),
		})
	}
	return infos, nil
}

// SyntaxThemes lists syntax themes tagged with their source.
func (e *Engine) SyntaxThemes() ([]Entry, error) {
	return e.catalog.ListSyntax()
}
