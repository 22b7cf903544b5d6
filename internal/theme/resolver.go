package theme

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahkohd/oyo/internal/tmtheme"
)

// UIConfig selects the UI palette.
type UIConfig struct {
	Name string
	Mode Mode
}

// SyntaxConfig selects the syntax theme. An empty Theme lets the resolver
// derive one from the UI theme.
type SyntaxConfig struct {
	Mode  SyntaxMode
	Theme string
}

// Step records which link of the fallback chain produced a syntax theme.
type Step string

const (
	StepExplicit  Step = "explicit"
	StepVariant   Step = "variant"
	StepInherited Step = "inherited"
	StepFallback  Step = "fallback"
)

// SyntaxTheme is a resolved, background-stripped syntax theme. Document is
// freshly parsed for every resolution and owned by the caller.
type SyntaxTheme struct {
	ID       Identifier
	Step     Step
	Document *tmtheme.Document
}

// UIResolver turns a UIConfig into a palette. It has no fallback: an
// unknown or broken theme is an error.
type UIResolver struct {
	catalog *Catalog
}

func NewUIResolver(catalog *Catalog) *UIResolver {
	return &UIResolver{catalog: catalog}
}

// Resolve returns the effective mode and the palette for it.
func (r *UIResolver) Resolve(cfg UIConfig) (Mode, *Palette, error) {
	mode := cfg.Mode.OrDefault()

	data, err := r.catalog.LookupUI(cfg.Name)
	if errors.Is(err, ErrNotFound) {
		return "", nil, &UnknownUIThemeError{Name: cfg.Name, Suggestions: r.suggestions(cfg.Name)}
	}
	if err != nil {
		return "", nil, &MalformedUIThemeError{Name: cfg.Name, Err: err}
	}

	palette, err := ParsePalette(cfg.Name, data, mode)
	if err != nil {
		return "", nil, &MalformedUIThemeError{Name: cfg.Name, Err: err}
	}
	return mode, palette, nil
}

func (r *UIResolver) suggestions(name string) []string {
	entries, err := r.catalog.ListUI()
	if err != nil {
		return nil
	}
	known := make([]string, 0, len(entries))
	for _, e := range entries {
		known = append(known, e.Name)
	}
	return suggest(name, known)
}

var errNoLightVariant = errors.New("no light variant")

type attempt struct {
	step Step
	load func() (*SyntaxTheme, error)
}

// SyntaxResolver picks a syntax theme through an ordered chain of
// attempts: explicit theme, light variant of the UI theme, the UI theme's
// own syntax theme, and finally the built-in ansi theme. Failures are
// logged and never returned.
type SyntaxResolver struct {
	catalog *Catalog
	logger  *slog.Logger
}

func NewSyntaxResolver(catalog *Catalog, logger *slog.Logger) *SyntaxResolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SyntaxResolver{catalog: catalog, logger: logger}
}

// Resolve returns nil only when syntax highlighting is off.
func (r *SyntaxResolver) Resolve(cfg SyntaxConfig, uiName string, mode Mode) *SyntaxTheme {
	if cfg.Mode == SyntaxOff {
		return nil
	}

	for _, a := range r.chain(cfg, uiName, mode) {
		theme, err := a.load()
		if err == nil {
			return theme
		}
		if errors.Is(err, errNoLightVariant) {
			r.logger.Debug("No light syntax variant", "theme", uiName)
			continue
		}
		r.logger.Warn("Syntax theme unavailable, falling back", "step", a.step, "error", err)
	}

	theme, err := r.load(StepFallback, FallbackSyntaxTheme)
	if err != nil {
		panic(fmt.Sprintf("built-in %q syntax theme unavailable: %v", FallbackSyntaxTheme, err))
	}
	return theme
}

func (r *SyntaxResolver) chain(cfg SyntaxConfig, uiName string, mode Mode) []attempt {
	// An explicit theme is authoritative: no variant or inheritance.
	if cfg.Theme != "" {
		return []attempt{{StepExplicit, func() (*SyntaxTheme, error) {
			return r.load(StepExplicit, cfg.Theme)
		}}}
	}

	var chain []attempt
	if mode.OrDefault() == ModeLight {
		chain = append(chain, attempt{StepVariant, func() (*SyntaxTheme, error) {
			variant, ok := LightVariantOf(uiName)
			if !ok {
				return nil, errNoLightVariant
			}
			return r.load(StepVariant, variant)
		}})
	}
	return append(chain, attempt{StepInherited, func() (*SyntaxTheme, error) {
		return r.load(StepInherited, uiName)
	}})
}

func (r *SyntaxResolver) load(step Step, raw string) (*SyntaxTheme, error) {
	id := ParseIdentifier(raw)
	data, err := r.catalog.LookupSyntax(id)
	if err != nil {
		return nil, err
	}
	doc, err := tmtheme.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("syntax theme %q: %w", raw, err)
	}
	return &SyntaxTheme{
		ID:       id,
		Step:     step,
		Document: tmtheme.StripBackground(doc),
	}, nil
}
