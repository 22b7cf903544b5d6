package theme

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/marcozac/go-jsonc"
)

// Token names a UI color slot.
type Token string

const (
	Background     Token = "background"
	Text           Token = "text"
	TextMuted      Token = "textMuted"
	Primary        Token = "primary"
	Secondary      Token = "secondary"
	Accent         Token = "accent"
	Border         Token = "border"
	BorderActive   Token = "borderActive"
	Error          Token = "error"
	Warning        Token = "warning"
	Success        Token = "success"
	Info           Token = "info"
	DiffAdded      Token = "diffAdded"
	DiffRemoved    Token = "diffRemoved"
	DiffModified   Token = "diffModified"
	DiffAddedBg    Token = "diffAddedBg"
	DiffRemovedBg  Token = "diffRemovedBg"
	DiffModifiedBg Token = "diffModifiedBg"
	DiffContext    Token = "diffContext"
	DiffLineNumber Token = "diffLineNumber"
	DiffExtMarker  Token = "diffExtMarker"
)

// RequiredTokens lists every token a UI theme must define.
var RequiredTokens = []Token{
	Background, Text, TextMuted,
	Primary, Secondary, Accent,
	Border, BorderActive,
	Error, Warning, Success, Info,
	DiffAdded, DiffRemoved, DiffModified,
	DiffAddedBg, DiffRemovedBg, DiffModifiedBg,
	DiffContext, DiffLineNumber, DiffExtMarker,
}

// NoneColor leaves a slot unpainted so the terminal default shows through.
const NoneColor = "none"

// Palette is a UI theme resolved for one mode.
type Palette struct {
	Name     string
	Mode     Mode
	Variants []Mode
	colors   map[Token]string
}

// Get returns the raw value of a token: a hex color, an ANSI index or
// "none".
func (p *Palette) Get(t Token) string {
	return p.colors[t]
}

// Color returns the token as a lipgloss color.
func (p *Palette) Color(t Token) lipgloss.TerminalColor {
	v := p.colors[t]
	if v == "" || v == NoneColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(v)
}

// Colors returns a copy of every token value.
func (p *Palette) Colors() map[Token]string {
	return maps.Clone(p.colors)
}

// Supports reports whether the theme declares the given mode.
func (p *Palette) Supports(m Mode) bool {
	return slices.Contains(p.Variants, m)
}

type jsonTheme struct {
	Variants []string       `json:"variants,omitempty"`
	Defs     map[string]any `json:"defs,omitempty"`
	Theme    map[string]any `json:"theme"`
}

type colorRef struct {
	value    any
	resolved bool
}

// ParsePalette decodes a UI theme document (JSON with comments) and picks
// the side of every adaptive color matching mode. Values may reference
// entries of "defs" by name. Unknown tokens are ignored; missing required
// tokens are an error.
func ParsePalette(name string, data []byte, mode Mode) (*Palette, error) {
	var doc jsonTheme
	if err := jsonc.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal theme: %w", err)
	}
	if len(doc.Theme) == 0 {
		return nil, fmt.Errorf("theme has no colors")
	}

	variants, err := parseVariants(doc.Variants)
	if err != nil {
		return nil, err
	}

	resolver := &colorResolver{
		colors:  make(map[refKey]*colorRef, len(doc.Defs)+len(doc.Theme)),
		visited: make(map[refKey]bool),
	}
	for key, value := range doc.Defs {
		resolver.colors[refKey{name: key, def: true}] = &colorRef{value: value}
	}
	for key, value := range doc.Theme {
		resolver.colors[refKey{name: key}] = &colorRef{value: value}
	}

	mode = mode.OrDefault()
	p := &Palette{
		Name:     name,
		Mode:     mode,
		Variants: variants,
		colors:   make(map[Token]string, len(RequiredTokens)),
	}
	for _, token := range RequiredTokens {
		value, ok := doc.Theme[string(token)]
		if !ok {
			continue
		}
		resolved, err := resolver.resolveColor(refKey{name: string(token)}, value)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve color %s: %w", token, err)
		}
		c, err := pickSide(resolved, mode)
		if err != nil {
			return nil, fmt.Errorf("failed to parse color %s: %w", token, err)
		}
		p.colors[token] = c
	}

	var missing []string
	for _, token := range RequiredTokens {
		if _, ok := p.colors[token]; !ok {
			missing = append(missing, string(token))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required colors: %s", strings.Join(missing, ", "))
	}
	return p, nil
}

func parseVariants(raw []string) ([]Mode, error) {
	if len(raw) == 0 {
		return []Mode{ModeDark}, nil
	}
	variants := make([]Mode, 0, len(raw))
	for _, v := range raw {
		m, err := ParseMode(v)
		if err != nil || m == "" {
			return nil, fmt.Errorf("invalid variant %q", v)
		}
		if !slices.Contains(variants, m) {
			variants = append(variants, m)
		}
	}
	return variants, nil
}

// refKey names a def or a theme token. The two namespaces are separate.
type refKey struct {
	name string
	def  bool
}

// colorResolver resolves references by name. A reference names a def if
// one exists and a theme token otherwise, so "border": "border" refers to
// the def.
type colorResolver struct {
	colors  map[refKey]*colorRef
	visited map[refKey]bool
}

func (r *colorResolver) resolveColor(key refKey, value any) (any, error) {
	if r.visited[key] {
		return nil, fmt.Errorf("circular reference detected for color %s", key.name)
	}
	r.visited[key] = true
	defer func() { r.visited[key] = false }()

	switch v := value.(type) {
	case string, float64:
		return r.resolveColorValue(v)
	case map[string]any:
		resolved := make(map[string]any, 2)
		for _, side := range []string{"dark", "light"} {
			sv, ok := v[side]
			if !ok {
				continue
			}
			rv, err := r.resolveColorValue(sv)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve %s variant: %w", side, err)
			}
			resolved[side] = rv
		}
		return resolved, nil
	default:
		return nil, fmt.Errorf("invalid color value type: %T", value)
	}
}

func (r *colorResolver) resolveColorValue(value any) (any, error) {
	switch v := value.(type) {
	case string:
		if strings.HasPrefix(v, "#") || v == NoneColor {
			return v, nil
		}
		return r.resolveReference(v)
	case float64:
		return v, nil
	default:
		return nil, fmt.Errorf("invalid color value type: %T", value)
	}
}

func (r *colorResolver) resolveReference(ref string) (any, error) {
	key := refKey{name: ref, def: true}
	c, exists := r.colors[key]
	if !exists {
		key = refKey{name: ref}
		c, exists = r.colors[key]
	}
	if !exists {
		return nil, fmt.Errorf("color reference '%s' not found", ref)
	}
	if c.resolved {
		return c.value, nil
	}

	resolved, err := r.resolveColor(key, c.value)
	if err != nil {
		return nil, err
	}
	c.value = resolved
	c.resolved = true
	return resolved, nil
}

// pickSide flattens a resolved value to a single color for mode. An
// adaptive value without a light side uses its dark side.
func pickSide(value any, mode Mode) (string, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return formatColor(value)
	}
	dark, darkOk := obj["dark"]
	if !darkOk {
		return "", fmt.Errorf("color object must have a 'dark' key")
	}
	if light, ok := obj["light"]; ok && mode == ModeLight {
		return formatColor(light)
	}
	return formatColor(dark)
}

func formatColor(value any) (string, error) {
	switch v := value.(type) {
	case string:
		if v == NoneColor {
			return v, nil
		}
		if len(v) != 4 && len(v) != 7 {
			return "", fmt.Errorf("invalid hex color %q", v)
		}
		c, err := colorful.Hex(v)
		if err != nil {
			return "", fmt.Errorf("invalid hex color %q", v)
		}
		return c.Hex(), nil
	case float64:
		if v != float64(int(v)) || v < 0 || v > 255 {
			return "", fmt.Errorf("invalid ANSI color %v: expected an integer 0-255", v)
		}
		return strconv.Itoa(int(v)), nil
	case map[string]any:
		return "", fmt.Errorf("nested adaptive color")
	default:
		return "", fmt.Errorf("invalid resolved color type: %T", value)
	}
}
