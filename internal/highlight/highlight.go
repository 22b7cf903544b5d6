package highlight

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"

	"github.com/ahkohd/oyo/internal/tmtheme"
)

// FormatterName picks the chroma terminal formatter for a color profile.
func FormatterName(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return "noop"
	}
}

// Highlighter colors single source lines. A Highlighter built from a nil
// document returns lines unchanged. It is not safe for concurrent use.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
	withBg    map[string]*chroma.Style
}

// New builds a highlighter for doc on a terminal with the given profile.
func New(doc *tmtheme.Document, profile termenv.Profile) (*Highlighter, error) {
	h := &Highlighter{withBg: make(map[string]*chroma.Style)}
	if doc == nil {
		return h, nil
	}
	style, err := Style(doc)
	if err != nil {
		return nil, err
	}
	h.style = style

	h.formatter = formatters.Get(FormatterName(profile))
	return h, nil
}

// Enabled reports whether lines will be colored.
func (h *Highlighter) Enabled() bool {
	return h.style != nil
}

// Line highlights one line of filename. bg, when a hex color, is painted
// behind every token; otherwise the terminal background shows through.
func (h *Highlighter) Line(filename, line, bg string) string {
	if h.style == nil || line == "" {
		return line
	}

	l := lexers.Match(filename)
	if l == nil {
		l = lexers.Analyse(line)
	}
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)

	it, err := l.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.styleFor(bg), it); err != nil {
		return line
	}
	return strings.ReplaceAll(buf.String(), "\n", "")
}

func (h *Highlighter) styleFor(bg string) *chroma.Style {
	c := chroma.ParseColour(bg)
	if !strings.HasPrefix(bg, "#") || !c.IsSet() {
		return h.style
	}
	if s, ok := h.withBg[bg]; ok {
		return s
	}
	b := h.style.Builder().Transform(
		func(t chroma.StyleEntry) chroma.StyleEntry {
			t.Background = c
			return t
		},
	)
	// terminal formatters drop the Background entry's own background, so
	// carry it on Text, which every token inherits from.
	text := b.Get(chroma.Text)
	text.Background = c
	s, err := b.AddEntry(chroma.Text, text).Build()
	if err != nil {
		s = styles.Fallback
	}
	h.withBg[bg] = s
	return s
}
