// Package preview renders a themed unified diff, the way the resolved UI
// palette and syntax theme combine on screen.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/ahkohd/oyo/internal/highlight"
	"github.com/ahkohd/oyo/internal/theme"
)

// tintAmount is how far a marker color is blended into the background
// when a theme leaves a diff background unset.
const tintAmount = 0.18

// Renderer paints diffs with a palette and a syntax highlighter.
type Renderer struct {
	palette     *theme.Palette
	highlighter *highlight.Highlighter
	lg          *lipgloss.Renderer
}

// NewRenderer returns a renderer writing escape sequences for profile.
// A nil highlighter leaves code uncolored.
func NewRenderer(w io.Writer, palette *theme.Palette, hl *highlight.Highlighter, profile termenv.Profile) *Renderer {
	lg := lipgloss.NewRenderer(w)
	lg.SetColorProfile(profile)
	if hl == nil {
		hl, _ = highlight.New(nil, profile)
	}
	return &Renderer{palette: palette, highlighter: hl, lg: lg}
}

// Render diffs oldText against newText and returns the painted lines. It
// returns "" when the texts are equal.
func (r *Renderer) Render(filename, oldText, newText string) (string, error) {
	result, err := Diff(filename, oldText, newText)
	if err != nil {
		return "", err
	}
	if len(result.Hunks) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString(r.lg.NewStyle().Foreground(r.palette.Color(theme.Primary)).Render(filename))
	sb.WriteString("\n")
	for _, h := range result.Hunks {
		sb.WriteString(r.lg.NewStyle().Foreground(r.palette.Color(theme.TextMuted)).Render(h.Header))
		sb.WriteString("\n")
		for _, line := range h.Lines {
			sb.WriteString(r.renderLine(filename, line))
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

func (r *Renderer) renderLine(filename string, dl DiffLine) string {
	var (
		marker string
		fg     theme.Token
		bg     string
	)
	switch dl.Kind {
	case LineAdded:
		marker, fg, bg = "+", theme.DiffAdded, r.lineBackground(theme.DiffAddedBg, theme.DiffAdded)
	case LineRemoved:
		marker, fg, bg = "-", theme.DiffRemoved, r.lineBackground(theme.DiffRemovedBg, theme.DiffRemoved)
	case LineModified:
		marker, fg, bg = "~", theme.DiffModified, r.lineBackground(theme.DiffModifiedBg, theme.DiffModified)
	default:
		marker, fg, bg = " ", theme.DiffContext, r.hexOrEmpty(theme.Background)
	}

	lineNumbers := fmt.Sprintf("%4s %4s", lineNo(dl.OldLineNo), lineNo(dl.NewLineNo))
	prefix := r.lg.NewStyle().Foreground(r.palette.Color(theme.DiffLineNumber)).Render(lineNumbers) +
		" " + r.lg.NewStyle().Foreground(r.palette.Color(theme.DiffExtMarker)).Render("│") + " "

	lineStyle := r.lg.NewStyle()
	if bg != "" {
		lineStyle = lineStyle.Background(lipgloss.Color(bg))
	}
	markerText := lineStyle.Foreground(r.palette.Color(fg)).Render(marker + " ")

	content := dl.Content
	if r.highlighter.Enabled() {
		content = r.highlighter.Line(filename, content, bg)
	} else {
		content = lineStyle.Foreground(r.palette.Color(fg)).Render(content)
	}
	return prefix + markerText + content
}

// lineBackground returns the hex background for a changed line: the
// theme's own value, or a tint of the marker over the base background
// when the theme leaves it as "none".
func (r *Renderer) lineBackground(bgToken, markerToken theme.Token) string {
	if v := r.palette.Get(bgToken); v != theme.NoneColor {
		return hexOnly(v)
	}
	return Tint(r.palette.Get(markerToken), r.palette.Get(theme.Background), tintAmount)
}

func (r *Renderer) hexOrEmpty(t theme.Token) string {
	return hexOnly(r.palette.Get(t))
}

func hexOnly(v string) string {
	if strings.HasPrefix(v, "#") {
		return v
	}
	return ""
}

// Tint blends amount of marker into base. Both must be hex colors;
// otherwise there is nothing to blend and "" is returned.
func Tint(marker, base string, amount float64) string {
	m, err := colorful.Hex(marker)
	if err != nil {
		return ""
	}
	b, err := colorful.Hex(base)
	if err != nil {
		return ""
	}
	return b.BlendLab(m, amount).Clamped().Hex()
}

func lineNo(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprint(n)
}
