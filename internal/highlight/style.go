// Package highlight renders source lines with a TextMate syntax theme
// through chroma.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"

	"github.com/ahkohd/oyo/internal/tmtheme"
)

// scopeTokens maps chroma token types to the TextMate scope whose color
// they take. Token types not listed inherit from their parent category.
var scopeTokens = []struct {
	token chroma.TokenType
	scope string
}{
	{chroma.Comment, "comment"},
	{chroma.CommentPreproc, "meta.preprocessor"},
	{chroma.Keyword, "keyword"},
	{chroma.KeywordConstant, "constant.language"},
	{chroma.KeywordDeclaration, "storage"},
	{chroma.KeywordNamespace, "keyword.control.import"},
	{chroma.KeywordType, "storage.type"},
	{chroma.Operator, "keyword.operator"},
	{chroma.Punctuation, "punctuation"},
	{chroma.Name, "variable"},
	{chroma.NameAttribute, "entity.other.attribute-name"},
	{chroma.NameBuiltin, "support.function"},
	{chroma.NameClass, "entity.name.class"},
	{chroma.NameConstant, "constant.other"},
	{chroma.NameFunction, "entity.name.function"},
	{chroma.NameTag, "entity.name.tag"},
	{chroma.NameVariable, "variable.other"},
	{chroma.LiteralString, "string"},
	{chroma.LiteralStringChar, "constant.character"},
	{chroma.LiteralNumber, "constant.numeric"},
	{chroma.GenericDeleted, "markup.deleted"},
	{chroma.GenericEmph, "markup.italic"},
	{chroma.GenericHeading, "markup.heading"},
	{chroma.GenericInserted, "markup.inserted"},
	{chroma.GenericStrong, "markup.bold"},
	{chroma.Error, "invalid"},
}

// Match returns the settings of the rule whose selector best matches
// scope: the longest selector equal to scope or a dot-separated prefix of
// it. Later rules win ties. The second result is false when no rule
// matches.
func Match(doc *tmtheme.Document, scope string) (map[string]string, bool) {
	var (
		best    map[string]string
		bestLen = -1
	)
	for _, rule := range doc.Rules {
		for _, sel := range rule.Scopes() {
			if sel != scope && !strings.HasPrefix(scope, sel+".") {
				continue
			}
			if len(sel) >= bestLen {
				best, bestLen = rule.Settings, len(sel)
			}
		}
	}
	return best, bestLen >= 0
}

// Style converts a TextMate theme into a chroma style. The theme-wide
// foreground (and background, if the document still has one) becomes the
// chroma background entry every token inherits from.
func Style(doc *tmtheme.Document) (*chroma.Style, error) {
	b := chroma.NewStyleBuilder(doc.Name)

	if global := doc.Global(); global != nil {
		entry, err := styleEntry(global, true)
		if err != nil {
			return nil, fmt.Errorf("global settings: %w", err)
		}
		if entry != "" {
			b.Add(chroma.Background, entry)
		}
	}

	for _, st := range scopeTokens {
		settings, ok := Match(doc, st.scope)
		if !ok {
			continue
		}
		entry, err := styleEntry(settings, false)
		if err != nil {
			return nil, fmt.Errorf("scope %s: %w", st.scope, err)
		}
		if entry != "" {
			b.Add(st.token, entry)
		}
	}
	return b.Build()
}

func styleEntry(settings map[string]string, withBackground bool) (string, error) {
	var parts []string
	for _, style := range strings.Fields(settings[tmtheme.KeyFontStyle]) {
		switch style {
		case "bold", "italic", "underline":
			parts = append(parts, style)
		}
	}
	if fg, ok := settings[tmtheme.KeyForeground]; ok {
		c, err := colour(fg)
		if err != nil {
			return "", err
		}
		if c != "" {
			parts = append(parts, c)
		}
	}
	if bg, ok := settings[tmtheme.KeyBackground]; ok && withBackground {
		c, err := colour(bg)
		if err != nil {
			return "", err
		}
		if c != "" {
			parts = append(parts, "bg:"+c)
		}
	}
	return strings.Join(parts, " "), nil
}

// ansiNames are chroma's names for the 16 basic terminal colors, in
// palette order.
var ansiNames = [16]string{
	"#ansiblack", "#ansidarkred", "#ansidarkgreen", "#ansibrown",
	"#ansidarkblue", "#ansipurple", "#ansiteal", "#ansilightgray",
	"#ansidarkgray", "#ansired", "#ansigreen", "#ansiyellow",
	"#ansiblue", "#ansifuchsia", "#ansiturquoise", "#ansiwhite",
}

// colour converts a tmTheme color to a chroma color string. The terminal
// default color converts to "".
func colour(s string) (string, error) {
	c, err := tmtheme.ParseColor(s)
	if err != nil {
		return "", err
	}
	if c.IsDefault() {
		return "", nil
	}
	if idx, ok := c.ANSI(); ok {
		if idx < 16 {
			return ansiNames[idx], nil
		}
		return xterm256(idx), nil
	}
	return c.Hex(), nil
}

// xterm256 approximates an extended palette index as RGB.
func xterm256(idx uint8) string {
	if idx >= 232 {
		v := 8 + 10*int(idx-232)
		return fmt.Sprintf("#%02x%02x%02x", v, v, v)
	}
	i := int(idx) - 16
	level := func(n int) int {
		if n == 0 {
			return 0
		}
		return 55 + 40*n
	}
	return fmt.Sprintf("#%02x%02x%02x", level(i/36), level(i/6%6), level(i%6))
}
