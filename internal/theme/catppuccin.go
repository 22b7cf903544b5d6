package theme

import (
	"encoding/json"
	"fmt"

	catppuccin "github.com/catppuccin/go"

	"github.com/ahkohd/oyo/internal/tmtheme"
)

// catppuccinSyntax names the generated syntax themes. The bare family name
// is the mocha flavor.
var catppuccinSyntax = map[string]catppuccin.Flavor{
	"catppuccin":           catppuccin.Mocha,
	"catppuccin-latte":     catppuccin.Latte,
	"catppuccin-frappe":    catppuccin.Frappe,
	"catppuccin-macchiato": catppuccin.Macchiato,
}

func addCatppuccin(set *builtinSet) error {
	ui, err := catppuccinUI(catppuccin.Mocha, catppuccin.Latte)
	if err != nil {
		return err
	}
	set.ui["catppuccin"] = ui

	for name, flavor := range catppuccinSyntax {
		data, err := tmtheme.Encode(catppuccinDocument(flavor))
		if err != nil {
			return fmt.Errorf("failed to generate %s: %w", name, err)
		}
		set.syntax[name] = data
	}
	return nil
}

func catppuccinUI(dark, light catppuccin.Flavor) ([]byte, error) {
	pick := map[Token]func(catppuccin.Flavor) catppuccin.Color{
		Background:     catppuccin.Flavor.Base,
		Text:           catppuccin.Flavor.Text,
		TextMuted:      catppuccin.Flavor.Overlay1,
		Primary:        catppuccin.Flavor.Blue,
		Secondary:      catppuccin.Flavor.Mauve,
		Accent:         catppuccin.Flavor.Teal,
		Border:         catppuccin.Flavor.Surface1,
		BorderActive:   catppuccin.Flavor.Lavender,
		Error:          catppuccin.Flavor.Red,
		Warning:        catppuccin.Flavor.Peach,
		Success:        catppuccin.Flavor.Green,
		Info:           catppuccin.Flavor.Sky,
		DiffAdded:      catppuccin.Flavor.Green,
		DiffRemoved:    catppuccin.Flavor.Red,
		DiffModified:   catppuccin.Flavor.Yellow,
		DiffAddedBg:    catppuccin.Flavor.Surface0,
		DiffRemovedBg:  catppuccin.Flavor.Surface0,
		DiffModifiedBg: catppuccin.Flavor.Surface0,
		DiffContext:    catppuccin.Flavor.Subtext0,
		DiffLineNumber: catppuccin.Flavor.Overlay0,
		DiffExtMarker:  catppuccin.Flavor.Overlay2,
	}

	doc := jsonTheme{
		Variants: []string{string(ModeDark), string(ModeLight)},
		Theme:    make(map[string]any, len(pick)),
	}
	for token, fn := range pick {
		doc.Theme[string(token)] = map[string]any{
			"dark":  fn(dark).Hex,
			"light": fn(light).Hex,
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

func catppuccinDocument(f catppuccin.Flavor) *tmtheme.Document {
	rule := func(name, scope string, c catppuccin.Color, style string) tmtheme.Rule {
		settings := map[string]string{tmtheme.KeyForeground: c.Hex}
		if style != "" {
			settings[tmtheme.KeyFontStyle] = style
		}
		return tmtheme.Rule{Name: name, Scope: scope, Settings: settings}
	}

	return &tmtheme.Document{
		Name:          "Catppuccin " + f.Name(),
		Author:        "Catppuccin",
		SemanticClass: "theme.catppuccin." + f.Name(),
		Rules: []tmtheme.Rule{
			{Settings: map[string]string{
				tmtheme.KeyBackground: f.Base().Hex,
				tmtheme.KeyForeground: f.Text().Hex,
				"caret":               f.Rosewater().Hex,
				"selection":           f.Surface2().Hex,
				"lineHighlight":       f.Surface0().Hex,
			}},
			rule("Comment", "comment, punctuation.definition.comment", f.Overlay0(), "italic"),
			rule("String", "string, string.quoted", f.Green(), ""),
			rule("Number", "constant.numeric", f.Peach(), ""),
			rule("Constant", "constant.language, constant.character, constant.other", f.Peach(), ""),
			rule("Keyword", "keyword, storage.modifier", f.Mauve(), ""),
			rule("Storage", "storage, storage.type", f.Mauve(), ""),
			rule("Operator", "keyword.operator", f.Sky(), ""),
			rule("Function", "entity.name.function, support.function, meta.function-call", f.Blue(), ""),
			rule("Type", "entity.name.type, entity.name.class, support.type, support.class", f.Yellow(), ""),
			rule("Variable", "variable, variable.other", f.Text(), ""),
			rule("Parameter", "variable.parameter", f.Maroon(), ""),
			rule("Tag", "entity.name.tag", f.Blue(), ""),
			rule("Attribute", "entity.other.attribute-name", f.Yellow(), ""),
			rule("Punctuation", "punctuation", f.Overlay2(), ""),
			rule("Heading", "markup.heading", f.Red(), "bold"),
			rule("Inserted", "markup.inserted", f.Green(), ""),
			rule("Deleted", "markup.deleted", f.Red(), ""),
			rule("Changed", "markup.changed", f.Yellow(), ""),
			rule("Invalid", "invalid", f.Red(), ""),
		},
	}
}
