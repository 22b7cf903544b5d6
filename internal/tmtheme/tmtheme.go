// Package tmtheme reads and writes TextMate color themes (.tmTheme), the
// XML property-list format used for syntax highlighting themes.
package tmtheme

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"howett.net/plist"
)

// Well-known keys of a rule's settings dictionary.
const (
	KeyForeground = "foreground"
	KeyBackground = "background"
	KeyFontStyle  = "fontStyle"
)

// ErrNoRules is returned when a document parses but carries no settings.
var ErrNoRules = errors.New("theme has no settings")

// Document is a parsed .tmTheme file.
type Document struct {
	Name          string `plist:"name,omitempty"`
	Author        string `plist:"author,omitempty"`
	SemanticClass string `plist:"semanticClass,omitempty"`
	UUID          string `plist:"uuid,omitempty"`
	Rules         []Rule `plist:"settings"`
}

// Rule is one entry of the top-level settings array. A rule without a
// scope carries the theme-wide defaults.
type Rule struct {
	Name     string            `plist:"name,omitempty"`
	Scope    string            `plist:"scope,omitempty"`
	Settings map[string]string `plist:"settings"`
}

// ParseError describes bytes that are not a usable tmTheme document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse tmTheme: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse decodes an XML property list into a Document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	format, err := plist.Unmarshal(data, &doc)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if format != plist.XMLFormat {
		return nil, &ParseError{Err: fmt.Errorf("unexpected property list format %s", plist.FormatNames[format])}
	}
	if len(doc.Rules) == 0 {
		return nil, &ParseError{Err: ErrNoRules}
	}
	for i, rule := range doc.Rules {
		for key, value := range rule.Settings {
			if key != KeyForeground && key != KeyBackground {
				continue
			}
			if _, err := ParseColor(value); err != nil {
				return nil, &ParseError{Err: fmt.Errorf("rule %d (%s) %s: %w", i, rule.Scope, key, err)}
			}
		}
	}
	return &doc, nil
}

// Encode renders the document as an indented XML property list.
func Encode(doc *Document) ([]byte, error) {
	data, err := plist.MarshalIndent(doc, plist.XMLFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf("encode tmTheme: %w", err)
	}
	return data, nil
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := *d
	out.Rules = make([]Rule, len(d.Rules))
	for i, rule := range d.Rules {
		out.Rules[i] = Rule{
			Name:     rule.Name,
			Scope:    rule.Scope,
			Settings: maps.Clone(rule.Settings),
		}
	}
	return &out
}

// Global returns the settings of the first scope-less rule, or nil.
func (d *Document) Global() map[string]string {
	for _, rule := range d.Rules {
		if rule.IsGlobal() {
			return rule.Settings
		}
	}
	return nil
}

// Colors flattens the document into scope -> foreground color. The
// theme-wide foreground is stored under the empty scope.
func (d *Document) Colors() map[string]string {
	out := make(map[string]string)
	for _, rule := range d.Rules {
		fg, ok := rule.Settings[KeyForeground]
		if !ok {
			continue
		}
		for _, scope := range rule.Scopes() {
			out[scope] = fg
		}
		if rule.IsGlobal() {
			out[""] = fg
		}
	}
	return out
}

// IsGlobal reports whether the rule applies theme-wide.
func (r Rule) IsGlobal() bool {
	return strings.TrimSpace(r.Scope) == ""
}

// Scopes splits the rule's comma separated selector list.
func (r Rule) Scopes() []string {
	if r.IsGlobal() {
		return nil
	}
	parts := strings.Split(r.Scope, ",")
	scopes := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			scopes = append(scopes, part)
		}
	}
	return scopes
}
