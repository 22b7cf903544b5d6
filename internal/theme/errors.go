package theme

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// UnknownUIThemeError is returned when the configured UI theme is not in
// the catalog.
type UnknownUIThemeError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownUIThemeError) Error() string {
	msg := fmt.Sprintf("unknown UI theme '%s'", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg + "\nHint: run 'oyo themes' to list available themes"
}

// MalformedUIThemeError is returned when a UI theme exists but cannot be
// decoded into a complete palette.
type MalformedUIThemeError struct {
	Name string
	Err  error
}

func (e *MalformedUIThemeError) Error() string {
	return fmt.Sprintf("malformed UI theme '%s': %v\nHint: check the theme file against a built-in theme", e.Name, e.Err)
}

func (e *MalformedUIThemeError) Unwrap() error {
	return e.Err
}

const maxSuggestions = 3

// suggest returns up to three known names close to name: subsequence
// matches first, ranked by distance, then near misses by edit distance.
func suggest(name string, known []string) []string {
	if name == "" {
		return nil
	}
	ranks := fuzzy.RankFindFold(name, known)
	sort.Sort(ranks)

	var out []string
	for _, r := range ranks {
		out = append(out, r.Target)
	}
	lower := strings.ToLower(name)
	for _, k := range known {
		if slices.Contains(out, k) {
			continue
		}
		if fuzzy.LevenshteinDistance(lower, strings.ToLower(k)) <= 2 {
			out = append(out, k)
		}
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}
