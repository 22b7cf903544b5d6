package theme

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

//go:embed themes
var themesFS embed.FS

// FallbackSyntaxTheme is always present in the embedded catalog.
const FallbackSyntaxTheme = "ansi"

type builtinSet struct {
	ui     map[string][]byte
	syntax map[string][]byte
}

// builtins is built on first use and never written afterwards.
var builtins = sync.OnceValues(loadBuiltins)

func loadBuiltins() (*builtinSet, error) {
	set := &builtinSet{
		ui:     make(map[string][]byte),
		syntax: make(map[string][]byte),
	}
	if err := readEmbedded(set.ui, "themes/ui/*.json", ".json"); err != nil {
		return nil, err
	}
	if err := readEmbedded(set.syntax, "themes/syntax/*"+SyntaxFileExt, SyntaxFileExt); err != nil {
		return nil, err
	}
	if err := addCatppuccin(set); err != nil {
		return nil, err
	}
	return set, nil
}

func readEmbedded(dst map[string][]byte, pattern, ext string) error {
	matches, err := doublestar.Glob(themesFS, pattern)
	if err != nil {
		return fmt.Errorf("failed to list embedded themes: %w", err)
	}
	for _, m := range matches {
		data, err := themesFS.ReadFile(m)
		if err != nil {
			return fmt.Errorf("failed to read embedded theme %s: %w", m, err)
		}
		dst[strings.TrimSuffix(path.Base(m), ext)] = data
	}
	return nil
}

func sortedNames(m map[string][]byte) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
