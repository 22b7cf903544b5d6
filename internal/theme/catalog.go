package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNotFound is returned when a catalog lookup has no match.
var ErrNotFound = errors.New("theme not found")

// Source tells where a catalog entry comes from.
type Source string

const (
	SourceEmbedded Source = "embedded"
	SourceUser     Source = "user"
)

// Entry is one listed theme.
type Entry struct {
	Name   string
	Source Source
	// Path is set for user entries.
	Path string
}

// Catalog looks up theme bytes in the embedded set and in a user themes
// directory. It holds no mutable state.
type Catalog struct {
	dir string
}

// NewCatalog returns a catalog backed by the embedded themes and dir. An
// empty dir disables user themes.
func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// Dir returns the user themes directory.
func (c *Catalog) Dir() string {
	return c.dir
}

// LookupUI returns the UI theme document for name. A user file
// <dir>/<name>.json takes precedence over the built-in of the same name.
func (c *Catalog) LookupUI(name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("UI theme %q: %w", name, ErrNotFound)
	}
	if c.dir != "" {
		data, err := readThemeFile(filepath.Join(c.dir, name+".json"))
		if err == nil || !errors.Is(err, ErrNotFound) {
			return data, err
		}
	}

	set, err := builtins()
	if err != nil {
		return nil, err
	}
	if data, ok := set.ui[name]; ok {
		return slices.Clone(data), nil
	}
	return nil, fmt.Errorf("UI theme %q: %w", name, ErrNotFound)
}

// LookupSyntax returns the .tmTheme bytes addressed by id.
func (c *Catalog) LookupSyntax(id Identifier) ([]byte, error) {
	if id.IsBuiltin() {
		set, err := builtins()
		if err != nil {
			return nil, err
		}
		if data, ok := set.syntax[id.Raw]; ok {
			return slices.Clone(data), nil
		}
		return nil, fmt.Errorf("syntax theme %q: %w", id.Raw, ErrNotFound)
	}

	switch id.Kind {
	case BareFileName:
		if c.dir == "" {
			return nil, fmt.Errorf("syntax theme %q: %w", id.Raw, ErrNotFound)
		}
		return readThemeFile(filepath.Join(c.dir, id.Raw))
	case FilesystemPath:
		p, err := ExpandHome(id.Raw)
		if err != nil {
			return nil, err
		}
		return readThemeFile(p)
	default:
		return nil, fmt.Errorf("syntax theme %q: unsupported identifier kind %s", id.Raw, id.Kind)
	}
}

// ListUI returns embedded UI themes followed by user ones, each group
// sorted by name.
func (c *Catalog) ListUI() ([]Entry, error) {
	return c.list(func(s *builtinSet) map[string][]byte { return s.ui }, "*.json", ".json")
}

// ListSyntax returns embedded syntax themes followed by user .tmTheme
// files, each group sorted. User entries are named by file name so they
// can be passed back as identifiers.
func (c *Catalog) ListSyntax() ([]Entry, error) {
	return c.list(func(s *builtinSet) map[string][]byte { return s.syntax }, "*"+SyntaxFileExt, "")
}

func (c *Catalog) list(table func(*builtinSet) map[string][]byte, pattern, trim string) ([]Entry, error) {
	set, err := builtins()
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, name := range sortedNames(table(set)) {
		entries = append(entries, Entry{Name: name, Source: SourceEmbedded})
	}

	files, err := c.userFiles(pattern)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		entries = append(entries, Entry{
			Name:   strings.TrimSuffix(file, trim),
			Source: SourceUser,
			Path:   filepath.Join(c.dir, file),
		})
	}
	return entries, nil
}

func (c *Catalog) userFiles(pattern string) ([]string, error) {
	if c.dir == "" {
		return nil, nil
	}
	info, err := os.Stat(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("themes directory %s is not a directory", c.dir)
	}

	matches, err := doublestar.Glob(os.DirFS(c.dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to list themes directory: %w", err)
	}
	slices.Sort(matches)
	return matches, nil
}

func readThemeFile(p string) ([]byte, error) {
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("theme file %s: %w", p, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}
	return data, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", p, err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
