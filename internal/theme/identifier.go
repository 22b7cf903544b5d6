package theme

import (
	"path/filepath"
	"strings"
)

// SyntaxFileExt is the extension of TextMate theme files.
const SyntaxFileExt = ".tmTheme"

// Kind classifies how a theme identifier is looked up.
type Kind int

const (
	// BuiltinName is a plain embedded theme name, e.g. "nord".
	BuiltinName Kind = iota
	// BuiltinNameWithSuffix is an embedded name carrying a variant suffix,
	// e.g. "tokyonight-day".
	BuiltinNameWithSuffix
	// BareFileName is a .tmTheme file in the user themes directory.
	BareFileName
	// FilesystemPath is read literally from disk.
	FilesystemPath
)

func (k Kind) String() string {
	switch k {
	case BuiltinName:
		return "builtin"
	case BuiltinNameWithSuffix:
		return "builtin-variant"
	case BareFileName:
		return "file"
	case FilesystemPath:
		return "path"
	default:
		return "unknown"
	}
}

// Identifier is a classified theme reference.
type Identifier struct {
	Raw  string
	Kind Kind
	// Base is the family name for built-in identifiers ("tokyonight" for
	// "tokyonight-day"). Empty for files.
	Base string
}

func (id Identifier) String() string {
	return id.Raw
}

// IsBuiltin reports whether the identifier addresses the embedded catalog.
func (id Identifier) IsBuiltin() bool {
	return id.Kind == BuiltinName || id.Kind == BuiltinNameWithSuffix
}

var variantSuffixes = []string{"-day", "-light", "-latte", "-frappe", "-macchiato"}

// ParseIdentifier classifies raw. Anything containing a path separator, and
// "~" itself, is a path; a name ending in .tmTheme is a file in the user
// themes directory; everything else names a built-in.
func ParseIdentifier(raw string) Identifier {
	switch {
	case raw == "~",
		strings.ContainsRune(raw, '/'),
		strings.ContainsRune(raw, filepath.Separator):
		return Identifier{Raw: raw, Kind: FilesystemPath}
	case strings.HasSuffix(raw, SyntaxFileExt):
		return Identifier{Raw: raw, Kind: BareFileName}
	}
	for _, suffix := range variantSuffixes {
		if base, ok := strings.CutSuffix(raw, suffix); ok && base != "" {
			return Identifier{Raw: raw, Kind: BuiltinNameWithSuffix, Base: base}
		}
	}
	return Identifier{Raw: raw, Kind: BuiltinName, Base: raw}
}
