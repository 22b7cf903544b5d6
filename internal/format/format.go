package format

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
)

// OutputFormat represents the format for command output
type OutputFormat string

const (
	// TextFormat is human-readable output (default)
	TextFormat OutputFormat = "text"

	// JSONFormat is indented JSON
	JSONFormat OutputFormat = "json"

	// TOMLFormat is TOML, the same format as the config file
	TOMLFormat OutputFormat = "toml"
)

// Texter is implemented by values with their own text rendering.
type Texter interface {
	Text() string
}

// IsValid checks if the output format is valid
func (f OutputFormat) IsValid() bool {
	return f == TextFormat || f == JSONFormat || f == TOMLFormat
}

// String returns the string representation of the output format
func (f OutputFormat) String() string {
	return string(f)
}

// Parse converts a flag value into an OutputFormat.
func Parse(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return TextFormat, nil
	}
	if !f.IsValid() {
		return "", fmt.Errorf("invalid output format: %s", s)
	}
	return f, nil
}

// FormatOutput formats v according to the specified format. Text output
// uses v's Texter implementation when it has one. TOML needs a struct or
// map at the top level.
func FormatOutput(v any, format OutputFormat) (string, error) {
	switch format {
	case TextFormat:
		if t, ok := v.(Texter); ok {
			return t.Text(), nil
		}
		return fmt.Sprint(v), nil
	case JSONFormat:
		jsonBytes, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(jsonBytes), nil
	case TOMLFormat:
		if !isTable(v) {
			return "", fmt.Errorf("failed to marshal TOML: top-level value must be a struct or map, got %T", v)
		}
		tomlBytes, err := toml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to marshal TOML: %w", err)
		}
		return strings.TrimSuffix(string(tomlBytes), "\n"), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// isTable reports whether v encodes as a TOML table.
func isTable(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Struct || rv.Kind() == reflect.Map
}
