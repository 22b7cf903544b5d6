package theme

import "fmt"

// Mode selects the dark or light side of a theme.
type Mode string

const (
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// ParseMode accepts "", "dark" and "light". The empty string means the
// mode was not configured.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "", ModeDark, ModeLight:
		return m, nil
	default:
		return "", fmt.Errorf("invalid theme mode %q: expected dark or light", s)
	}
}

// OrDefault returns m, or dark when m is unset.
func (m Mode) OrDefault() Mode {
	if m == "" {
		return ModeDark
	}
	return m
}

// SyntaxMode turns syntax highlighting on or off.
type SyntaxMode string

const (
	SyntaxOn  SyntaxMode = "on"
	SyntaxOff SyntaxMode = "off"
)

// ParseSyntaxMode accepts "", "on" and "off"; empty means on.
func ParseSyntaxMode(s string) (SyntaxMode, error) {
	switch m := SyntaxMode(s); m {
	case "":
		return SyntaxOn, nil
	case SyntaxOn, SyntaxOff:
		return m, nil
	default:
		return "", fmt.Errorf("invalid syntax mode %q: expected on or off", s)
	}
}
