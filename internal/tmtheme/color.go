package tmtheme

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a tmTheme color value. Following the convention of ANSI-aware
// themes, an eight digit color with alpha 00 names an ANSI palette index
// in its red channel, and alpha 01 means the terminal's default color.
type Color struct {
	R, G, B, A uint8
}

// ParseColor accepts #rgb, #rrggbb and #rrggbbaa.
func ParseColor(s string) (Color, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok {
		return Color{}, fmt.Errorf("color %q: missing leading #", s)
	}
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("color %q: expected 3, 6 or 8 hex digits", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, nil
}

// ANSI returns the palette index when the color names one.
func (c Color) ANSI() (uint8, bool) {
	return c.R, c.A == 0
}

// IsDefault reports whether the color defers to the terminal default.
func (c Color) IsDefault() bool {
	return c.A == 1
}

// Hex formats the color as #rrggbb, dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
