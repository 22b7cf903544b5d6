package theme

// lightVariants maps a built-in family to its light syntax theme. Themes
// that ship a single look (nord, dracula) have no entry.
var lightVariants = map[string]string{
	"tokyonight": "tokyonight-day",
	"catppuccin": "catppuccin-latte",
	"gruvbox":    "gruvbox-light",
	"solarized":  "solarized-light",
}

// LightVariantOf returns the light counterpart of base, if one is known.
func LightVariantOf(base string) (string, bool) {
	v, ok := lightVariants[base]
	return v, ok
}
