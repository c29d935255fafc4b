package theme

// Palette is the colour set a screen renders with. Values are #rrggbb.
type Palette struct {
	Background       string
	Text             string
	Accent           string
	SubText          string
	ButtonBackground string
}

// Palettes maps every theme to its palette.
type Palettes map[Identifier]Palette

// Button backgrounds are the translucent accents pre-blended over the background,
// since terminals have no alpha channel.
//
//nolint:gochecknoglobals // Built-in palettes are immutable by convention; callers get copies.
var builtin = Palettes{
	Light: {
		Background:       "#f2f2f2",
		Text:             "#000000",
		Accent:           "#007acc",
		SubText:          "#444444",
		ButtonBackground: "#c2daea",
	},
	Green: {
		Background:       "#d9fdd3",
		Text:             "#034f1a",
		Accent:           "#27ae60",
		SubText:          "#2e7d32",
		ButtonBackground: "#b5edbc",
	},
	Dark: {
		Background:       "#000000",
		Text:             "#ffffff",
		Accent:           "#61dafb",
		SubText:          "#888888",
		ButtonBackground: "#132c32",
	},
}

// Builtin returns a copy of the built-in palettes.
func Builtin() Palettes {
	result := make(Palettes, len(builtin))
	for id, p := range builtin {
		result[id] = p
	}

	return result
}

// PaletteFor returns the built-in palette of a theme.
func PaletteFor(id Identifier) Palette {
	return Builtin().Get(id)
}

// Get returns the palette of a theme, falling back to Light for unknown themes.
func (p Palettes) Get(id Identifier) Palette {
	if palette, ok := p[id]; ok {
		return palette
	}

	if palette, ok := builtin[id]; ok {
		return palette
	}

	return builtin[Light]
}
