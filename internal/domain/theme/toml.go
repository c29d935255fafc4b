package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

// tomlPalette is the TOML representation of one palette. Empty keys keep the built-in colour.
type tomlPalette struct {
	Background       string `toml:"background"`
	Text             string `toml:"text"`
	Accent           string `toml:"accent"`
	SubText          string `toml:"sub_text"`
	ButtonBackground string `toml:"button_background"`
}

// tomlPalettes is the TOML document holding overrides per theme.
type tomlPalettes struct {
	Light *tomlPalette `toml:"light"`
	Green *tomlPalette `toml:"green"`
	Dark  *tomlPalette `toml:"dark"`
}

//nolint:gochecknoglobals // Compiled once.
var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ErrInvalidColor is returned when an override is not a #rrggbb colour.
var ErrInvalidColor = errors.New("invalid color")

// LoadPalettes reads palette overrides from a TOML file on top of the built-ins.
// An empty path returns the built-ins.
func LoadPalettes(path string) (Palettes, error) {
	if path == "" {
		return Builtin(), nil
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read palette file: %w", err)
	}

	return ParsePalettes(contents)
}

// ParsePalettes parses TOML overrides on top of the built-ins.
func ParsePalettes(data []byte) (Palettes, error) {
	var doc tomlPalettes
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse palette TOML: %w", err)
	}

	result := Builtin()

	overrides := map[Identifier]*tomlPalette{
		Light: doc.Light,
		Green: doc.Green,
		Dark:  doc.Dark,
	}

	for id, override := range overrides {
		if override == nil {
			continue
		}

		merged, err := merge(result[id], override)
		if err != nil {
			return nil, fmt.Errorf("palette %s: %w", id, err)
		}

		result[id] = merged
	}

	return result, nil
}

// merge overlays non-empty TOML values on base after validating them.
func merge(base Palette, override *tomlPalette) (Palette, error) {
	fields := []struct {
		name  string
		value string
		dst   *string
	}{
		{"background", override.Background, &base.Background},
		{"text", override.Text, &base.Text},
		{"accent", override.Accent, &base.Accent},
		{"sub_text", override.SubText, &base.SubText},
		{"button_background", override.ButtonBackground, &base.ButtonBackground},
	}

	for _, field := range fields {
		if field.value == "" {
			continue
		}

		if !hexColorRegex.MatchString(field.value) {
			return Palette{}, fmt.Errorf("%w for %s: %q", ErrInvalidColor, field.name, field.value)
		}

		*field.dst = field.value
	}

	return base, nil
}
