package config

import (
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

var palettes = map[string]func() []byte{
	"mono": func() []byte {
		return []byte{0, 0, 0, 255, 255, 255}
	},
	// black walls, white tree, magenta path
	"classic": func() []byte {
		return []byte{0, 0, 0, 255, 255, 255, 255, 0, 255, 0, 0, 0}
	},
	// classic followed by a hue wheel for distance coloring
	"rainbow": func() []byte {
		p := []byte{0, 0, 0, 200, 200, 200, 255, 0, 255}
		for i := range 256 {
			r, g, b := colorful.Hsl(float64(i%360), 1, 0.5).RGB255()
			p = append(p, r, g, b)
		}
		return p
	},
}

// Palette returns the RGB triples of a named palette, or nil.
func Palette(name string) []byte {
	fn, ok := palettes[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPalettes() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
