package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth      = 600
	DefaultHeight     = 400
	DefaultColorDepth = 2
	DefaultCellSize   = 5
	DefaultPadding    = 8
	DefaultSpeed      = 20
	DefaultDelay      = 5
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config describes one animation: the canvas, the maze laid out on it and
// the phases (algorithms) that run on the maze one after another.
type Config struct {
	Name        string   `yaml:"name,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Width       int      `yaml:"width"`
	Height      int      `yaml:"height"`
	ColorDepth  int      `yaml:"color_depth"`
	Loop        int      `yaml:"loop"`
	Background  int      `yaml:"background"`
	Palette     string   `yaml:"palette,omitempty"`
	Colors      []int    `yaml:"colors,omitempty"`
	CellSize    int      `yaml:"cell_size"`
	Padding     int      `yaml:"padding"`
	Region      *Region  `yaml:"region,omitempty"`
	Mask        []string `yaml:"mask,omitempty"`
	Seed        int64    `yaml:"seed"`
	Phases      []Phase  `yaml:"phases"`
}

// Region is an inclusive pixel rectangle. It overrides Padding.
type Region struct {
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
}

// Phase runs one algorithm. Pointer fields are left unchanged from the
// previous phase when nil.
type Phase struct {
	Algorithm     string      `yaml:"algorithm"`
	Speed         int         `yaml:"speed,omitempty"`
	Delay         *int        `yaml:"delay,omitempty"`
	Transparent   *int        `yaml:"transparent,omitempty"` // -1 for none
	MinCodeLength int         `yaml:"min_code_length,omitempty"`
	Colormap      map[int]int `yaml:"colormap,omitempty"`
	PadBefore     int         `yaml:"pad_before,omitempty"`
	PadAfter      int         `yaml:"pad_after,omitempty"`
	ClearRegion   *int        `yaml:"clear_region,omitempty"` // paint the maze region with this color first
}

func DefaultConfig() *Config {
	return &Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		ColorDepth: DefaultColorDepth,
		Palette:    "classic",
		CellSize:   DefaultCellSize,
		Padding:    DefaultPadding,
		Phases: []Phase{{
			Algorithm:   "prim",
			Speed:       DefaultSpeed,
			Delay:       Int(DefaultDelay),
			Transparent: Int(3),
			PadBefore:   200,
			PadAfter:    500,
		}},
	}
}

// Int returns a pointer to n, for the optional Phase fields.
func Int(n int) *int {
	return &n
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks what the encoder and the maze layout cannot recover from.
// Algorithm names are checked by the runner.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0 || c.Width > 0xFFFF || c.Height > 0xFFFF:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalid, c.Width, c.Height)
	case c.ColorDepth < 1 || c.ColorDepth > 8:
		return fmt.Errorf("%w: color_depth %d not in [1, 8]", ErrInvalid, c.ColorDepth)
	case c.CellSize < 1:
		return fmt.Errorf("%w: cell_size %d", ErrInvalid, c.CellSize)
	case c.Background < 0 || c.Background >= 1<<c.ColorDepth:
		return fmt.Errorf("%w: background %d outside the color table", ErrInvalid, c.Background)
	case len(c.Phases) == 0:
		return fmt.Errorf("%w: no phases", ErrInvalid)
	}
	if c.Palette == "" && len(c.Colors) == 0 {
		return fmt.Errorf("%w: neither palette nor colors given", ErrInvalid)
	}
	if c.Palette != "" {
		if _, ok := palettes[c.Palette]; !ok {
			return fmt.Errorf("%w: unknown palette %q", ErrInvalid, c.Palette)
		}
	}

	r := c.MazeRegion()
	if r.Right < r.Left || r.Bottom < r.Top {
		return fmt.Errorf("%w: empty maze region %+v", ErrInvalid, r)
	}
	if r.Left < 0 || r.Top < 0 || r.Right >= c.Width || r.Bottom >= c.Height {
		return fmt.Errorf("%w: maze region %+v outside the %dx%d canvas", ErrInvalid, r, c.Width, c.Height)
	}
	if (r.Right-r.Left+1)/c.CellSize < 1 || (r.Bottom-r.Top+1)/c.CellSize < 1 {
		return fmt.Errorf("%w: cell_size %d too large for the region", ErrInvalid, c.CellSize)
	}

	for i, p := range c.Phases {
		if p.Algorithm == "" {
			return fmt.Errorf("%w: phase %d has no algorithm", ErrInvalid, i+1)
		}
		if p.MinCodeLength != 0 && (p.MinCodeLength < 2 || p.MinCodeLength > 12) {
			return fmt.Errorf("%w: phase %d min_code_length %d not in [2, 12]", ErrInvalid, i+1, p.MinCodeLength)
		}
		if p.Transparent != nil && *p.Transparent >= 1<<c.ColorDepth {
			return fmt.Errorf("%w: phase %d transparent index %d outside the color table", ErrInvalid, i+1, *p.Transparent)
		}
		if p.ClearRegion != nil && (*p.ClearRegion < 0 || *p.ClearRegion >= 1<<c.ColorDepth) {
			return fmt.Errorf("%w: phase %d clear_region color %d outside the color table", ErrInvalid, i+1, *p.ClearRegion)
		}
		for state, color := range p.Colormap {
			if color < 0 || color >= 1<<c.ColorDepth {
				return fmt.Errorf("%w: phase %d maps state %d to color %d outside the color table", ErrInvalid, i+1, state, color)
			}
		}
	}
	return c.checkCodeSizes()
}

// distanceColored names the algorithms that paint cells with every color
// index from 3 up to the table size.
var distanceColored = map[string]bool{"bfs": true, "dfs": true}

// mazeStates are the cell states every algorithm can leave on the grid:
// wall, tree, path and fill.
var mazeStates = []int{0, 1, 2, 3}

// checkCodeSizes makes sure every pixel a phase can draw fits the LZW code
// size in effect during that phase. The code size starts at the color
// depth (at least 2) and changes only when a phase sets min_code_length.
// Cell values stay on the grid, so the states a phase can draw include
// those of earlier phases. Region clears pick their own code size.
func (c *Config) checkCodeSizes() error {
	codeSize := max(2, c.ColorDepth)
	colormap := make(map[int]int)
	states := make(map[int]bool)
	for _, s := range mazeStates {
		states[s] = true
	}
	trans := -1

	for i, p := range c.Phases {
		if p.MinCodeLength != 0 {
			codeSize = p.MinCodeLength
		}
		maps.Copy(colormap, p.Colormap)
		if p.Transparent != nil {
			trans = *p.Transparent
		}
		if distanceColored[p.Algorithm] {
			for s := 3; s < 1<<c.ColorDepth; s++ {
				states[s] = true
			}
		}

		limit := 1 << codeSize
		for _, s := range slices.Sorted(maps.Keys(states)) {
			color, ok := colormap[s]
			if !ok {
				color = s
			}
			if color >= limit {
				return fmt.Errorf("%w: phase %d can draw color %d (state %d) but min_code_length %d only encodes [0, %d)",
					ErrInvalid, i+1, color, s, codeSize, limit)
			}
		}
		if (p.PadBefore > 0 || p.PadAfter > 0) && trans >= limit {
			return fmt.Errorf("%w: phase %d pads with transparent index %d but min_code_length %d only encodes [0, %d)",
				ErrInvalid, i+1, trans, codeSize, limit)
		}
	}
	return nil
}

// MazeRegion returns the region the maze is fitted into.
func (c *Config) MazeRegion() Region {
	if c.Region != nil {
		return *c.Region
	}
	return Region{
		Left:   c.Padding,
		Top:    c.Padding,
		Right:  c.Width - c.Padding - 1,
		Bottom: c.Height - c.Padding - 1,
	}
}

// ColorTable returns the global color table: the named palette or the
// explicit colors, padded with black or cut to 3·2^depth bytes.
func (c *Config) ColorTable() []byte {
	var rgb []byte
	if len(c.Colors) > 0 {
		rgb = make([]byte, len(c.Colors))
		for i, v := range c.Colors {
			rgb[i] = byte(v)
		}
	} else {
		rgb = Palette(c.Palette)
	}

	table := make([]byte, 3<<c.ColorDepth)
	copy(table, rgb)
	return table
}
