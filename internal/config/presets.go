package config

import "slices"

// textMaskUST closes the cells under the letters "UST".
var textMaskUST = []string{
	".......................",
	"..#...#..#####.#####...",
	"..#...#..#.......#.....",
	"..#...#..#####...#.....",
	"..#...#......#...#.....",
	"..#####..#####...#.....",
	".......................",
}

var Presets = map[string]*Config{
	"prim": {
		Description: "Prim's algorithm on a plain canvas",
		Width:       600, Height: 400, ColorDepth: 2, Palette: "classic",
		CellSize: 5, Padding: 8,
		Phases: []Phase{
			{Algorithm: "prim", Speed: 20, Delay: Int(5), Transparent: Int(3), PadBefore: 200, PadAfter: 500},
		},
	},
	"random-dfs": {
		Description: "random depth-first search around a text mask",
		Width:       600, Height: 400, ColorDepth: 2,
		Colors:   []int{0, 0, 0, 200, 200, 200, 255, 0, 255, 0, 0, 0},
		CellSize: 5, Padding: 5, Mask: textMaskUST,
		Phases: []Phase{
			{Algorithm: "random-dfs", Speed: 20, Delay: Int(5), Transparent: Int(3), PadBefore: 200, PadAfter: 500},
		},
	},
	"kruskal": {
		Description: "Kruskal's algorithm",
		Width:       400, Height: 300, ColorDepth: 2, Palette: "classic",
		CellSize: 4, Padding: 6,
		Phases: []Phase{
			{Algorithm: "kruskal", Speed: 30, Delay: Int(3), Transparent: Int(3), PadBefore: 100, PadAfter: 400},
		},
	},
	"wilson-bfs": {
		Description: "Wilson's uniform spanning tree, then a breadth-first flood",
		Width:       600, Height: 400, ColorDepth: 8, Palette: "rainbow",
		CellSize: 5, Padding: 5, Mask: textMaskUST,
		Phases: []Phase{
			{Algorithm: "wilson", Speed: 50, Delay: Int(1), Transparent: Int(3), MinCodeLength: 2, PadBefore: 200, PadAfter: 300},
			{
				Algorithm: "bfs", Speed: 30, Delay: Int(5), Transparent: Int(0), MinCodeLength: 8,
				Colormap: map[int]int{0: 0, 1: 0, 2: 2, 3: 3}, PadAfter: 500,
			},
		},
	},
	"framed-wilson-bfs": {
		Description: "wilson-bfs inside a cleared frame of a gray canvas",
		Width:       600, Height: 400, ColorDepth: 8, Background: 1, Palette: "rainbow",
		CellSize: 4, Region: &Region{Left: 66, Top: 47, Right: 540, Bottom: 343}, Mask: textMaskUST,
		Phases: []Phase{
			{Algorithm: "wilson", Speed: 50, Delay: Int(1), Transparent: Int(3), MinCodeLength: 2, PadBefore: 100, ClearRegion: Int(0), PadAfter: 300},
			{
				Algorithm: "bfs", Speed: 30, Delay: Int(5), Transparent: Int(0), MinCodeLength: 8,
				Colormap: map[int]int{0: 0, 1: 0, 2: 2, 3: 3}, PadAfter: 500,
			},
		},
	},
	"kruskal-astar": {
		Description: "Kruskal's algorithm solved by A*",
		Width:       400, Height: 300, ColorDepth: 2,
		Colors:   []int{0, 0, 0, 255, 255, 255, 255, 0, 255, 100, 149, 237},
		CellSize: 4, Padding: 6,
		Phases: []Phase{
			{Algorithm: "kruskal", Speed: 30, Delay: Int(3), PadBefore: 100, PadAfter: 200},
			{Algorithm: "astar", Speed: 10, Delay: Int(5), PadAfter: 500},
		},
	},
	"dfs-dfs": {
		Description: "random depth-first search solved by depth-first search",
		Width:       300, Height: 300, ColorDepth: 8, Palette: "rainbow",
		CellSize: 6, Padding: 6,
		Phases: []Phase{
			{Algorithm: "random-dfs", Speed: 20, Delay: Int(2), Transparent: Int(3), MinCodeLength: 2, PadBefore: 100, PadAfter: 200},
			{Algorithm: "dfs", Speed: 20, Delay: Int(3), Transparent: Int(0), MinCodeLength: 8, Colormap: map[int]int{0: 0, 1: 0}, PadAfter: 500},
		},
	},
}

// GetPreset returns a copy of a preset, or nil when the name is unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Name = name
	cfg.Colors = slices.Clone(p.Colors)
	cfg.Mask = slices.Clone(p.Mask)
	cfg.Phases = slices.Clone(p.Phases)
	if p.Region != nil {
		r := *p.Region
		cfg.Region = &r
	}
	return &cfg
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
