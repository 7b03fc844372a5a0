package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ColorDepth != DefaultColorDepth {
		t.Errorf("expected color depth %d, got %d", DefaultColorDepth, cfg.ColorDepth)
	}
	if len(cfg.Phases) != 1 || cfg.Phases[0].Algorithm != "prim" {
		t.Errorf("expected a single prim phase, got %+v", cfg.Phases)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("wilson-bfs")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Name != "wilson-bfs" {
		t.Errorf("expected name wilson-bfs, got %s", cfg.Name)
	}
	if len(cfg.Phases) != 2 || cfg.Phases[1].Algorithm != "bfs" {
		t.Errorf("unexpected phases %+v", cfg.Phases)
	}

	cfg.Phases[0].Speed = 1
	cfg.Mask[0] = "#"
	if Presets["wilson-bfs"].Phases[0].Speed == 1 || Presets["wilson-bfs"].Mask[0] == "#" {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestListPresetsSorted(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d names, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"depth 0", func(c *Config) { c.ColorDepth = 0 }},
		{"depth 9", func(c *Config) { c.ColorDepth = 9 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"huge height", func(c *Config) { c.Height = 70000 }},
		{"cell size", func(c *Config) { c.CellSize = 0 }},
		{"background", func(c *Config) { c.Background = 4 }},
		{"no phases", func(c *Config) { c.Phases = nil }},
		{"no palette", func(c *Config) { c.Palette = "" }},
		{"unknown palette", func(c *Config) { c.Palette = "sepia" }},
		{"padding", func(c *Config) { c.Padding = 300 }},
		{"region outside", func(c *Config) { c.Region = &Region{Left: 0, Top: 0, Right: 600, Bottom: 10} }},
		{"cell too large", func(c *Config) { c.CellSize = 500 }},
		{"empty algorithm", func(c *Config) { c.Phases[0].Algorithm = "" }},
		{"code length", func(c *Config) { c.Phases[0].MinCodeLength = 13 }},
		{"transparent", func(c *Config) { c.Phases[0].Transparent = Int(4) }},
		{"colormap", func(c *Config) { c.Phases[0].Colormap = map[int]int{1: 7} }},
		{"clear color", func(c *Config) { c.Phases[0].ClearRegion = Int(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestValidateCodeSize(t *testing.T) {
	depth3 := func(phases ...Phase) *Config {
		cfg := DefaultConfig()
		cfg.ColorDepth = 3
		cfg.Phases = phases
		return cfg
	}

	tests := []struct {
		name  string
		cfg   *Config
		valid bool
	}{
		{"solver colors past a 2-bit code", depth3(
			Phase{Algorithm: "kruskal"},
			Phase{Algorithm: "bfs", MinCodeLength: 2},
		), false},
		{"solver colors earlier code size", depth3(
			Phase{Algorithm: "dfs", MinCodeLength: 3},
			Phase{Algorithm: "prim", MinCodeLength: 2},
		), false},
		{"colormap past the code size", depth3(
			Phase{Algorithm: "prim", MinCodeLength: 2, Colormap: map[int]int{1: 5}},
		), false},
		{"colormap carried into a later phase", depth3(
			Phase{Algorithm: "prim", Colormap: map[int]int{2: 6}},
			Phase{Algorithm: "astar", MinCodeLength: 2},
		), false},
		{"padding with a wide transparent index", depth3(
			Phase{Algorithm: "prim", MinCodeLength: 2, Transparent: Int(6), PadAfter: 10},
		), false},
		{"solver at the depth", depth3(
			Phase{Algorithm: "kruskal", MinCodeLength: 2},
			Phase{Algorithm: "bfs", MinCodeLength: 3},
		), true},
		{"solver colors folded by the colormap", depth3(
			Phase{Algorithm: "bfs", MinCodeLength: 2, Colormap: map[int]int{4: 3, 5: 3, 6: 3, 7: 3}},
		), true},
		{"wide transparent index without padding", depth3(
			Phase{Algorithm: "prim", MinCodeLength: 2, Transparent: Int(6)},
		), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestMazeRegion(t *testing.T) {
	cfg := DefaultConfig()
	want := Region{Left: 8, Top: 8, Right: 591, Bottom: 391}
	if got := cfg.MazeRegion(); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	cfg.Region = &Region{Left: 66, Top: 47, Right: 540, Bottom: 343}
	if got := cfg.MazeRegion(); got != *cfg.Region {
		t.Errorf("explicit region ignored, got %+v", got)
	}
}

func TestColorTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColorDepth = 3
	table := cfg.ColorTable()
	if len(table) != 24 {
		t.Fatalf("expected 24 bytes, got %d", len(table))
	}
	if table[3] != 255 || table[6] != 255 || table[8] != 255 || table[23] != 0 {
		t.Errorf("unexpected table %v", table)
	}

	cfg.ColorDepth = 1
	cfg.Colors = []int{10, 20, 30, 40, 50, 60, 70, 80, 90}
	table = cfg.ColorTable()
	if len(table) != 6 || table[5] != 60 {
		t.Errorf("expected truncated explicit colors, got %v", table)
	}
}

func TestRainbowPalette(t *testing.T) {
	p := Palette("rainbow")
	if len(p) != 9+3*256 {
		t.Fatalf("expected %d bytes, got %d", 9+3*256, len(p))
	}
	// hue 0 is pure red, hue 120 pure green
	if p[9] != 255 || p[10] != 0 || p[11] != 0 {
		t.Errorf("hue 0 = %v", p[9:12])
	}
	g := 9 + 3*120
	if p[g] != 0 || p[g+1] != 255 || p[g+2] != 0 {
		t.Errorf("hue 120 = %v", p[g:g+3])
	}
	if Palette("nonexistent") != nil {
		t.Error("expected nil for unknown palette")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	cfg := GetPreset("wilson-bfs")
	cfg.Seed = 99

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Seed != 99 || loaded.ColorDepth != 8 || len(loaded.Mask) != len(cfg.Mask) {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
	if len(loaded.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(loaded.Phases))
	}
	bfs := loaded.Phases[1]
	if bfs.Transparent == nil || *bfs.Transparent != 0 || bfs.Colormap[1] != 0 || bfs.Colormap[3] != 3 {
		t.Errorf("phase fields lost: %+v", bfs)
	}
	if loaded.Phases[0].ClearRegion != nil {
		t.Error("unset clear_region should stay nil")
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("width: 200\nheight: 100\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 200 || cfg.Height != 100 {
		t.Errorf("expected 200x100, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.ColorDepth != DefaultColorDepth || len(cfg.Phases) != 1 {
		t.Errorf("defaults lost: depth %d, %d phases", cfg.ColorDepth, len(cfg.Phases))
	}
}
