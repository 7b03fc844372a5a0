package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/fangj99/gifmaze/internal/config"
	"github.com/fangj99/gifmaze/internal/experiment"
)

func baseConfig() *config.Config {
	return &config.Config{
		Width: 40, Height: 32, ColorDepth: 2, Palette: "classic",
		CellSize: 4, Padding: 2, Seed: 3,
		Phases: []config.Phase{{Algorithm: "prim", Speed: 5}},
	}
}

func TestApply(t *testing.T) {
	base := baseConfig()
	cfg, err := Apply(base, map[string]int{ParamSpeed: 7, ParamMinCodeLength: 12, ParamCellSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Phases[0].Speed != 7 || cfg.Phases[0].MinCodeLength != 12 || cfg.CellSize != 2 {
		t.Errorf("params not applied: %+v", cfg)
	}
	if base.Phases[0].Speed != 5 || base.CellSize != 4 {
		t.Error("base config modified")
	}

	if _, err := Apply(base, map[string]int{"gravity": 1}); err == nil {
		t.Error("expected unknown parameter error")
	}
}

func TestSearchFramesBySpeed(t *testing.T) {
	gs := NewGridSearch([]string{ParamSpeed}, [][]int{{1, 4, 16}})
	best, val, trials, err := gs.Search(context.Background(), baseConfig(), experiment.NewRegistry(), "frames")
	if err != nil {
		t.Fatal(err)
	}
	if len(trials) != 3 {
		t.Fatalf("expected 3 trials, got %d", len(trials))
	}
	if best[ParamSpeed] != 16 {
		t.Errorf("fastest speed should write fewest frames, got %v", best)
	}
	for _, tr := range trials {
		if tr.Value < val {
			t.Errorf("trial %v beats the reported best %f", tr, val)
		}
	}
}

func TestSearchLiteralCodesAreLarger(t *testing.T) {
	gs := NewGridSearch([]string{ParamMinCodeLength}, [][]int{{0, 12}})
	best, _, trials, err := gs.Search(context.Background(), baseConfig(), experiment.NewRegistry(), "total_bytes")
	if err != nil {
		t.Fatal(err)
	}
	if best[ParamMinCodeLength] != 0 {
		t.Errorf("literal-only coding should not win: %v", trials)
	}
}

func TestSearchSkipsInvalidPoints(t *testing.T) {
	gs := NewGridSearch([]string{ParamCellSize}, [][]int{{0, 4}})
	best, _, trials, err := gs.Search(context.Background(), baseConfig(), experiment.NewRegistry(), "frames")
	if err != nil {
		t.Fatal(err)
	}
	if len(trials) != 1 || best[ParamCellSize] != 4 {
		t.Errorf("cell size 0 should be skipped: %v", trials)
	}
}

func TestSearchErrors(t *testing.T) {
	reg := experiment.NewRegistry()
	if _, _, _, err := NewGridSearch([]string{ParamSpeed}, nil).Search(context.Background(), baseConfig(), reg, "frames"); err == nil {
		t.Error("expected mismatch error")
	}
	if _, _, _, err := NewGridSearch([]string{ParamSpeed}, [][]int{{5}}).Search(context.Background(), baseConfig(), reg, "nope"); err == nil {
		t.Error("expected unknown metric error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, _, err := NewGridSearch([]string{ParamSpeed}, [][]int{{5}}).Search(ctx, baseConfig(), reg, "frames")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSearchSkipsCodeSizesTooSmallForTheColors(t *testing.T) {
	cfg := baseConfig()
	cfg.ColorDepth = 3
	cfg.Phases = append(cfg.Phases, config.Phase{Algorithm: "bfs", Speed: 5})

	gs := NewGridSearch([]string{ParamMinCodeLength}, [][]int{{2, 3}})
	best, _, trials, err := gs.Search(context.Background(), cfg, experiment.NewRegistry(), "frames")
	if err != nil {
		t.Fatal(err)
	}
	if len(trials) != 1 || best[ParamMinCodeLength] != 3 {
		t.Errorf("min_code_length 2 should be skipped: %v", trials)
	}
}
