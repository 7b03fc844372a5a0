package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/fangj99/gifmaze/internal/config"
	"github.com/fangj99/gifmaze/internal/experiment"
)

// Scenario is a scripted batch of renders.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep renders one preset or config file. Config is resolved
// relative to the scenario file.
type ScenarioStep struct {
	Preset string `yaml:"preset,omitempty"`
	Config string `yaml:"config,omitempty"`
	Seed   int64  `yaml:"seed,omitempty"`
	Speed  int    `yaml:"speed,omitempty"`
	SaveAs string `yaml:"save_as,omitempty"`
}

// StepResult pairs the resolved config of a step with its result.
type StepResult struct {
	Config *config.Config
	Result *experiment.Result
	Output string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for i, step := range scenario.Steps {
		if step.Config != "" && !filepath.IsAbs(step.Config) {
			scenario.Steps[i].Config = filepath.Join(dir, step.Config)
		}
	}
	return &scenario, nil
}

// Resolve builds the config a step describes.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case s.Config != "":
		var err error
		if cfg, err = config.Load(s.Config); err != nil {
			return nil, err
		}
	case s.Preset != "":
		if cfg = config.GetPreset(s.Preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	default:
		return nil, fmt.Errorf("step needs a preset or a config")
	}

	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Speed > 0 {
		for i := range cfg.Phases {
			cfg.Phases[i].Speed = s.Speed
		}
	}
	return cfg, nil
}

// RunScenario executes all steps in order, writing each animation to its
// save_as path (relative to outDir) when one is given.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, outDir string, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "name", cfg.Name)

		exp := experiment.New(cfg, registry, logger)
		if err := exp.Setup(); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		out := ""
		if step.SaveAs != "" {
			out = filepath.Join(outDir, step.SaveAs)
			if err := result.Surface.Save(out); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, StepResult{Config: cfg, Result: result, Output: out})
	}

	return results, nil
}

// EnsembleResult summarizes one seed of an ensemble.
type EnsembleResult struct {
	Seed   int64
	Frames int
	Bytes  int
}

// RunEnsemble renders cfg once per seed in [seedStart, seedStart+runs) on
// up to workers goroutines, keeping only the summaries. Results are in
// seed order.
func RunEnsemble(ctx context.Context, cfg *config.Config, runs int, seedStart int64, registry *experiment.Registry, workers int) ([]EnsembleResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]EnsembleResult, runs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < runs; i++ {
		g.Go(func() error {
			cfgCopy := *cfg
			cfgCopy.Seed = seedStart + int64(i)

			exp := experiment.New(&cfgCopy, registry, nil)
			if err := exp.Setup(); err != nil {
				return err
			}
			res, err := exp.Run(ctx)
			if err != nil {
				return fmt.Errorf("seed %d: %w", cfgCopy.Seed, err)
			}
			results[i] = EnsembleResult{
				Seed:   cfgCopy.Seed,
				Frames: res.Frames,
				Bytes:  len(res.Surface.Export()),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// EnsembleStats returns the smallest, mean and largest file size.
func EnsembleStats(results []EnsembleResult) (lo int, mean float64, hi int) {
	if len(results) == 0 {
		return 0, 0, 0
	}
	lo, hi = results[0].Bytes, results[0].Bytes
	total := 0
	for _, r := range results {
		lo = min(lo, r.Bytes)
		hi = max(hi, r.Bytes)
		total += r.Bytes
	}
	return lo, float64(total) / float64(len(results)), hi
}
