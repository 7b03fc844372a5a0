package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/fangj99/gifmaze/internal/anim"
	"github.com/fangj99/gifmaze/internal/config"
	"github.com/fangj99/gifmaze/internal/gifenc"
	"github.com/fangj99/gifmaze/internal/maze"
	"github.com/fangj99/gifmaze/internal/metrics"
)

type Result struct {
	Surface *gifenc.Surface
	Maze    *maze.Maze
	Frames  int
	Sizes   []int
	// Duration is the playback time in hundredths of a second.
	Duration int
	Metrics  map[string]float64
}

// Experiment builds the canvas, maze and engine described by a config and
// runs its phases in order.
type Experiment struct {
	cfg        *config.Config
	registry   *Registry
	randSource *rand.Rand
	logger     *slog.Logger

	surface *gifenc.Surface
	maze    *maze.Maze
	engine  *anim.Engine
	metrics []metrics.Metric
	sizes   *metrics.FrameSizes
}

func New(cfg *config.Config, registry *Registry, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Experiment{
		cfg:        cfg,
		registry:   registry,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
		logger:     logger,
	}
}

// Setup validates the config and builds the surface, the maze fitted in
// the maze region, and the engine watching it.
func (e *Experiment) Setup() error {
	cfg := e.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}
	for i, p := range cfg.Phases {
		if _, err := e.registry.Get(p.Algorithm); err != nil {
			return fmt.Errorf("phase %d: %w", i+1, err)
		}
	}

	surface, err := gifenc.NewSurface(cfg.Width, cfg.Height, cfg.ColorDepth,
		gifenc.WithLoop(cfg.Loop),
		gifenc.WithPalette(cfg.ColorTable()),
		gifenc.WithBackground(cfg.Background),
	)
	if err != nil {
		return err
	}

	w, h, offset := anim.FitRegion(cfg.CellSize, anim.Region(cfg.MazeRegion()))
	var mask maze.Mask
	if len(cfg.Mask) > 0 {
		mask = maze.TextMask(cfg.Mask)
	}
	m, err := maze.New(w, h, mask)
	if err != nil {
		return err
	}
	if !m.Connected() {
		return fmt.Errorf("%w: mask leaves the maze empty or disconnected", config.ErrInvalid)
	}

	engine, err := anim.New(surface, m, cfg.CellSize, offset, anim.WithLogger(e.logger))
	if err != nil {
		return err
	}

	e.surface = surface
	e.maze = m
	e.engine = engine
	e.metrics = metrics.Defaults()
	e.sizes = metrics.NewFrameSizes()
	for _, mt := range e.metrics {
		e.engine.Observe(mt)
	}
	e.engine.Observe(e.sizes)

	e.logger.Info("setup", "canvas", surface.String(), "maze", m.String(), "offset", offset.String(), "nodes", len(m.Nodes()))
	return nil
}

// Observe registers an extra frame observer. Call it after Setup.
func (e *Experiment) Observe(o anim.FrameObserver) {
	e.engine.Observe(o)
}

// Engine returns the engine built by Setup.
func (e *Experiment) Engine() *anim.Engine {
	return e.engine
}

// Maze returns the maze built by Setup.
func (e *Experiment) Maze() *maze.Maze {
	return e.maze
}

// Run executes the phases. Cancellation is checked between phases.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.engine == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	for i, p := range e.cfg.Phases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.runPhase(p); err != nil {
			return nil, fmt.Errorf("phase %d (%s): %w", i+1, p.Algorithm, err)
		}
		e.logger.Info("phase done", "phase", i+1, "algorithm", p.Algorithm, "frames", e.engine.Frames(), "bytes", e.surface.Len())
	}

	return &Result{
		Surface:  e.surface,
		Maze:     e.maze,
		Frames:   e.engine.Frames(),
		Sizes:    e.sizes.Sizes(),
		Duration: e.sizes.Duration(),
		Metrics:  metrics.Collect(e.metrics),
	}, nil
}

func (e *Experiment) runPhase(p config.Phase) error {
	algo, err := e.registry.Get(p.Algorithm)
	if err != nil {
		return err
	}

	if err := e.engine.SetControl(phaseControl(p)...); err != nil {
		return err
	}
	if p.Colormap != nil {
		e.engine.SetColormap(p.Colormap)
	}
	if p.MinCodeLength != 0 {
		e.surface.SetCompression(p.MinCodeLength)
	}

	if p.PadBefore > 0 {
		if err := e.engine.PadDelay(p.PadBefore); err != nil {
			return err
		}
	}
	if p.ClearRegion != nil {
		r := e.cfg.MazeRegion()
		if err := e.surface.Rectangle(r.Left, r.Top, r.Right-r.Left+1, r.Bottom-r.Top+1, *p.ClearRegion); err != nil {
			return err
		}
	}

	err = algo(Env{
		Maze:      e.maze,
		Refresher: e.engine,
		Rand:      e.randSource,
		NumColors: e.surface.NumColors(),
	})
	if err != nil {
		return err
	}

	if p.PadAfter > 0 {
		return e.engine.PadDelay(p.PadAfter)
	}
	return nil
}

func phaseControl(p config.Phase) []anim.Option {
	var opts []anim.Option
	if p.Speed > 0 {
		opts = append(opts, anim.Speed(p.Speed))
	}
	if p.Delay != nil {
		opts = append(opts, anim.Delay(*p.Delay))
	}
	if p.Transparent != nil {
		if *p.Transparent < 0 {
			opts = append(opts, anim.Opaque())
		} else {
			opts = append(opts, anim.Transparent(*p.Transparent))
		}
	}
	return opts
}
