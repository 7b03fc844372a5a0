package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/fangj99/gifmaze/internal/config"
	"github.com/fangj99/gifmaze/internal/experiment"
)

// Params are the tunable knobs of a render.
const (
	ParamSpeed         = "speed"
	ParamMinCodeLength = "min_code_length"
	ParamCellSize      = "cell_size"
)

type GridSearch struct {
	paramNames []string
	ranges     [][]int
}

// Trial is one point of the grid and the metric it scored.
type Trial struct {
	Params map[string]int
	Value  float64
}

func NewGridSearch(params []string, ranges [][]int) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Apply sets params on a copy of base. Phase params apply to every phase.
func Apply(base *config.Config, params map[string]int) (*config.Config, error) {
	cfg := *base
	cfg.Phases = append([]config.Phase(nil), base.Phases...)
	for name, v := range params {
		switch name {
		case ParamSpeed:
			for i := range cfg.Phases {
				cfg.Phases[i].Speed = v
			}
		case ParamMinCodeLength:
			for i := range cfg.Phases {
				cfg.Phases[i].MinCodeLength = v
			}
		case ParamCellSize:
			cfg.CellSize = v
		default:
			return nil, fmt.Errorf("unknown parameter: %s", name)
		}
	}
	return &cfg, nil
}

// Search renders base at every grid point and returns the params with the
// lowest value of metricName, plus every trial in grid order. Points whose
// config does not validate are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Config,
	registry *experiment.Registry,
	metricName string,
) (map[string]int, float64, []Trial, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, nil, fmt.Errorf("%d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]int
	var trials []Trial

	err := g.searchRecursive(ctx, 0, make(map[string]int), func(params map[string]int) error {
		cfg, err := Apply(base, params)
		if err != nil {
			return err
		}
		exp := experiment.New(cfg, registry, nil)
		if err := exp.Setup(); err != nil {
			return nil
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("unknown metric: %s", metricName)
		}
		trials = append(trials, Trial{Params: params, Value: val})
		if val < best {
			best = val
			bestParams = params
		}
		return nil
	})
	if err != nil {
		return nil, 0, trials, err
	}
	if bestParams == nil {
		return nil, 0, trials, fmt.Errorf("no valid grid point")
	}
	return bestParams, best, trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]int,
	eval func(map[string]int) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		return eval(current)
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]int, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, eval); err != nil {
			return err
		}
	}
	return nil
}

// ParamNames lists the parameters Apply understands.
func ParamNames() []string {
	return []string{ParamCellSize, ParamMinCodeLength, ParamSpeed}
}
