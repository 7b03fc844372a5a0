package experiment

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/fangj99/gifmaze/internal/algorithms"
	"github.com/fangj99/gifmaze/internal/grid"
	"github.com/fangj99/gifmaze/internal/maze"
)

// Env is what an algorithm gets to work with during a phase.
type Env struct {
	Maze      *maze.Maze
	Refresher algorithms.Refresher
	Rand      *rand.Rand
	NumColors int
}

// Start is the first open node, End the last one.
func (e Env) Start() grid.Cell { return e.Maze.Nodes()[0] }
func (e Env) End() grid.Cell   { return e.Maze.Nodes()[len(e.Maze.Nodes())-1] }

type Algorithm func(env Env) error

type Kind string

const (
	Generator Kind = "generator"
	Solver    Kind = "solver"
)

type entry struct {
	kind Kind
	run  Algorithm
}

type Registry struct {
	algorithms map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{algorithms: make(map[string]entry)}

	r.Register("prim", Generator, func(env Env) error {
		return algorithms.Prim(env.Maze, env.Refresher, env.Rand, env.Start())
	})
	r.Register("random-dfs", Generator, func(env Env) error {
		return algorithms.RandomDFS(env.Maze, env.Refresher, env.Rand, env.Start())
	})
	r.Register("kruskal", Generator, func(env Env) error {
		return algorithms.Kruskal(env.Maze, env.Refresher, env.Rand)
	})
	r.Register("wilson", Generator, func(env Env) error {
		return algorithms.Wilson(env.Maze, env.Refresher, env.Rand, env.Start())
	})

	r.Register("bfs", Solver, func(env Env) error {
		return algorithms.BFS(env.Maze, env.Refresher, env.Start(), env.End(), env.NumColors)
	})
	r.Register("dfs", Solver, func(env Env) error {
		return algorithms.DFS(env.Maze, env.Refresher, env.Start(), env.End(), env.NumColors)
	})
	r.Register("astar", Solver, func(env Env) error {
		return algorithms.AStar(env.Maze, env.Refresher, env.Start(), env.End())
	})

	return r
}

// Register adds or replaces an algorithm.
func (r *Registry) Register(name string, kind Kind, fn Algorithm) {
	r.algorithms[name] = entry{kind: kind, run: fn}
}

func (r *Registry) Get(name string) (Algorithm, error) {
	e, ok := r.algorithms[name]
	if !ok {
		return nil, fmt.Errorf("unknown algorithm: %s", name)
	}
	return e.run, nil
}

func (r *Registry) Kind(name string) (Kind, bool) {
	e, ok := r.algorithms[name]
	return e.kind, ok
}

// List returns the algorithm names of a kind, or all names when kind is
// empty, sorted.
func (r *Registry) List(kind Kind) []string {
	names := make([]string, 0, len(r.algorithms))
	for name, e := range r.algorithms {
		if kind == "" || e.kind == kind {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
