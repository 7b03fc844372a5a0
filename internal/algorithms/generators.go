package algorithms

import (
	"math/rand"
	"slices"
	"sort"

	"github.com/fangj99/gifmaze/internal/grid"
	"github.com/fangj99/gifmaze/internal/maze"
)

// Prim grows a spanning tree from start, always taking the lightest edge
// leaving the tree. Edge weights are drawn only when an edge is reached.
func Prim(m *maze.Maze, r Refresher, rng *rand.Rand, start grid.Cell) error {
	q := &edgeQueue{}
	for _, v := range m.Neighbors(start) {
		q.push(0, start, v)
	}
	m.Mark(start, maze.Tree)

	for q.Len() > 0 {
		e := q.pop()
		if m.InTree(e.to) {
			continue
		}
		m.Mark(e.to, maze.Tree)
		m.MarkSpace(e.from, e.to, maze.Tree)
		for _, v := range m.Neighbors(e.to) {
			q.push(rng.Float64(), e.to, v)
		}
		if err := r.Refresh(); err != nil {
			return err
		}
	}
	return r.Flush()
}

// RandomDFS carves the maze with a randomized depth-first search.
func RandomDFS(m *maze.Maze, r Refresher, rng *rand.Rand, start grid.Cell) error {
	type step struct{ from, to grid.Cell }

	var stack []step
	for _, v := range m.Neighbors(start) {
		stack = append(stack, step{start, v})
	}
	m.Mark(start, maze.Tree)

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if m.InTree(s.to) {
			continue
		}
		m.Mark(s.to, maze.Tree)
		m.MarkSpace(s.from, s.to, maze.Tree)

		nb := slices.Clone(m.Neighbors(s.to))
		rng.Shuffle(len(nb), func(i, j int) { nb[i], nb[j] = nb[j], nb[i] })
		for _, v := range nb {
			stack = append(stack, step{s.to, v})
		}
		if err := r.Refresh(); err != nil {
			return err
		}
	}
	return r.Flush()
}

// Kruskal joins random edges whose endpoints are still in different trees,
// tracked with a union-find forest.
func Kruskal(m *maze.Maze, r Refresher, rng *rand.Rand) error {
	parent := make(map[grid.Cell]grid.Cell, len(m.Nodes()))
	rank := make(map[grid.Cell]int, len(m.Nodes()))
	for _, v := range m.Nodes() {
		parent[v] = v
	}

	find := func(v grid.Cell) grid.Cell {
		for parent[v] != v {
			parent[v] = parent[parent[v]]
			v = parent[v]
		}
		return v
	}

	var edges []edge
	for _, u := range m.Nodes() {
		for _, v := range m.Neighbors(u) {
			if u.X < v.X || (u.X == v.X && u.Y < v.Y) {
				edges = append(edges, edge{priority: rng.Float64(), from: u, to: v})
			}
		}
	}
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].priority < edges[j].priority })

	for _, e := range edges {
		r1, r2 := find(e.from), find(e.to)
		if r1 == r2 {
			continue
		}
		switch {
		case rank[r1] > rank[r2]:
			parent[r2] = r1
		case rank[r1] < rank[r2]:
			parent[r1] = r2
		default:
			parent[r1] = r2
			rank[r2]++
		}

		m.Mark(e.from, maze.Tree)
		m.Mark(e.to, maze.Tree)
		m.MarkSpace(e.from, e.to, maze.Tree)
		if err := r.Refresh(); err != nil {
			return err
		}
	}
	return r.Flush()
}

// Wilson builds a uniform spanning tree with loop-erased random walks:
// from every node outside the tree, walk randomly until the tree is hit,
// erasing loops as they form, then add the walk to the tree.
func Wilson(m *maze.Maze, r Refresher, rng *rand.Rand, root grid.Cell) error {
	var walk []grid.Cell

	extend := func(c grid.Cell) {
		m.Mark(c, maze.Path)
		m.MarkSpace(walk[len(walk)-1], c, maze.Path)
		walk = append(walk, c)
	}
	eraseLoop := func(c grid.Cell) {
		i := slices.Index(walk, c)
		m.MarkPath(walk[i:], maze.Wall)
		m.Mark(walk[i], maze.Path)
		walk = walk[:i+1]
	}

	m.Mark(root, maze.Tree)

	for _, start := range m.Nodes() {
		if m.InTree(start) {
			continue
		}
		walk = []grid.Cell{start}
		m.Mark(start, maze.Path)
		cur := start

		for !m.InTree(cur) {
			nb := m.Neighbors(cur)
			next := nb[rng.Intn(len(nb))]
			switch {
			case m.InPath(next):
				eraseLoop(next)
			case m.InTree(next):
				extend(next)
				m.Mark(next, maze.Tree)
			default:
				extend(next)
			}
			cur = next

			if err := r.Refresh(); err != nil {
				return err
			}
		}
		m.MarkPath(walk, maze.Tree)
	}
	return r.Flush()
}
