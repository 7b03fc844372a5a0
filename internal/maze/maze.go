// Package maze provides the grid the maze algorithms draw on.
//
// A maze of width w and height h (both odd) is a grid of cells where the
// graph nodes sit on even coordinates and the cells between two adjacent
// nodes are the walls that get knocked down. Initially every cell is a wall.
package maze

import (
	"errors"
	"fmt"

	"github.com/fangj99/gifmaze/internal/grid"
)

// Cell states.
const (
	Wall = 0
	Tree = 1
	Path = 2
	Fill = 3
)

// ErrDimension indicates a maze size the node lattice cannot fit.
var ErrDimension = errors.New("maze: width and height must both be odd and positive")

// Maze is a grid.Grid with a graph of nodes spaced two cells apart.
type Maze struct {
	grid.Tracker

	width, height int
	cells         [][]int // indexed [x][y]
	nodes         []grid.Cell
	graph         map[grid.Cell][]grid.Cell
}

// New builds a maze. Nodes where mask is closed are left out of the graph;
// the caller must keep the remaining nodes connected. A nil mask keeps
// every node.
func New(width, height int, mask Mask) (*Maze, error) {
	if width <= 0 || height <= 0 || width%2 == 0 || height%2 == 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrDimension, width, height)
	}

	m := &Maze{
		width:  width,
		height: height,
		cells:  make([][]int, width),
		graph:  make(map[grid.Cell][]grid.Cell),
	}
	for x := range m.cells {
		m.cells[x] = make([]int, height)
	}

	open := func(c grid.Cell) bool {
		return mask == nil || mask.Open(c, width, height)
	}

	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x += 2 {
			c := grid.Cell{X: x, Y: y}
			if open(c) {
				m.nodes = append(m.nodes, c)
			}
		}
	}

	for _, v := range m.nodes {
		var nb []grid.Cell
		for _, c := range []grid.Cell{
			{X: v.X - 2, Y: v.Y},
			{X: v.X, Y: v.Y - 2},
			{X: v.X + 2, Y: v.Y},
			{X: v.X, Y: v.Y + 2},
		} {
			if c.X >= 0 && c.Y >= 0 && c.X < width && c.Y < height && open(c) {
				nb = append(nb, c)
			}
		}
		m.graph[v] = nb
	}
	return m, nil
}

func (m *Maze) String() string {
	return fmt.Sprintf("Maze(%dx%d)", m.width, m.height)
}

func (m *Maze) Size() (int, int) {
	return m.width, m.height
}

// Nodes returns the graph nodes in row-major order.
func (m *Maze) Nodes() []grid.Cell {
	return m.nodes
}

// Neighbors returns the nodes adjacent to c. The slice is shared; callers
// that reorder it must copy first.
func (m *Maze) Neighbors(c grid.Cell) []grid.Cell {
	return m.graph[c]
}

func (m *Maze) Cell(c grid.Cell) int {
	return m.cells[c.X][c.Y]
}

// Mark sets a cell and records the change.
func (m *Maze) Mark(c grid.Cell, value int) {
	m.cells[c.X][c.Y] = value
	m.Touch(c)
}

// MarkSpace marks the cell between two adjacent nodes.
func (m *Maze) MarkSpace(a, b grid.Cell, value int) {
	m.Mark(between(a, b), value)
}

// MarkPath marks the nodes of a path and the spaces between them.
func (m *Maze) MarkPath(path []grid.Cell, value int) {
	for _, c := range path {
		m.Mark(c, value)
	}
	for i := 1; i < len(path); i++ {
		m.MarkSpace(path[i], path[i-1], value)
	}
}

// Barrier reports whether the wall between two adjacent nodes still stands.
func (m *Maze) Barrier(a, b grid.Cell) bool {
	return m.Cell(between(a, b)) == Wall
}

func (m *Maze) IsWall(c grid.Cell) bool { return m.Cell(c) == Wall }
func (m *Maze) InTree(c grid.Cell) bool { return m.Cell(c) == Tree }
func (m *Maze) InPath(c grid.Cell) bool { return m.Cell(c) == Path }

// Connected reports whether every node can reach every other node through
// the lattice, ignoring walls. Spanning tree algorithms need this.
func (m *Maze) Connected() bool {
	if len(m.nodes) == 0 {
		return false
	}
	seen := map[grid.Cell]bool{m.nodes[0]: true}
	stack := []grid.Cell{m.nodes[0]}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, u := range m.graph[v] {
			if !seen[u] {
				seen[u] = true
				stack = append(stack, u)
			}
		}
	}
	return len(seen) == len(m.nodes)
}

// Snapshot copies the cell values row by row.
func (m *Maze) Snapshot() [][]int {
	rows := make([][]int, m.height)
	for y := range rows {
		rows[y] = make([]int, m.width)
		for x := range rows[y] {
			rows[y][x] = m.cells[x][y]
		}
	}
	return rows
}

func between(a, b grid.Cell) grid.Cell {
	return grid.Cell{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
