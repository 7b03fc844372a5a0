package algorithms

import (
	"errors"
	"fmt"

	"github.com/fangj99/gifmaze/internal/grid"
	"github.com/fangj99/gifmaze/internal/maze"
)

// ErrUnreachable is returned when a solver exhausts the maze without
// reaching the end cell.
var ErrUnreachable = errors.New("algorithms: end cell is unreachable")

// distColor maps a search distance to a color index below numColors. The
// first three indices stay reserved for walls, the tree and the path.
func distColor(dist, numColors int) int {
	return max(dist%max(1, numColors), maze.Fill)
}

type visit struct {
	cell grid.Cell
	dist int
}

// BFS floods the maze breadth first from start, coloring each cell by its
// distance, then marks the path to end.
func BFS(m *maze.Maze, r Refresher, start, end grid.Cell, numColors int) error {
	return flood(m, r, start, end, numColors, false)
}

// DFS is BFS with a stack.
func DFS(m *maze.Maze, r Refresher, start, end grid.Cell, numColors int) error {
	return flood(m, r, start, end, numColors, true)
}

func flood(m *maze.Maze, r Refresher, start, end grid.Cell, numColors int, lifo bool) error {
	cameFrom := map[grid.Cell]grid.Cell{start: start}
	pending := []visit{{start, 0}}
	m.Mark(start, distColor(0, numColors))

	for len(pending) > 0 {
		var cur visit
		if lifo {
			cur = pending[len(pending)-1]
			pending = pending[:len(pending)-1]
		} else {
			cur = pending[0]
			pending = pending[1:]
		}

		color := distColor(cur.dist, numColors)
		m.Mark(cur.cell, color)
		m.MarkSpace(cameFrom[cur.cell], cur.cell, color)

		for _, next := range m.Neighbors(cur.cell) {
			if _, seen := cameFrom[next]; seen || m.Barrier(cur.cell, next) {
				continue
			}
			cameFrom[next] = cur.cell
			pending = append(pending, visit{next, cur.dist + 1})
		}

		if err := r.Refresh(); err != nil {
			return err
		}
	}
	if err := r.Flush(); err != nil {
		return err
	}
	return showPath(m, r, cameFrom, start, end)
}

// AStar searches from start to end guided by the Manhattan distance and
// stops as soon as end is taken from the queue.
func AStar(m *maze.Maze, r Refresher, start, end grid.Cell) error {
	cameFrom := map[grid.Cell]grid.Cell{start: start}
	cost := map[grid.Cell]float64{start: 0}
	q := &edgeQueue{}
	q.push(0, start, start)

	for q.Len() > 0 {
		child := q.pop().to
		m.Mark(child, maze.Fill)
		m.MarkSpace(cameFrom[child], child, maze.Fill)
		if child == end {
			break
		}

		for _, next := range m.Neighbors(child) {
			if m.Barrier(child, next) {
				continue
			}
			c := cost[child] + 1
			if old, ok := cost[next]; ok && c >= old {
				continue
			}
			cost[next] = c
			cameFrom[next] = child
			q.push(c+float64(manhattan(next, end)), child, next)
		}

		if err := r.Refresh(); err != nil {
			return err
		}
	}
	if err := r.Flush(); err != nil {
		return err
	}
	return showPath(m, r, cameFrom, start, end)
}

func manhattan(u, v grid.Cell) int {
	return abs(u.X-v.X) + abs(u.Y-v.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func showPath(m *maze.Maze, r Refresher, cameFrom map[grid.Cell]grid.Cell, start, end grid.Cell) error {
	path, err := retrievePath(cameFrom, start, end)
	if err != nil {
		return err
	}
	m.MarkPath(path, maze.Path)
	return r.Flush()
}

// retrievePath walks cameFrom back from end. The result runs end to start.
func retrievePath(cameFrom map[grid.Cell]grid.Cell, start, end grid.Cell) ([]grid.Cell, error) {
	if _, ok := cameFrom[end]; !ok {
		return nil, fmt.Errorf("%w: %v from %v", ErrUnreachable, end, start)
	}
	path := []grid.Cell{end}
	for v := end; v != start; {
		v = cameFrom[v]
		path = append(path, v)
	}
	return path, nil
}
