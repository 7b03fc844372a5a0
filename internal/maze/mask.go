package maze

import "github.com/fangj99/gifmaze/internal/grid"

// Mask decides which nodes take part in the maze. Open receives the maze
// size so a mask can be scaled to it.
type Mask interface {
	Open(c grid.Cell, width, height int) bool
}

// TextMask is a mask drawn with characters: '#' closes a cell, anything
// else leaves it open. It is stretched over the maze with nearest-neighbour
// sampling, so a small drawing can cover a large maze.
type TextMask []string

func (t TextMask) Open(c grid.Cell, width, height int) bool {
	if len(t) == 0 {
		return true
	}
	row := t[c.Y*len(t)/height]
	if len(row) == 0 {
		return true
	}
	return row[c.X*len(row)/width] != '#'
}
