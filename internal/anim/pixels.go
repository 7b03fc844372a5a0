package anim

import "github.com/fangj99/gifmaze/internal/grid"

// pixelSource walks the pixels of a box row by row, mapping each pixel to
// the color of the cell it falls in. It is created per frame and read once.
type pixelSource struct {
	g        grid.Grid
	colormap map[int]int
	box      grid.Box
	cellSize int

	x, y       int // current cell
	subX, subY int // pixel offset inside the cell
	done       bool
}

func (e *Engine) pixels(box grid.Box) *pixelSource {
	return &pixelSource{
		g:        e.grid,
		colormap: e.colormap,
		box:      box,
		cellSize: e.cellSize,
		x:        box.Left,
		y:        box.Top,
	}
}

func (p *pixelSource) Next() (int, bool) {
	if p.done {
		return 0, false
	}

	v := p.g.Cell(grid.Cell{X: p.x, Y: p.y})
	color, ok := p.colormap[v]
	if !ok {
		color = v
	}

	p.subX++
	if p.subX == p.cellSize {
		p.subX = 0
		p.x++
		if p.x > p.box.Right {
			p.x = p.box.Left
			p.subY++
			if p.subY == p.cellSize {
				p.subY = 0
				p.y++
				p.done = p.y > p.box.Bottom
			}
		}
	}
	return color, true
}
