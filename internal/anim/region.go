package anim

import "image"

// Region is an inclusive pixel rectangle on the canvas.
type Region struct {
	Left, Top, Right, Bottom int
}

// Inset returns the region of a width x height canvas with pad pixels
// left free on every side.
func Inset(width, height, pad int) Region {
	return Region{Left: pad, Top: pad, Right: width - pad - 1, Bottom: height - pad - 1}
}

// FitRegion returns the largest odd maze size whose cells of cellSize
// pixels fit in r, and where to place it. When a dimension has to drop a
// cell to become odd, the maze is centered along it.
func FitRegion(cellSize int, r Region) (width, height int, offset image.Point) {
	left, top := r.Left, r.Top

	w, rem := (r.Right-r.Left+1)/cellSize, (r.Right-r.Left+1)%cellSize
	if w%2 == 0 {
		w--
		left += (cellSize + rem) / 2
	}

	h, rem := (r.Bottom-r.Top+1)/cellSize, (r.Bottom-r.Top+1)%cellSize
	if h%2 == 0 {
		h--
		top += (cellSize + rem) / 2
	}
	return w, h, image.Pt(left, top)
}
