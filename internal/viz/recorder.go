package viz

import (
	"github.com/fangj99/gifmaze/internal/anim"
	"github.com/fangj99/gifmaze/internal/grid"
)

// CellSource is the grid a Recorder reads cell states from.
type CellSource interface {
	Size() (width, height int)
	Cell(c grid.Cell) int
}

// Frame is the composed picture after a frame was shown.
type Frame struct {
	Colors [][]int // color indices, row by row
	Info   anim.FrameInfo
}

// Recorder composes frames the way a GIF viewer does: each frame repaints
// its box, except for cells in the frame's transparent color, and earlier
// pixels stay put.
type Recorder struct {
	src      CellSource
	colormap func() map[int]int
	stride   int

	canvas  [][]int
	frames  []Frame
	last    anim.FrameInfo
	pending bool
}

// NewRecorder starts from a grid filled with the background color and
// keeps every stride-th frame.
func NewRecorder(src CellSource, colormap func() map[int]int, background, stride int) *Recorder {
	w, h := src.Size()
	canvas := make([][]int, h)
	for y := range canvas {
		canvas[y] = make([]int, w)
		for x := range canvas[y] {
			canvas[y][x] = background
		}
	}
	return &Recorder{
		src:      src,
		colormap: colormap,
		stride:   max(1, stride),
		canvas:   canvas,
	}
}

func (r *Recorder) OnFrame(f anim.FrameInfo) {
	r.last = f
	if !f.Pad {
		cmap := r.colormap()
		for y := f.Box.Top; y <= f.Box.Bottom; y++ {
			for x := f.Box.Left; x <= f.Box.Right; x++ {
				v := r.src.Cell(grid.Cell{X: x, Y: y})
				if c, ok := cmap[v]; ok {
					v = c
				}
				if v == f.Transparent {
					continue
				}
				r.canvas[y][x] = v
			}
		}
	}
	r.pending = true
	if f.Index%r.stride == 0 {
		r.snapshot()
	}
}

func (r *Recorder) snapshot() {
	colors := make([][]int, len(r.canvas))
	for y, row := range r.canvas {
		colors[y] = append([]int(nil), row...)
	}
	r.frames = append(r.frames, Frame{Colors: colors, Info: r.last})
	r.pending = false
}

// Frames returns the recorded frames, always ending with the latest state.
func (r *Recorder) Frames() []Frame {
	if r.pending {
		r.snapshot()
	}
	return r.frames
}

// Current returns the composed picture so far. The slice is shared.
func (r *Recorder) Current() [][]int {
	return r.canvas
}
