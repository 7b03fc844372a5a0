package anim

import (
	"fmt"
	"image"
	"log/slog"
	"maps"

	"github.com/fangj99/gifmaze/internal/gifenc"
	"github.com/fangj99/gifmaze/internal/grid"
)

const (
	DefaultSpeed = 10
	DefaultDelay = 5

	noTransparency = -1
)

// FrameInfo describes an emitted frame.
type FrameInfo struct {
	Index int
	Box   grid.Box        // cells covered
	Rect  image.Rectangle // pixels covered
	Bytes int             // encoded size, control block included
	Delay int

	// Transparent is the transparent color index of the frame, or -1.
	Transparent int
	// Pad is set for delay-only frames that draw nothing.
	Pad         bool
}

// FrameObserver is notified after every frame the engine writes.
type FrameObserver interface {
	OnFrame(f FrameInfo)
}

// Engine renders a grid onto a surface, one dirty rectangle at a time.
type Engine struct {
	surface  *gifenc.Surface
	grid     grid.Grid
	cellSize int
	offset   image.Point

	speed      int
	delay      int
	transIndex int
	colormap   map[int]int

	frames    int
	lastBytes int
	observers []FrameObserver
	logger    *slog.Logger
}

// Option adjusts playback settings, see New and SetControl.
type Option func(*Engine)

// Speed sets how many cell changes trigger a frame.
func Speed(n int) Option {
	return func(e *Engine) { e.speed = max(1, n) }
}

// Delay sets the frame delay in hundredths of a second, clamped to
// [0, gifenc.MaxDelay].
func Delay(d int) Option {
	return func(e *Engine) { e.delay = clampDelay(d) }
}

// Transparent marks a color index as transparent in subsequent frames. A
// negative index is the same as Opaque; an index outside the color table
// is rejected by New and SetControl.
func Transparent(index int) Option {
	return func(e *Engine) { e.transIndex = max(noTransparency, index) }
}

// Opaque clears the transparent color.
func Opaque() Option {
	return func(e *Engine) { e.transIndex = noTransparency }
}

// WithLogger traces frame emission at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New binds g to the surface. Each cell is drawn as a cellSize square and
// the grid's top-left corner is placed at offset.
func New(surface *gifenc.Surface, g grid.Grid, cellSize int, offset image.Point, opts ...Option) (*Engine, error) {
	e := &Engine{
		surface:    surface,
		grid:       g,
		cellSize:   max(1, cellSize),
		offset:     offset,
		speed:      DefaultSpeed,
		delay:      DefaultDelay,
		transIndex: noTransparency,
		colormap:   make(map[int]int, surface.NumColors()),
		logger:     slog.New(slog.DiscardHandler),
	}
	for i := 0; i < surface.NumColors(); i++ {
		e.colormap[i] = i
	}
	if err := e.SetControl(opts...); err != nil {
		return nil, err
	}
	return e, nil
}

// SetControl applies settings; unmentioned settings keep their values. If
// the result is invalid nothing is changed.
func (e *Engine) SetControl(opts ...Option) error {
	next := *e
	for _, opt := range opts {
		opt(&next)
	}
	if next.transIndex >= e.surface.NumColors() {
		return &gifenc.ConfigError{Field: "transparent index", Value: next.transIndex, Min: 0, Max: e.surface.NumColors() - 1}
	}
	*e = next
	return nil
}

func clampDelay(d int) int {
	return min(max(0, d), gifenc.MaxDelay)
}

// SetColormap merges cell value to color index entries into the colormap.
func (e *Engine) SetColormap(cmap map[int]int) {
	maps.Copy(e.colormap, cmap)
}

// Colormap returns a copy of the current colormap.
func (e *Engine) Colormap() map[int]int {
	return maps.Clone(e.colormap)
}

// Grid returns the bound grid.
func (e *Engine) Grid() grid.Grid {
	return e.grid
}

// Surface returns the surface frames are written to.
func (e *Engine) Surface() *gifenc.Surface {
	return e.surface
}

// Frames returns the number of frames written so far.
func (e *Engine) Frames() int {
	return e.frames
}

// Observe registers o for frame notifications.
func (e *Engine) Observe(o FrameObserver) {
	e.observers = append(e.observers, o)
}

// Refresh writes a frame once the grid has accumulated enough changes.
// Algorithms call it after every step.
func (e *Engine) Refresh() error {
	if e.grid.ChangeCount() >= e.speed {
		return e.encodeFrame()
	}
	return nil
}

// Flush writes the pending changes, if any, regardless of speed. Call it
// when an algorithm finishes so the last partial frame is not lost.
func (e *Engine) Flush() error {
	if e.grid.ChangeCount() > 0 {
		return e.encodeFrame()
	}
	return nil
}

// PadDelay writes an invisible 1x1 frame that only holds the animation for
// delay hundredths of a second, clamped like Delay. Without a configured
// transparent color, index 0 is declared transparent for this frame.
func (e *Engine) PadDelay(delay int) error {
	delay = clampDelay(delay)
	trans := e.transIndex
	if trans == noTransparency {
		trans = 0
	}
	data, err := e.surface.Compress(gifenc.Repeat(trans, 1))
	if err != nil {
		return fmt.Errorf("pad frame: %w", err)
	}
	e.write(gifenc.GraphicControl(delay, trans), gifenc.ImageDescriptor(0, 0, 1, 1, 0), data)
	e.notify(FrameInfo{
		Index: e.frames - 1,
		Rect:  image.Rect(0, 0, 1, 1),
		Bytes: e.lastBytes,
		Delay: delay,

		Transparent: trans,
		Pad:         true,
	})
	return nil
}

// Rect converts a box of cells to the pixel rectangle it occupies.
func (e *Engine) Rect(b grid.Box) image.Rectangle {
	origin := image.Pt(b.Left*e.cellSize, b.Top*e.cellSize).Add(e.offset)
	return image.Rectangle{
		Min: origin,
		Max: origin.Add(image.Pt(b.Width()*e.cellSize, b.Height()*e.cellSize)),
	}
}

func (e *Engine) encodeFrame() error {
	box, ok := e.grid.DirtyBox()
	if !ok {
		w, h := e.grid.Size()
		box = grid.Box{Right: w - 1, Bottom: h - 1}
	}
	rect := e.Rect(box)

	data, err := e.surface.Compress(e.pixels(box))
	if err != nil {
		return fmt.Errorf("frame %d %v: %w", e.frames, box, err)
	}
	e.write(
		gifenc.GraphicControl(e.delay, e.transIndex),
		gifenc.ImageDescriptor(rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy(), 0),
		data,
	)
	e.grid.ResetDirty()

	e.logger.Debug("frame", "index", e.frames-1, "box", box.String(), "bytes", e.lastBytes)
	e.notify(FrameInfo{
		Index: e.frames - 1,
		Box:   box,
		Rect:  rect,
		Bytes: e.lastBytes,
		Delay: e.delay,

		Transparent: e.transIndex,
	})
	return nil
}

func (e *Engine) write(blocks ...[]byte) {
	n := 0
	for _, b := range blocks {
		e.surface.WriteRaw(b)
		n += len(b)
	}
	e.lastBytes = n
	e.frames++
}

func (e *Engine) notify(f FrameInfo) {
	for _, o := range e.observers {
		o.OnFrame(f)
	}
}
