// Package grid defines the cell grid an animation observes.
package grid

import "fmt"

// Cell is a grid coordinate, X to the right and Y down.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Box is an inclusive rectangle of cells.
type Box struct {
	Left, Top, Right, Bottom int
}

// BoxOf returns the box holding a single cell.
func BoxOf(c Cell) Box {
	return Box{Left: c.X, Top: c.Y, Right: c.X, Bottom: c.Y}
}

// Extend grows the box to include c.
func (b Box) Extend(c Cell) Box {
	return Box{
		Left:   min(b.Left, c.X),
		Top:    min(b.Top, c.Y),
		Right:  max(b.Right, c.X),
		Bottom: max(b.Bottom, c.Y),
	}
}

func (b Box) Width() int  { return b.Right - b.Left + 1 }
func (b Box) Height() int { return b.Bottom - b.Top + 1 }

func (b Box) Contains(c Cell) bool {
	return c.X >= b.Left && c.X <= b.Right && c.Y >= b.Top && c.Y <= b.Bottom
}

func (b Box) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.Left, b.Top, b.Right, b.Bottom)
}

// Grid is a mutable cell grid that remembers what changed since the last
// reset. Every Mark increments the change count and extends the dirty box.
type Grid interface {
	Size() (width, height int)
	Cell(c Cell) int
	Mark(c Cell, value int)
	ChangeCount() int
	// DirtyBox reports the cells touched since the last reset; ok is false
	// when nothing was touched.
	DirtyBox() (box Box, ok bool)
	ResetDirty()
}

// Tracker implements the change bookkeeping of a Grid and can be embedded.
type Tracker struct {
	changes int
	box     Box
	dirty   bool
}

// Touch records a mutation of c.
func (t *Tracker) Touch(c Cell) {
	t.changes++
	if t.dirty {
		t.box = t.box.Extend(c)
		return
	}
	t.box = BoxOf(c)
	t.dirty = true
}

func (t *Tracker) ChangeCount() int {
	return t.changes
}

func (t *Tracker) DirtyBox() (Box, bool) {
	return t.box, t.dirty
}

func (t *Tracker) ResetDirty() {
	t.changes = 0
	t.box = Box{}
	t.dirty = false
}
