// Package anim turns the mutations of a grid into GIF frames.
//
// An [Engine] watches one grid.Grid. Algorithms mark cells and call
// [Engine.Refresh] after each step; once enough cells changed the engine
// encodes the dirty rectangle, and only that rectangle, as a new frame on
// the gifenc.Surface and resets the grid's change tracking.
//
// # Example
//
//	m, _ := maze.New(w, h, nil)
//	e, _ := anim.New(surface, m, 5, image.Pt(2, 2), anim.Speed(30), anim.Delay(2))
//	m.Mark(grid.Cell{X: 0, Y: 0}, maze.Tree)
//	_ = e.Refresh()
//	_ = e.Flush()
package anim
