// Package algorithms generates and solves mazes while an animation watches.
//
// Every algorithm marks cells on a *maze.Maze and calls Refresh on the
// given [Refresher] after each step, then Flush once it is done so the
// final partial frame is written. The maze never knows about the animation.
package algorithms
