// Package viz shows mazes and their animations in the terminal.
//
//   - [RenderGrid]: a grid of color indices drawn with the GIF palette
//   - [Canvas]: Braille-based canvas for compact wall drawings
//   - [Recorder] and [Player]: capture frames as the engine writes them and
//     play them back with Bubble Tea
//   - [FramePlot]: asciigraph chart of encoded frame sizes
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart
//	[ ]   - Step back/forward
//	+ -   - Faster/slower
//	Q     - Quit
package viz
