// Package gifenc writes palette-indexed GIF89a animations.
//
// The package is built from three layers:
//
//   - [BitPacker]: LSB-first variable-width code writer with 255-byte sub-blocks
//   - [Compressor]: the GIF flavour of LZW, including the in-band clear at 4096 codes
//   - [Surface]: global framing (screen descriptor, color table, loop extension,
//     trailer) around an append-only buffer of encoded frames
//
// # Example
//
//	s, _ := gifenc.NewSurface(100, 100, 1, gifenc.WithPalette([]byte{255, 0, 0, 0, 0, 0}))
//	s.Rectangle(0, 0, 100, 100, 0)
//	_ = s.Save("red.gif")
//
// # Thread Safety
//
// Surface and Compressor are NOT safe for concurrent use. Every operation runs
// to completion on the caller's goroutine.
package gifenc
