package metrics

import "github.com/fangj99/gifmaze/internal/anim"

// Coverage counts the pixels redrawn across all frames. Overlapping frames
// count twice.
type Coverage struct {
	pixels int
}

func NewCoverage() *Coverage { return &Coverage{} }

func (c *Coverage) Name() string { return "pixels_drawn" }

func (c *Coverage) OnFrame(f anim.FrameInfo) {
	c.pixels += f.Rect.Dx() * f.Rect.Dy()
}

func (c *Coverage) Value() float64 { return float64(c.pixels) }
func (c *Coverage) Reset()         { c.pixels = 0 }

// BytesPerPixel is the compression density: encoded bytes per drawn pixel.
type BytesPerPixel struct {
	bytes, pixels int
}

func NewBytesPerPixel() *BytesPerPixel { return &BytesPerPixel{} }

func (b *BytesPerPixel) Name() string { return "bytes_per_pixel" }

func (b *BytesPerPixel) OnFrame(f anim.FrameInfo) {
	b.bytes += f.Bytes
	b.pixels += f.Rect.Dx() * f.Rect.Dy()
}

func (b *BytesPerPixel) Value() float64 {
	if b.pixels == 0 {
		return 0
	}
	return float64(b.bytes) / float64(b.pixels)
}

func (b *BytesPerPixel) Reset() {
	b.bytes = 0
	b.pixels = 0
}
