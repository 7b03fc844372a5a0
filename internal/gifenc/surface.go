package gifenc

import (
	"bytes"
	"fmt"
	"io"
	"math/bits"
	"os"
)

const (
	MinColorDepth = 1
	MaxColorDepth = 8

	maxDimension = 0xFFFF
)

// Surface is the canvas an animation is drawn on. Frames are encoded as
// they are produced and kept in memory; the file framing is only added by
// Export, so nothing is persisted until the animation is complete.
type Surface struct {
	width, height int
	depth         int
	loop          int
	palette       []byte
	compressor    *Compressor
	frames        bytes.Buffer
}

// Option configures a Surface at construction.
type Option func(*surfaceOptions)

type surfaceOptions struct {
	loop          int
	background    int
	hasBackground bool
	palette       []byte
	minCodeLength int
}

// WithLoop sets the NETSCAPE loop count, 0 loops forever.
func WithLoop(n int) Option {
	return func(o *surfaceOptions) { o.loop = n }
}

// WithBackground paints the whole canvas with the color index as the first frame.
func WithBackground(index int) Option {
	return func(o *surfaceOptions) {
		o.background = index
		o.hasBackground = true
	}
}

// WithPalette sets the global color table, see SetPalette.
func WithPalette(colors []byte) Option {
	return func(o *surfaceOptions) { o.palette = colors }
}

// WithMinCodeLength sets the LZW code size used by Compress. It defaults
// to the color depth.
func WithMinCodeLength(n int) Option {
	return func(o *surfaceOptions) { o.minCodeLength = n }
}

// NewSurface validates the canvas size and color depth and returns an
// empty surface with a black palette.
func NewSurface(width, height, depth int, opts ...Option) (*Surface, error) {
	if err := checkRange("color depth", depth, MinColorDepth, MaxColorDepth); err != nil {
		return nil, err
	}
	if err := checkRange("width", width, 1, maxDimension); err != nil {
		return nil, err
	}
	if err := checkRange("height", height, 1, maxDimension); err != nil {
		return nil, err
	}

	o := surfaceOptions{minCodeLength: depth}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Surface{
		width:   width,
		height:  height,
		depth:   depth,
		loop:    o.loop,
		palette: make([]byte, 3<<depth),
	}
	if o.palette != nil {
		if err := s.SetPalette(o.palette); err != nil {
			return nil, err
		}
	}
	s.SetCompression(o.minCodeLength)

	if o.hasBackground {
		if err := s.Rectangle(0, 0, width, height, o.background); err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
	}
	return s, nil
}

func (s *Surface) String() string {
	return fmt.Sprintf("Surface(%dx%d, color depth: %d, loop: %d)", s.width, s.height, s.depth, s.loop)
}

// Size returns the canvas size in pixels.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

func (s *Surface) ColorDepth() int {
	return s.depth
}

// NumColors is the size of the global color table.
func (s *Surface) NumColors() int {
	return 1 << s.depth
}

// Len returns the number of frame bytes buffered so far.
func (s *Surface) Len() int {
	return s.frames.Len()
}

// Palette returns a copy of the global color table.
func (s *Surface) Palette() []byte {
	return bytes.Clone(s.palette)
}

// SetPalette sets the global color table from r,g,b,r,g,b,... bytes. The
// table needs exactly 3*2^depth bytes: extra colors are dropped, missing
// ones are an error.
func (s *Surface) SetPalette(colors []byte) error {
	need := 3 << s.depth
	if len(colors) < need {
		return fmt.Errorf("%w: got %d bytes, need %d", ErrPaletteLength, len(colors), need)
	}
	s.palette = bytes.Clone(colors[:need])
	return nil
}

// SetCompression switches the LZW code size for subsequent Compress calls,
// clamped to [2, 12].
func (s *Surface) SetCompression(minCodeLength int) {
	n := max(MinCodeLength, min(MaxCodeLength, minCodeLength))
	c, _ := NewCompressor(n) // n is in range
	s.compressor = c
}

// MinCodeLength returns the current LZW code size.
func (s *Surface) MinCodeLength() int {
	return s.compressor.MinCodeLength()
}

// Compress encodes the symbols with the surface's current compressor.
func (s *Surface) Compress(src SymbolSource) ([]byte, error) {
	return s.compressor.Compress(src)
}

// WriteRaw appends already encoded frame blocks. The bytes are not checked.
func (s *Surface) WriteRaw(p []byte) {
	s.frames.Write(p)
}

// Rectangle draws a solid sub-image. A single color compresses best with the
// smallest code size that can still express it, independent of the current
// compression setting.
func (s *Surface) Rectangle(left, top, width, height, color int) error {
	if color < 0 || color >= s.NumColors() {
		return fmt.Errorf("%w: color %d not in palette of %d", ErrSymbolRange, color, s.NumColors())
	}
	if err := s.checkRect(left, top, width, height); err != nil {
		return err
	}
	c, err := NewCompressor(max(MinCodeLength, bits.Len(uint(color))))
	if err != nil {
		return err
	}
	data, err := c.Compress(Repeat(color, width*height))
	if err != nil {
		return err
	}
	s.frames.Write(ImageDescriptor(left, top, width, height, 0))
	s.frames.Write(data)
	return nil
}

// checkRect rejects rectangles that are empty or leave the canvas.
func (s *Surface) checkRect(left, top, width, height int) error {
	if err := checkRange("left", left, 0, s.width-1); err != nil {
		return err
	}
	if err := checkRange("top", top, 0, s.height-1); err != nil {
		return err
	}
	if err := checkRange("width", width, 1, s.width-left); err != nil {
		return err
	}
	return checkRange("height", height, 1, s.height-top)
}

// Reset drops every buffered frame. Palette and settings are kept.
func (s *Surface) Reset() {
	s.frames.Reset()
}

// Export returns the complete GIF file.
func (s *Surface) Export() []byte {
	out := make([]byte, 0, 13+len(s.palette)+19+s.frames.Len()+1)
	out = append(out, ScreenDescriptor(s.width, s.height, s.depth)...)
	out = append(out, s.palette...)
	out = append(out, LoopBlock(s.loop)...)
	out = append(out, s.frames.Bytes()...)
	return append(out, trailer)
}

// WriteTo writes the exported file to w.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.Export())
	return int64(n), err
}

// Save writes the exported file to path in a single write.
func (s *Surface) Save(path string) error {
	return os.WriteFile(path, s.Export(), 0644)
}
