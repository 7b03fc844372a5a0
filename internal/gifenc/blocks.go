package gifenc

import "encoding/binary"

const (
	signature = "GIF89a"

	extensionIntroducer = 0x21
	labelApplication    = 0xFF
	labelGraphicControl = 0xF9
	imageSeparator      = 0x2C
	trailer             = 0x3B

	appBlockSize = 11
	gcBlockSize  = 4

	// disposal method 1 (leave the frame in place), bits 2..4 of the GCE flags
	disposeNone = 1 << 2
)

// MaxDelay is the longest frame delay the graphic control block can hold,
// in hundredths of a second.
const MaxDelay = 0xFFFF

func appendUint16(b []byte, v int) []byte {
	return binary.LittleEndian.AppendUint16(b, uint16(v))
}

// ScreenDescriptor returns the signature followed by the logical screen
// descriptor. The global color table flag is always set and both the color
// resolution and table size fields carry depth-1.
func ScreenDescriptor(width, height, depth int) []byte {
	b := make([]byte, 0, 13)
	b = append(b, signature...)
	b = appendUint16(b, width)
	b = appendUint16(b, height)
	b = append(b,
		byte(0x80|(depth-1)|(depth-1)<<4), // gct flag, color resolution, gct size
		0,                                 // background color index
		0,                                 // pixel aspect ratio
	)
	return b
}

// LoopBlock returns the NETSCAPE2.0 application extension. A loop count of
// 0 repeats forever.
func LoopBlock(loop int) []byte {
	b := make([]byte, 0, 19)
	b = append(b, extensionIntroducer, labelApplication, appBlockSize)
	b = append(b, "NETSCAPE2.0"...)
	b = append(b, 3, 1) // sub-block size, loop sub-block id
	b = appendUint16(b, loop)
	return append(b, 0)
}

// GraphicControl returns the graphic control extension preceding a frame.
// transIndex < 0 means the frame has no transparent color. The delay is
// clamped to [0, MaxDelay]; transIndex must fit a byte.
func GraphicControl(delay, transIndex int) []byte {
	flags := byte(disposeNone)
	index := 0
	if transIndex >= 0 {
		flags |= 1
		index = transIndex
	}
	b := make([]byte, 0, 8)
	b = append(b, extensionIntroducer, labelGraphicControl, gcBlockSize, flags)
	b = appendUint16(b, min(max(delay, 0), MaxDelay)) // hundredths of a second
	return append(b, byte(index), 0)
}

// ImageDescriptor returns the descriptor placing a frame on the canvas.
// Callers keep the rectangle inside the canvas, see Surface.Rectangle.
func ImageDescriptor(left, top, width, height int, flags byte) []byte {
	b := make([]byte, 0, 10)
	b = append(b, imageSeparator)
	b = appendUint16(b, left)
	b = appendUint16(b, top)
	b = appendUint16(b, width)
	b = appendUint16(b, height)
	return append(b, flags)
}
