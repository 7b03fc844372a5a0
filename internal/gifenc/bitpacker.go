package gifenc

// maxSubBlock is the largest payload a single GIF data sub-block can carry.
const maxSubBlock = 255

// BitPacker accumulates variable-width codes into a byte stream, least
// significant bit first, the order GIF decoders read them in.
type BitPacker struct {
	buf   []byte
	accum uint64 // pending bits not yet forming a whole byte
	nacc  uint
	nbits int
}

// NewBitPacker returns an empty packer.
func NewBitPacker() *BitPacker {
	return &BitPacker{buf: make([]byte, 0, maxSubBlock)}
}

// Append writes the width low-order bits of code. Widths up to 32 are supported.
func (p *BitPacker) Append(code, width int) {
	if width <= 0 {
		return
	}
	mask := uint64(1)<<uint(width) - 1
	p.accum |= (uint64(code) & mask) << p.nacc
	p.nacc += uint(width)
	p.nbits += width

	for p.nacc >= 8 {
		p.buf = append(p.buf, byte(p.accum))
		p.accum >>= 8
		p.nacc -= 8
	}
}

// Len returns the number of bits appended since the last Flush.
func (p *BitPacker) Len() int {
	return p.nbits
}

// Flush packs the stream into length-prefixed sub-blocks and resets the
// packer. An empty packer flushes to nil. The zero-length block terminator
// is not written.
func (p *BitPacker) Flush() []byte {
	if p.nacc > 0 {
		p.buf = append(p.buf, byte(p.accum))
	}
	data := p.buf

	p.buf = make([]byte, 0, maxSubBlock)
	p.accum, p.nacc, p.nbits = 0, 0, 0

	if len(data) == 0 {
		return nil
	}

	nblocks := (len(data) + maxSubBlock - 1) / maxSubBlock
	out := make([]byte, 0, len(data)+nblocks)
	for len(data) > 0 {
		n := len(data)
		if n > maxSubBlock {
			n = maxSubBlock
		}
		out = append(out, byte(n))
		out = append(out, data[:n]...)
		data = data[n:]
	}
	return out
}
