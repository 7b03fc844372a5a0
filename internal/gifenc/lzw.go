package gifenc

import "fmt"

const (
	// MinCodeLength and MaxCodeLength bound the LZW minimum code size byte.
	MinCodeLength = 2
	MaxCodeLength = 12

	maxCodeWidth = 12
	maxTableSize = 1 << maxCodeWidth
)

// SymbolSource yields the pixels of one frame. Sources are consumed once.
type SymbolSource interface {
	Next() (sym int, ok bool)
}

type sliceSource struct {
	data []byte
	pos  int
}

func (s *sliceSource) Next() (int, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	v := s.data[s.pos]
	s.pos++
	return int(v), true
}

// Bytes adapts a pixel slice to a SymbolSource.
func Bytes(pixels []byte) SymbolSource {
	return &sliceSource{data: pixels}
}

type repeatSource struct {
	sym, remaining int
}

func (s *repeatSource) Next() (int, bool) {
	if s.remaining <= 0 {
		return 0, false
	}
	s.remaining--
	return s.sym, true
}

// Repeat yields sym n times.
func Repeat(sym, n int) SymbolSource {
	return &repeatSource{sym: sym, remaining: n}
}

// Compressor is the LZW variant mandated by GIF89a: codes start one bit
// wider than the minimum code length, grow up to 12 bits, and the table is
// cleared in-band once 4096 codes have been assigned.
type Compressor struct {
	minCodeLength int
	clearCode     int
	endCode       int
	packer        *BitPacker
}

// NewCompressor returns a compressor for symbols in [0, 2^minCodeLength).
func NewCompressor(minCodeLength int) (*Compressor, error) {
	if err := checkRange("min code length", minCodeLength, MinCodeLength, MaxCodeLength); err != nil {
		return nil, err
	}
	clearCode := 1 << minCodeLength
	return &Compressor{
		minCodeLength: minCodeLength,
		clearCode:     clearCode,
		endCode:       clearCode + 1,
		packer:        NewBitPacker(),
	}, nil
}

// MinCodeLength returns the code size byte written before the data.
func (c *Compressor) MinCodeLength() int {
	return c.minCodeLength
}

// Compress encodes src as a complete GIF image data block: the minimum code
// size byte, the sub-blocks, and the zero-length terminator.
func (c *Compressor) Compress(src SymbolSource) ([]byte, error) {
	alphabet := c.clearCode
	width := c.minCodeLength + 1
	next := c.endCode + 1

	// A pattern is identified by the code of its prefix plus its last
	// symbol; single-symbol patterns are their own codes and never stored.
	table := make(map[uint32]int)
	key := func(prefix, sym int) uint32 {
		return uint32(prefix)<<maxCodeWidth | uint32(sym)
	}

	p := c.packer
	p.Append(c.clearCode, width)

	ent := -1 // code of the current pattern, -1 while empty
	for {
		sym, ok := src.Next()
		if !ok {
			break
		}
		if sym < 0 || sym >= alphabet {
			p.Flush()
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrSymbolRange, sym, alphabet)
		}
		if ent < 0 {
			ent = sym
			continue
		}
		if code, found := table[key(ent, sym)]; found {
			ent = code
			continue
		}

		p.Append(ent, width)
		if next < maxTableSize {
			table[key(ent, sym)] = next
			next++
			if next == 1<<width+1 && width < maxCodeWidth {
				width++
			}
			if next == maxTableSize {
				p.Append(c.clearCode, width)
				width = c.minCodeLength + 1
				clear(table)
				next = c.endCode + 1
			}
		}
		ent = sym
	}

	if ent >= 0 {
		p.Append(ent, width)
	}
	p.Append(c.endCode, width)

	blocks := p.Flush()
	out := make([]byte, 0, len(blocks)+2)
	out = append(out, byte(c.minCodeLength))
	out = append(out, blocks...)
	out = append(out, 0)
	return out, nil
}
