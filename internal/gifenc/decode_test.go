package gifenc

import (
	"slices"
	"testing"
)

// unblock joins the payload of a sub-block sequence that ends with a
// zero-length block.
func unblock(t *testing.T, data []byte) []byte {
	t.Helper()
	var out []byte
	for i := 0; ; {
		if i >= len(data) {
			t.Fatalf("missing block terminator")
		}
		n := int(data[i])
		i++
		if n == 0 {
			if i != len(data) {
				t.Fatalf("%d bytes after block terminator", len(data)-i)
			}
			return out
		}
		if i+n > len(data) {
			t.Fatalf("sub-block of %d bytes overruns data", n)
		}
		out = append(out, data[i:i+n]...)
		i += n
	}
}

type bitReader struct {
	data  []byte
	pos   int
	accum uint64
	nacc  uint
}

func (r *bitReader) read(width int) (int, bool) {
	for r.nacc < uint(width) {
		if r.pos >= len(r.data) {
			return 0, false
		}
		r.accum |= uint64(r.data[r.pos]) << r.nacc
		r.pos++
		r.nacc += 8
	}
	v := int(r.accum & (1<<uint(width) - 1))
	r.accum >>= uint(width)
	r.nacc -= uint(width)
	return v, true
}

// lzwTrace records what the reference decoder saw besides the symbols.
type lzwTrace struct {
	widths  [][]int // code widths per dictionary lifetime
	maxDict int
	clears  int // clear codes, including the leading one
}

// decodeLZW is a plain GIF LZW decoder used as the reference for the
// compressor. It accepts any minimum code length in [2, 12].
func decodeLZW(t *testing.T, block []byte) ([]int, lzwTrace) {
	t.Helper()
	if len(block) == 0 {
		t.Fatal("empty data block")
	}
	mcl := int(block[0])
	r := &bitReader{data: unblock(t, block[1:])}

	clearCode := 1 << mcl
	endCode := clearCode + 1

	var (
		dict  [][]int
		width int
		prev  []int
		out   = []int{}
		trace lzwTrace
	)
	reset := func() {
		dict = make([][]int, endCode+1)
		for i := 0; i < clearCode; i++ {
			dict[i] = []int{i}
		}
		width = mcl + 1
		prev = nil
		trace.widths = append(trace.widths, nil)
	}
	reset()

	first := true
	for {
		code, ok := r.read(width)
		if !ok {
			t.Fatal("stream ended before end code")
		}
		cur := len(trace.widths) - 1
		trace.widths[cur] = append(trace.widths[cur], width)

		if first {
			if code != clearCode {
				t.Fatalf("stream starts with %d, want clear code %d", code, clearCode)
			}
			first = false
		}
		if code == clearCode {
			trace.clears++
			reset()
			continue
		}
		if code == endCode {
			break
		}

		var entry []int
		switch {
		case code < len(dict) && dict[code] != nil:
			entry = dict[code]
		case code == len(dict) && prev != nil:
			entry = append(slices.Clone(prev), prev[0])
		default:
			t.Fatalf("invalid code %d with %d entries", code, len(dict))
		}
		out = append(out, entry...)

		if prev != nil && len(dict) < maxTableSize {
			dict = append(dict, append(slices.Clone(prev), entry[0]))
		}
		trace.maxDict = max(trace.maxDict, len(dict))
		prev = entry
		if len(dict) == 1<<uint(width) && width < maxCodeWidth {
			width++
		}
	}
	return out, trace
}
