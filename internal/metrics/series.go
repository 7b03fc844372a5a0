package metrics

import "github.com/fangj99/gifmaze/internal/anim"

// FrameSizes keeps the encoded size of every frame in order.
type FrameSizes struct {
	sizes  []int
	delays []int
}

func NewFrameSizes() *FrameSizes { return &FrameSizes{} }

func (s *FrameSizes) OnFrame(f anim.FrameInfo) {
	s.sizes = append(s.sizes, f.Bytes)
	s.delays = append(s.delays, f.Delay)
}

func (s *FrameSizes) Sizes() []int  { return s.sizes }
func (s *FrameSizes) Delays() []int { return s.delays }

// Duration is the total playback time in hundredths of a second.
func (s *FrameSizes) Duration() int {
	total := 0
	for _, d := range s.delays {
		total += d
	}
	return total
}

func (s *FrameSizes) Reset() {
	s.sizes = nil
	s.delays = nil
}
