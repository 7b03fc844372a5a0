package metrics

import "github.com/fangj99/gifmaze/internal/anim"

type FrameCount struct {
	frames int
}

func NewFrameCount() *FrameCount { return &FrameCount{} }

func (f *FrameCount) Name() string           { return "frames" }
func (f *FrameCount) OnFrame(anim.FrameInfo) { f.frames++ }
func (f *FrameCount) Value() float64         { return float64(f.frames) }
func (f *FrameCount) Reset()                 { f.frames = 0 }

// TotalBytes sums encoded frame sizes, control blocks included.
type TotalBytes struct {
	total int
}

func NewTotalBytes() *TotalBytes { return &TotalBytes{} }

func (t *TotalBytes) Name() string             { return "total_bytes" }
func (t *TotalBytes) OnFrame(f anim.FrameInfo) { t.total += f.Bytes }
func (t *TotalBytes) Value() float64           { return float64(t.total) }
func (t *TotalBytes) Reset()                   { t.total = 0 }

type MeanFrameBytes struct {
	total, frames int
}

func NewMeanFrameBytes() *MeanFrameBytes { return &MeanFrameBytes{} }

func (m *MeanFrameBytes) Name() string { return "mean_frame_bytes" }

func (m *MeanFrameBytes) OnFrame(f anim.FrameInfo) {
	m.total += f.Bytes
	m.frames++
}

func (m *MeanFrameBytes) Value() float64 {
	if m.frames == 0 {
		return 0
	}
	return float64(m.total) / float64(m.frames)
}

func (m *MeanFrameBytes) Reset() {
	m.total = 0
	m.frames = 0
}

type MaxFrameBytes struct {
	max int
}

func NewMaxFrameBytes() *MaxFrameBytes { return &MaxFrameBytes{} }

func (m *MaxFrameBytes) Name() string             { return "max_frame_bytes" }
func (m *MaxFrameBytes) OnFrame(f anim.FrameInfo) { m.max = max(m.max, f.Bytes) }
func (m *MaxFrameBytes) Value() float64           { return float64(m.max) }
func (m *MaxFrameBytes) Reset()                   { m.max = 0 }
