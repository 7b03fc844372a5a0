package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// FramePlot charts the encoded size of every frame.
func FramePlot(sizes []int, width, height int, caption string) string {
	if len(sizes) == 0 {
		return Subtle.Render("no frames")
	}
	data := make([]float64, len(sizes))
	for i, n := range sizes {
		data[i] = float64(n)
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// SizeSummary is a one-line digest of frame sizes.
func SizeSummary(sizes []int) string {
	if len(sizes) == 0 {
		return "0 frames"
	}
	total, peak := 0, 0
	for _, n := range sizes {
		total += n
		peak = max(peak, n)
	}
	return fmt.Sprintf("%d frames, %d bytes, mean %.1f, max %d", len(sizes), total, float64(total)/float64(len(sizes)), peak)
}
