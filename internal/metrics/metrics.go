// Package metrics summarizes the frames an animation engine writes.
package metrics

import "github.com/fangj99/gifmaze/internal/anim"

// Metric observes frames and reduces them to a single value.
type Metric interface {
	anim.FrameObserver
	Name() string
	Value() float64
	Reset()
}

// Defaults returns a fresh set of the standard frame metrics.
func Defaults() []Metric {
	return []Metric{
		NewFrameCount(),
		NewTotalBytes(),
		NewMeanFrameBytes(),
		NewMaxFrameBytes(),
		NewCoverage(),
		NewBytesPerPixel(),
	}
}

// Collect reads every metric into a map keyed by name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
