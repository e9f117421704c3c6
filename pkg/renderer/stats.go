package renderer

import (
	"time"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// RenderStats contains statistics about a render pass
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	SamplesPerPixel int           // Samples taken per pixel
	RenderTime      time.Duration // Wall clock time of the pass
	FastestRow      time.Duration // Quickest scanline
	SlowestRow      time.Duration // Slowest scanline
}

// SamplesPerSecond returns the camera ray throughput of the pass
func (s RenderStats) SamplesPerSecond() float64 {
	if s.RenderTime <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.RenderTime.Seconds()
}

// rowTimings folds per-scanline durations into the fastest and slowest row
func rowTimings(durations []time.Duration) (fastest, slowest time.Duration) {
	for i, d := range durations {
		if i == 0 || d < fastest {
			fastest = d
		}
		if d > slowest {
			slowest = d
		}
	}
	return fastest, slowest
}

// PixelStats accumulates the radiance samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator in linear radiance
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
