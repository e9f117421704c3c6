package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/df07/go-weekend-pathtracer/pkg/log"
)

var logger = log.New("renderer")

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	Seed            int64 // Base seed for the per-row samplers
}

// DefaultSamplingConfig returns the classic 200x100 image at 100 samples
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           200,
		Height:          100,
		SamplesPerPixel: 100,
		Seed:            42,
	}
}

// Validate checks the image dimensions and sample count
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: got %d", ErrNoSamples, c.SamplesPerPixel)
	}
	return nil
}

// Raytracer renders a world through a camera into a Frame
type Raytracer struct {
	camera     *Camera
	world      geometry.Shape
	integrator integrator.Integrator
	config     SamplingConfig
}

// NewRaytracer creates a new raytracer
func NewRaytracer(camera *Camera, world geometry.Shape, integ integrator.Integrator, config SamplingConfig) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := camera.Config().Validate(); err != nil {
		return nil, err
	}
	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integ,
		config:     config,
	}, nil
}

// SamplingConfig returns the active sampling configuration
func (rt *Raytracer) SamplingConfig() SamplingConfig {
	return rt.config
}

// RenderPass traces SamplesPerPixel jittered rays through every pixel and
// returns the averaged linear radiance. Scanlines are rendered top to bottom;
// cancellation is observed between them.
func (rt *Raytracer) RenderPass(ctx context.Context) (*Frame, RenderStats, error) {
	width, height := rt.config.Width, rt.config.Height
	frame := NewFrame(width, height)
	rowTimes := make([]time.Duration, 0, height)

	logger.Noticef("rendering %dx%d at %d spp", width, height, rt.config.SamplesPerPixel)

	start := time.Now()
	var err error
	for y := 0; y < height; y++ {
		if ctx.Err() != nil {
			err = ErrInterrupted
			break
		}
		rowStart := time.Now()
		rt.renderRow(frame, y, rt.rowSampler(y))
		rowTimes = append(rowTimes, time.Since(rowStart))
		logger.Debugf("row %d/%d done in %s", y+1, height, rowTimes[y])
	}

	stats := RenderStats{
		Width:           width,
		Height:          height,
		TotalPixels:     width * height,
		TotalSamples:    width * height * rt.config.SamplesPerPixel,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		RenderTime:      time.Since(start),
	}
	stats.FastestRow, stats.SlowestRow = rowTimings(rowTimes)

	if err != nil {
		logger.Warningf("render pass stopped after %d of %d rows: %v", len(rowTimes), height, err)
		return nil, stats, err
	}

	logger.Noticef("render pass finished in %s", stats.RenderTime)
	return frame, stats, nil
}

// rowSampler gives each scanline its own deterministic random stream, so a
// row renders the same regardless of which rows precede it
func (rt *Raytracer) rowSampler(y int) core.Sampler {
	return core.NewSeededSampler(rt.config.Seed*1_000_003 + int64(y))
}

// renderRow fills frame row y. Rows are counted from the top while the
// camera's t coordinate grows upward, so j flips the row index.
func (rt *Raytracer) renderRow(frame *Frame, y int, sampler core.Sampler) {
	width, height := rt.config.Width, rt.config.Height
	j := height - 1 - y

	for i := 0; i < width; i++ {
		pixel := frame.Pixel(i, y)
		for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
			// Convert pixel coordinates to normalized coordinates with jitter
			s := (float64(i) + sampler.Get1D()) / float64(width)
			t := (float64(j) + sampler.Get1D()) / float64(height)

			ray := rt.camera.GetRay(s, t, sampler)
			pixel.AddSample(rt.integrator.RayColor(ray, rt.world, sampler))
		}
	}
}
