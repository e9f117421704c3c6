package renderer

import "github.com/df07/go-weekend-pathtracer/pkg/core"

// Frame holds the averaged linear radiance of a rendered image. Row 0 is the
// top of the image, matching the order pixels are written out in.
type Frame struct {
	width  int
	height int
	pixels []PixelStats
}

// NewFrame allocates an empty frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		width:  width,
		height: height,
		pixels: make([]PixelStats, width*height),
	}
}

// Width returns the frame width in pixels
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in pixels
func (f *Frame) Height() int { return f.height }

// Pixel returns the accumulator for (x, y)
func (f *Frame) Pixel(x, y int) *PixelStats {
	return &f.pixels[y*f.width+x]
}

// Radiance returns the mean radiance of (x, y)
func (f *Frame) Radiance(x, y int) core.Vec3 {
	return f.Pixel(x, y).GetColor()
}
