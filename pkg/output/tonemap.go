package output

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// ToneMap clamps linear radiance to [0,1] and applies gamma 2
func ToneMap(radiance core.Vec3) core.Vec3 {
	return core.NewVec3(
		toneMapChannel(radiance.X),
		toneMapChannel(radiance.Y),
		toneMapChannel(radiance.Z),
	)
}

func toneMapChannel(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return math.Sqrt(v)
}

// toByte maps a tone mapped channel in [0,1] to [0,255]
func toByte(v float64) uint8 {
	return uint8(255.99 * v)
}

// PixelBytes returns the 8-bit display color of one radiance value
func PixelBytes(radiance core.Vec3) (r, g, b uint8) {
	c := ToneMap(radiance)
	return toByte(c.X), toByte(c.Y), toByte(c.Z)
}

// ToRGBA converts a frame to an 8-bit image, row 0 at the top
func ToRGBA(frame *renderer.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width(), frame.Height()))
	for y := 0; y < frame.Height(); y++ {
		for x := 0; x < frame.Width(); x++ {
			r, g, b := PixelBytes(frame.Radiance(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
