package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// EncodePPM writes the frame as a plain-text P3 image: a three line header
// followed by one "r g b" line per pixel, top row first
func EncodePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width(), frame.Height()); err != nil {
		return err
	}

	for y := 0; y < frame.Height(); y++ {
		for x := 0; x < frame.Width(); x++ {
			r, g, b := PixelBytes(frame.Radiance(x, y))
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
