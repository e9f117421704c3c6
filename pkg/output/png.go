package output

import (
	"image"
	"image/png"
	"io"
)

// EncodePNG writes img as a PNG
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
