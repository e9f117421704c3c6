package output

import (
	"fmt"
	"image"
	"os"

	"github.com/nfnt/resize"
)

// Thumbnail scales img down to width pixels keeping the aspect ratio.
// Images already narrower than width are returned unchanged.
func Thumbnail(img image.Image, width uint) image.Image {
	if width == 0 || int(width) >= img.Bounds().Dx() {
		return img
	}
	return resize.Resize(width, 0, img, resize.Bilinear)
}

// WriteThumbnail stores a PNG thumbnail of img at path
func WriteThumbnail(path string, img image.Image, width uint) error {
	thumb := Thumbnail(img, width)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: could not create %s: %w", path, err)
	}
	if err := EncodePNG(f, thumb); err != nil {
		f.Close()
		return fmt.Errorf("output: could not encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Noticef("wrote %dx%d thumbnail to %s", thumb.Bounds().Dx(), thumb.Bounds().Dy(), path)
	return nil
}
