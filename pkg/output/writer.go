package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-weekend-pathtracer/pkg/log"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

var logger = log.New("output")

var (
	ErrUnknownFormat = errors.New("output: unknown image format")
	ErrMissingBucket = errors.New("output: no S3 bucket configured")
)

// Format selects an image codec
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	default:
		return "image/x-portable-pixmap"
	}
}

// FormatFromPath picks the codec from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		return FormatPPM, nil
	case ".png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Encode writes the frame using the given codec
func Encode(w io.Writer, frame *renderer.Frame, format Format) error {
	switch format {
	case FormatPPM:
		return EncodePPM(w, frame)
	case FormatPNG:
		return EncodePNG(w, ToRGBA(frame))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// EncodeBytes encodes the frame into memory
func EncodeBytes(frame *renderer.Frame, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, frame, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes the frame to path, or to stdout when path is "-" (PPM)
func WriteFile(path string, frame *renderer.Frame) error {
	if path == "-" {
		return EncodePPM(os.Stdout, frame)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: could not create %s: %w", path, err)
	}
	if err := Encode(f, frame, format); err != nil {
		f.Close()
		return fmt.Errorf("output: could not encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Noticef("wrote %dx%d %s image to %s", frame.Width(), frame.Height(), format, path)
	return nil
}
