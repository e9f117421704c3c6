package renderer

import "errors"

var (
	ErrInvalidDimensions = errors.New("renderer: width and height must be positive")
	ErrNoSamples         = errors.New("renderer: samples per pixel must be positive")
	ErrInvalidCamera     = errors.New("renderer: invalid camera")
	ErrInterrupted       = errors.New("renderer: render interrupted")
)
