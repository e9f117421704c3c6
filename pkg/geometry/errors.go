package geometry

import "errors"

var (
	ErrInvalidRadius = errors.New("geometry: sphere radius must be positive and finite")
	ErrInvalidCenter = errors.New("geometry: sphere center must be finite")
	ErrNilMaterial   = errors.New("geometry: sphere has no material")
)
