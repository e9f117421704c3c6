package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/df07/go-weekend-pathtracer/pkg/log"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

var logger = log.New("scene")

var (
	ErrUnknownScene    = errors.New("scene: unknown scene")
	ErrUnknownMaterial = errors.New("scene: unknown material")
	ErrInvalidMaterial = errors.New("scene: invalid material")
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Description    string
	CameraConfig   renderer.CameraConfig
	World          *geometry.HittableList
	SamplingConfig renderer.SamplingConfig // Recommended image size and sample count
	Integrator     integrator.Config       // Bounce limit, t_min and sky colors
}

// NewCamera builds the scene camera for a width x height image
func (s *Scene) NewCamera(width, height int) (*renderer.Camera, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", renderer.ErrInvalidDimensions, width, height)
	}
	config := s.CameraConfig
	config.AspectRatio = float64(width) / float64(height)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return renderer.NewCamera(config), nil
}

// GetPrimitiveCount returns the number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// sceneBuilder accumulates spheres and keeps the first construction error
type sceneBuilder struct {
	world *geometry.HittableList
	err   error
}

func newSceneBuilder() *sceneBuilder {
	return &sceneBuilder{world: geometry.NewHittableList()}
}

// AddSphere adds a sphere unless an earlier one failed
func (b *sceneBuilder) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	if b.err != nil {
		return
	}
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		b.err = fmt.Errorf("sphere %d at %v: %w", b.world.Len(), center, err)
		return
	}
	b.world.Add(sphere)
}

// World returns the finished world or the first error
func (b *sceneBuilder) World() (*geometry.HittableList, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.world, nil
}
