package scene

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// NewDefaultScene creates the three-material showcase: a diffuse sphere
// between a glass and a gold sphere, with a mirror ball behind them, all on
// a large ground sphere
func NewDefaultScene() (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(-2, 1, 1), // Above and to the left of the row
		LookAt:        core.NewVec3(0, 0, -1), // Center sphere
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		AspectRatio:   2.0,
		Aperture:      0.05, // Slight depth of field
		FocusDistance: 0.0,  // Auto-calculate focus distance
	}

	// Create materials
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	glass := material.NewDielectric(1.5)

	b := newSceneBuilder()
	b.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	b.AddSphere(core.NewVec3(0, 0, -1), 0.5, lambertianBlue)
	b.AddSphere(core.NewVec3(-1, 0, -1), 0.5, glass)
	b.AddSphere(core.NewVec3(1, 0, -1), 0.5, metalGold)
	b.AddSphere(core.NewVec3(0.2, -0.3, -2.2), 0.2, metalSilver)

	world, err := b.World()
	if err != nil {
		return nil, err
	}

	logger.Infof("built default scene with %d spheres", world.Len())
	return &Scene{
		Name:         "default",
		Description:  "Diffuse, glass and metal spheres on a ground sphere",
		CameraConfig: cameraConfig,
		World:        world,
		SamplingConfig: renderer.SamplingConfig{
			Width:           400,
			Height:          200,
			SamplesPerPixel: 100,
			Seed:            42,
		},
		Integrator: integrator.DefaultConfig(),
	}, nil
}

// NewSimpleScene creates a single diffuse sphere resting on a ground sphere,
// seen through the canonical 4x2 viewport at the origin
func NewSimpleScene() (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: 2.0,
	}

	// Both spheres share one material
	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	b := newSceneBuilder()
	b.AddSphere(core.NewVec3(0, 0, -1), 0.5, gray)
	b.AddSphere(core.NewVec3(0, -100.5, -1), 100, gray)

	world, err := b.World()
	if err != nil {
		return nil, err
	}

	logger.Infof("built simple scene with %d spheres", world.Len())
	return &Scene{
		Name:         "simple",
		Description:  "One diffuse sphere on a ground sphere",
		CameraConfig: cameraConfig,
		World:        world,
		SamplingConfig: renderer.SamplingConfig{
			Width:           800,
			Height:          400,
			SamplesPerPixel: 100,
			Seed:            42,
		},
		Integrator: integrator.DefaultConfig(),
	}, nil
}
