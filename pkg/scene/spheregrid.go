package scene

import (
	"math/rand"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// Grid extent of the small random spheres, in unit cells on each axis
const sphereGridHalfSize = 11

// DefaultRandomSeed is used by the registry for the random scene
const DefaultRandomSeed = 2019

// NewRandomSpheresScene creates a grid of small randomly placed spheres with
// random materials around three large feature spheres. The layout only
// depends on seed.
func NewRandomSpheresScene(seed int64) (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	random := rand.New(rand.NewSource(seed))
	b := newSceneBuilder()

	b.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	// Small spheres share a single glass material
	glass := material.NewDielectric(1.5)
	clearance := core.NewVec3(4, 0.2, 0)

	for a := -sphereGridHalfSize; a < sphereGridHalfSize; a++ {
		for c := -sphereGridHalfSize; c < sphereGridHalfSize; c++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(c)+0.9*random.Float64())

			// Keep the area around the large metal sphere clear
			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.NewVec3(
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
				)
				b.AddSphere(center, 0.2, material.NewLambertian(albedo))
			case chooseMat < 0.95:
				albedo := core.NewVec3(
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
				)
				b.AddSphere(center, 0.2, material.NewMetal(albedo, 0.5*random.Float64()))
			default:
				b.AddSphere(center, 0.2, glass)
			}
		}
	}

	b.AddSphere(core.NewVec3(0, 1, 0), 1.0, glass)
	b.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	b.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	world, err := b.World()
	if err != nil {
		return nil, err
	}

	logger.Infof("built random spheres scene with %d spheres (seed %d)", world.Len(), seed)
	return &Scene{
		Name:         "random",
		Description:  "Hundreds of small random spheres around three large ones",
		CameraConfig: cameraConfig,
		World:        world,
		SamplingConfig: renderer.SamplingConfig{
			Width:           600,
			Height:          400,
			SamplesPerPixel: 50,
			Seed:            seed,
		},
		Integrator: integrator.DefaultConfig(),
	}, nil
}
