package integrator

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the linear radiance arriving along a camera ray
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3
}
