package integrator

import (
	"math"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
)

const (
	// DefaultMaxDepth is the bounce limit after which a path returns black
	DefaultMaxDepth = 50

	// DefaultTMin keeps scattered rays from re-hitting their own origin
	DefaultTMin = 0.001
)

// Config contains the path tracer settings
type Config struct {
	MaxDepth  int       // Maximum number of bounces
	TMin      float64   // Minimum hit distance (shadow acne epsilon)
	TMax      float64   // Maximum hit distance
	SkyTop    core.Vec3 // Background color straight up
	SkyBottom core.Vec3 // Background color at the horizon and below
}

// DefaultConfig returns the classic white to sky-blue setup
func DefaultConfig() Config {
	return Config{
		MaxDepth:  DefaultMaxDepth,
		TMin:      DefaultTMin,
		TMax:      math.Inf(1),
		SkyTop:    core.NewVec3(0.5, 0.7, 1.0),
		SkyBottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// PathTracingIntegrator implements unidirectional path tracing with a fixed
// depth cutoff. The sky gradient is the only light source.
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// Config returns the integrator settings
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// RayColor computes the color for a camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	return pt.Trace(ray, world, 0, sampler)
}

// Trace returns the linear radiance carried along ray after depth bounces
func (pt *PathTracingIntegrator) Trace(ray core.Ray, world geometry.Shape, depth int, sampler core.Sampler) core.Vec3 {
	// If we've reached the ray bounce limit, no more light is gathered
	if depth >= pt.config.MaxDepth {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, pt.config.TMin, pt.config.TMax)
	if !isHit {
		return pt.Background(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(pt.Trace(scatter.Scattered, world, depth+1, sampler))
}

// Background returns a gradient color based on ray direction
func (pt *PathTracingIntegrator) Background(r core.Ray) core.Vec3 {
	// Normalize the ray direction to get consistent results
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return pt.config.SkyBottom.Multiply(1.0 - t).Add(pt.config.SkyTop.Multiply(t))
}
