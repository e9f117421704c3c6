package material

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// Material interface for surfaces that can scatter rays.
// This package provides exactly three implementations: Lambertian, Metal
// and Dielectric. Materials are immutable and may be shared by any number
// of shapes.
type Material interface {
	// Scatter computes the attenuation and the scattered ray for a ray
	// hitting the surface. It returns false when the ray is absorbed.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection.
// It is produced fresh by every hit test and only lives for one
// integrator step.
type HitRecord struct {
	T        float64   // Parameter t along the ray
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Outward unit surface normal
	Material Material  // Material of the hit object
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
