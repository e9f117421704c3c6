package material

import (
	"math"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material. An index that is not
// positive and finite is replaced by 1, which neither bends nor reflects.
func NewDielectric(refractiveIndex float64) *Dielectric {
	if !(refractiveIndex > 0) || math.IsInf(refractiveIndex, 1) {
		refractiveIndex = 1
	}
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	unitDirection := rayIn.Direction.Normalize()

	// The hit normal always points out of the sphere. A ray travelling along
	// it is leaving the medium, so face the normal against the ray.
	exiting := unitDirection.Dot(hit.Normal) > 0
	outwardNormal := hit.Normal
	refractionRatio := 1.0 / d.RefractiveIndex
	if exiting {
		outwardNormal = hit.Normal.Negate()
		refractionRatio = d.RefractiveIndex
	}

	cosIncident := math.Min(-unitDirection.Dot(outwardNormal), 1.0)

	var direction core.Vec3
	refracted, canRefract := refractVector(unitDirection, outwardNormal, refractionRatio)
	if !canRefract {
		// Total internal reflection
		direction = reflect(unitDirection, hit.Normal)
	} else {
		// Schlick needs the angle on the air side of the boundary
		cosine := cosIncident
		if exiting {
			sin2 := refractionRatio * refractionRatio * (1 - cosIncident*cosIncident)
			cosine = math.Sqrt(1 - sin2)
		}

		if sampler.Get1D() < Reflectance(cosine, d.RefractiveIndex) {
			direction = reflect(unitDirection, hit.Normal)
		} else {
			direction = refracted
		}
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}, true
}

// refractVector calculates the refraction of unit vector uv through a
// surface with unit normal n facing the incoming ray, using Snell's law.
// It returns false on total internal reflection.
func refractVector(uv, n core.Vec3, etaiOverEtat float64) (core.Vec3, bool) {
	dt := uv.Dot(n)
	discriminant := 1.0 - etaiOverEtat*etaiOverEtat*(1-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	perp := uv.Subtract(n.Multiply(dt)).Multiply(etaiOverEtat)
	return perp.Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation.
// cosine is clamped to [0,1], so the result is in [0,1] for any positive index.
func Reflectance(cosine, refractiveIndex float64) float64 {
	cosine = max(0, min(1, cosine))
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
