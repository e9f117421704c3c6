package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

func TestDielectric_AttenuationIsWhite(t *testing.T) {
	glass := NewDielectric(1.5)
	expectedAttenuation := core.NewVec3(1.0, 1.0, 1.0)

	directions := []core.Vec3{
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, 0.1, 0), // exiting, total internal reflection
		core.NewVec3(0.2, 1, 0), // exiting, refracts
	}

	for seed := int64(0); seed < 100; seed++ {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))
		for _, dir := range directions {
			ray := core.NewRay(core.NewVec3(0, 0, 0), dir)
			hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), Material: glass}

			result, scattered := glass.Scatter(ray, hit, sampler)
			if !scattered {
				t.Fatal("Dielectric should always scatter")
			}
			if !result.Attenuation.Equals(expectedAttenuation) {
				t.Fatalf("Expected attenuation %v, got %v", expectedAttenuation, result.Attenuation)
			}
		}
	}
}

func TestDielectric_NormalIncidence(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), Material: glass}

	// Reflectance at normal incidence is r0 = 0.04
	tests := []struct {
		name     string
		random   float64
		expected core.Vec3
	}{
		{"refracts straight through", 0.5, core.NewVec3(0, -1, 0)},
		{"reflects below reflectance", 0.01, core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := glass.Scatter(ray, hit, &fixedSampler{values: []float64{tt.random}})
			if result.Scattered.Direction.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected direction %v, got %v", tt.expected, result.Scattered.Direction)
			}
			if !result.Scattered.Origin.Equals(hit.Point) {
				t.Errorf("Scattered ray should start at the hit point, got %v", result.Scattered.Origin)
			}
		})
	}
}

func TestDielectric_SnellsLaw(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), Material: glass}

	result, _ := glass.Scatter(ray, hit, &fixedSampler{values: []float64{0.99}})
	refracted := result.Scattered.Direction

	// n1 sin θ1 = n2 sin θ2
	sinIncident := math.Sin(math.Pi / 4)
	sinRefracted := refracted.Normalize().X
	if math.Abs(sinIncident-1.5*sinRefracted) > 1e-9 {
		t.Errorf("Snell's law violated: sin θ1 = %f, 1.5 sin θ2 = %f", sinIncident, 1.5*sinRefracted)
	}
	if refracted.Y >= 0 {
		t.Errorf("Refracted ray should continue into the medium, got %v", refracted)
	}
	if math.Abs(refracted.Length()-1) > 1e-9 {
		t.Errorf("Refracted direction should be unit length, got %f", refracted.Length())
	}
}

func TestDielectric_ExitingRefraction(t *testing.T) {
	glass := NewDielectric(1.5)
	// Inside the sphere travelling along the outward normal
	ray := core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), Material: glass}

	result, _ := glass.Scatter(ray, hit, &fixedSampler{values: []float64{0.5}})
	expected := core.NewVec3(0, 1, 0)
	if result.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected ray to leave the medium along %v, got %v", expected, result.Scattered.Direction)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Leaving the glass at a shallow angle
	rayDirection := core.NewVec3(1, 0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 0), rayDirection)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), Material: glass}

	sinTheta := math.Sqrt(1 - rayDirection.Y*rayDirection.Y)
	if 1.5*sinTheta <= 1.0 {
		t.Fatalf("Test setup error: this angle should cause total internal reflection")
	}

	// Whatever the random draw, the ray is reflected back into the glass
	for _, random := range []float64{0, 0.3, 0.6, 0.999} {
		result, scattered := glass.Scatter(ray, hit, &fixedSampler{values: []float64{random}})
		if !scattered {
			t.Error("Dielectric should always scatter")
		}

		expected := core.NewVec3(rayDirection.X, -rayDirection.Y, 0)
		if result.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
			t.Errorf("Expected total internal reflection %v, got %v", expected, result.Scattered.Direction)
		}
	}
}

func TestDielectric_ReflectsAndRefracts(t *testing.T) {
	glass := NewDielectric(1.5)
	// Grazing angle where Schlick reflectance is large
	ray := core.NewRay(core.NewVec3(-1, 0.05, 0), core.NewVec3(1, -0.05, 0))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), Material: glass}

	reflections, refractions := 0, 0
	sampler := core.NewSeededSampler(42)
	for i := 0; i < 1000; i++ {
		result, _ := glass.Scatter(ray, hit, sampler)
		if result.Scattered.Direction.Y > 0 {
			reflections++
		} else {
			refractions++
		}
	}

	if reflections == 0 || refractions == 0 {
		t.Errorf("Expected both outcomes, got %d reflections and %d refractions", reflections, refractions)
	}
}

func TestReflectance(t *testing.T) {
	// Normal incidence gives r0
	if got := Reflectance(1.0, 1.5); math.Abs(got-0.04) > 1e-12 {
		t.Errorf("Expected r0 = 0.04, got %f", got)
	}

	// Grazing incidence reflects everything
	if got := Reflectance(0.0, 1.5); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Expected reflectance 1 at grazing incidence, got %f", got)
	}

	// Matched media do not reflect at normal incidence
	if got := Reflectance(1.0, 1.0); got != 0 {
		t.Errorf("Expected reflectance 0 for index 1, got %f", got)
	}

	for _, n := range []float64{0.1, 0.5, 1.0, 1.33, 1.5, 2.42, 10} {
		for _, cosine := range []float64{-0.5, 0, 0.1, 0.5, 0.9, 1, 1.5} {
			r := Reflectance(cosine, n)
			if r < 0 || r > 1 {
				t.Errorf("Reflectance(%f, %f) = %f outside [0,1]", cosine, n, r)
			}
		}
	}
}

func TestDielectric_ExitingReflectanceUsesAirSideAngle(t *testing.T) {
	glass := NewDielectric(1.5)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), Material: glass}

	// sin(theta_i) = 0.6 on the glass side, below the critical angle
	cosGlass := 0.8
	cosAir := math.Sqrt(1 - 1.5*1.5*0.36)
	glassSide := Reflectance(cosGlass, 1.5)
	airSide := Reflectance(cosAir, 1.5)
	if !(glassSide < airSide) {
		t.Fatalf("Expected glass side reflectance %f below air side %f", glassSide, airSide)
	}
	// A draw between the two separates the choices
	draw := (glassSide + airSide) / 2

	tests := []struct {
		name        string
		direction   core.Vec3
		wantReflect bool
	}{
		{"exiting uses the air side angle", core.NewVec3(0.6, 0.8, 0), true},
		{"entering uses the incident angle", core.NewVec3(0.6, -0.8, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := glass.Scatter(core.NewRay(core.NewVec3(0, 0, 0), tt.direction), hit, &fixedSampler{values: []float64{draw}})
			reflected := reflect(tt.direction, hit.Normal)
			gotReflect := result.Scattered.Direction.Subtract(reflected).Length() < 1e-9
			if gotReflect != tt.wantReflect {
				t.Errorf("Expected reflect=%t, got direction %v", tt.wantReflect, result.Scattered.Direction)
			}
		})
	}
}

func TestNewDielectric_InvalidIndex(t *testing.T) {
	for _, n := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		glass := NewDielectric(n)
		if glass.RefractiveIndex != 1 {
			t.Errorf("NewDielectric(%f): expected index 1, got %f", n, glass.RefractiveIndex)
		}
		r := Reflectance(0.5, glass.RefractiveIndex)
		if math.IsNaN(r) || r < 0 || r > 1 {
			t.Errorf("NewDielectric(%f): reflectance %f outside [0,1]", n, r)
		}
	}
}
