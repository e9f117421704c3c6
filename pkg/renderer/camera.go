package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// CameraConfig contains the parameters for a thin-lens camera
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction, need not be perpendicular to the view
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter, 0 for a pinhole
	FocusDistance float64   // Distance to the focus plane, 0 = distance to LookAt
}

// Validate reports configurations that would produce a degenerate camera
func (c CameraConfig) Validate() error {
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("%w: vertical fov must be in (0, 180), got %g", ErrInvalidCamera, c.VFov)
	}
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0) {
		return fmt.Errorf("%w: aspect ratio must be positive, got %g", ErrInvalidCamera, c.AspectRatio)
	}
	if !(c.Aperture >= 0) || math.IsInf(c.Aperture, 0) {
		return fmt.Errorf("%w: aperture must be non-negative, got %g", ErrInvalidCamera, c.Aperture)
	}
	if !(c.FocusDistance >= 0) || math.IsInf(c.FocusDistance, 0) {
		return fmt.Errorf("%w: focus distance must be non-negative, got %g", ErrInvalidCamera, c.FocusDistance)
	}
	if !c.LookFrom.IsFinite() || !c.LookAt.IsFinite() || !c.Up.IsFinite() {
		return fmt.Errorf("%w: camera vectors must be finite", ErrInvalidCamera)
	}

	view := c.LookFrom.Subtract(c.LookAt)
	if view.NearZero() {
		return fmt.Errorf("%w: look-from and look-at coincide", ErrInvalidCamera)
	}
	if c.Up.Cross(view).NearZero() {
		return fmt.Errorf("%w: up vector is parallel to the view direction", ErrInvalidCamera)
	}
	return nil
}

// Camera generates primary rays through a viewport placed on the focus plane
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
	config          CameraConfig
}

// NewCamera builds the camera basis. The config should have passed Validate.
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	focusDist := config.FocusDistance
	if focusDist <= 0 {
		focusDist = config.LookFrom.Subtract(config.LookAt).Length()
	}

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(2 * halfWidth * focusDist)
	vertical := v.Multiply(2 * halfHeight * focusDist)
	lowerLeftCorner := origin.
		Subtract(u.Multiply(halfWidth * focusDist)).
		Subtract(v.Multiply(halfHeight * focusDist)).
		Subtract(w.Multiply(focusDist))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		config:          config,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where (0,0) is the
// lower-left corner of the viewport and (1,1) the upper-right
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// GetCameraForward returns the unit view direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
