package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
	"github.com/df07/go-weekend-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// extractMaterialInfo describes one of the three material kinds
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the center of pixel (x, y), with y
// counted from the top, and returns the first intersection. The lens is
// closed so the ray leaves the camera origin.
func inspectPixel(sceneObj *scene.Scene, width, height, x, y int) (*material.HitRecord, bool, error) {
	if width <= 0 || height <= 0 {
		return nil, false, fmt.Errorf("%w: got %dx%d", renderer.ErrInvalidDimensions, width, height)
	}
	config := sceneObj.CameraConfig
	config.AspectRatio = float64(width) / float64(height)
	if err := config.Validate(); err != nil {
		return nil, false, err
	}
	config.Aperture = 0
	camera := renderer.NewCamera(config)

	s := (float64(x) + 0.5) / float64(width)
	t := (float64(height-1-y) + 0.5) / float64(height)
	ray := camera.GetRay(s, t, core.NewSeededSampler(0))

	var world geometry.Shape = sceneObj.World
	tMin := sceneObj.Integrator.TMin
	if tMin <= 0 {
		tMin = integrator.DefaultTMin
	}
	hit, isHit := world.Hit(ray, tMin, math.Inf(1))
	return hit, isHit, nil
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	width, err := parseIntParam(query, "width", sceneObj.SamplingConfig.Width, minImageSize, maxImageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	height, err := parseIntParam(query, "height", sceneObj.SamplingConfig.Height, minImageSize, maxImageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeError(w, http.StatusBadRequest, "pixel coordinates out of bounds")
		return
	}

	hit, isHit, err := inspectPixel(sceneObj, width, height, pixelX, pixelY)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !isHit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(hit.Material)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		Properties:   materialProps,
	})
}
