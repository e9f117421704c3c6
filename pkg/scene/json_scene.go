package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// Vec3Cfg is a vector written as a three element JSON array
type Vec3Cfg [3]float64

func (v Vec3Cfg) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

type CameraCfg struct {
	LookFrom      Vec3Cfg  `json:"lookFrom"`
	LookAt        Vec3Cfg  `json:"lookAt"`
	Up            *Vec3Cfg `json:"up,omitempty"`   // defaults to +Y
	VFov          float64  `json:"vfov,omitempty"` // degrees, defaults to 90
	Aperture      float64  `json:"aperture,omitempty"`
	FocusDistance float64  `json:"focusDistance,omitempty"` // 0 = distance to lookAt
}

type ImageCfg struct {
	Width           int   `json:"width,omitempty"`
	Height          int   `json:"height,omitempty"`
	SamplesPerPixel int   `json:"samplesPerPixel,omitempty"`
	Seed            int64 `json:"seed,omitempty"`
}

type SkyCfg struct {
	Top    *Vec3Cfg `json:"top,omitempty"`
	Bottom *Vec3Cfg `json:"bottom,omitempty"`
}

// MaterialCfg describes one named material. Type is one of "lambertian",
// "metal" or "dielectric".
type MaterialCfg struct {
	Type            string  `json:"type"`
	Albedo          Vec3Cfg `json:"albedo,omitempty"`
	Fuzz            float64 `json:"fuzz,omitempty"`
	RefractiveIndex float64 `json:"refractiveIndex,omitempty"`
}

type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// Config is the on-disk scene description
type Config struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Camera      CameraCfg              `json:"camera"`
	Image       ImageCfg               `json:"image,omitempty"`
	MaxDepth    int                    `json:"maxDepth,omitempty"`
	TMin        float64                `json:"tMin,omitempty"`
	Sky         SkyCfg                 `json:"sky,omitempty"`
	Materials   map[string]MaterialCfg `json:"materials"`
	Spheres     []SphereCfg            `json:"spheres"`
}

// LoadJSONScene reads a scene file. The scene name defaults to the file name.
func LoadJSONScene(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: could not open %s: %w", path, err)
	}
	defer f.Close()

	s, err := ParseJSONScene(f)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// ParseJSONScene decodes a scene description and builds its world
func ParseJSONScene(r io.Reader) (*Scene, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("invalid scene json: %w", err)
	}
	return cfg.Build()
}

// Build turns the description into a scene. Spheres naming the same
// material share a single instance.
func (cfg *Config) Build() (*Scene, error) {
	materials := make(map[string]material.Material, len(cfg.Materials))
	for name, mc := range cfg.Materials {
		mat, err := mc.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	b := newSceneBuilder()
	for i, sc := range cfg.Spheres {
		mat, ok := materials[sc.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: %w %q", i, ErrUnknownMaterial, sc.Material)
		}
		b.AddSphere(sc.Center.vec(), sc.Radius, mat)
	}
	world, err := b.World()
	if err != nil {
		return nil, err
	}

	sampling := renderer.DefaultSamplingConfig()
	if cfg.Image.Width > 0 {
		sampling.Width = cfg.Image.Width
	}
	if cfg.Image.Height > 0 {
		sampling.Height = cfg.Image.Height
	}
	if cfg.Image.SamplesPerPixel > 0 {
		sampling.SamplesPerPixel = cfg.Image.SamplesPerPixel
	}
	if cfg.Image.Seed != 0 {
		sampling.Seed = cfg.Image.Seed
	}

	integ := integrator.DefaultConfig()
	if cfg.MaxDepth > 0 {
		integ.MaxDepth = cfg.MaxDepth
	}
	if cfg.TMin > 0 {
		integ.TMin = cfg.TMin
	}
	if cfg.Sky.Top != nil {
		integ.SkyTop = cfg.Sky.Top.vec()
	}
	if cfg.Sky.Bottom != nil {
		integ.SkyBottom = cfg.Sky.Bottom.vec()
	}

	cameraConfig := renderer.CameraConfig{
		LookFrom:      cfg.Camera.LookFrom.vec(),
		LookAt:        cfg.Camera.LookAt.vec(),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90,
		AspectRatio:   float64(sampling.Width) / float64(sampling.Height),
		Aperture:      cfg.Camera.Aperture,
		FocusDistance: cfg.Camera.FocusDistance,
	}
	if cfg.Camera.Up != nil {
		cameraConfig.Up = cfg.Camera.Up.vec()
	}
	if cfg.Camera.VFov != 0 {
		cameraConfig.VFov = cfg.Camera.VFov
	}
	if err := cameraConfig.Validate(); err != nil {
		return nil, err
	}

	logger.Infof("loaded scene %q with %d spheres and %d materials", cfg.Name, world.Len(), len(materials))
	return &Scene{
		Name:           cfg.Name,
		Description:    cfg.Description,
		CameraConfig:   cameraConfig,
		World:          world,
		SamplingConfig: sampling,
		Integrator:     integ,
	}, nil
}

func (mc MaterialCfg) build() (material.Material, error) {
	kind := strings.ToLower(mc.Type)
	if kind != "dielectric" && kind != "glass" {
		albedo := mc.Albedo.vec()
		if !albedo.IsFinite() || min(albedo.X, albedo.Y, albedo.Z) < 0 || max(albedo.X, albedo.Y, albedo.Z) > 1 {
			return nil, fmt.Errorf("%w: albedo %v outside [0,1]", ErrInvalidMaterial, albedo)
		}
	}

	switch kind {
	case "lambertian", "diffuse":
		return material.NewLambertian(mc.Albedo.vec()), nil
	case "metal":
		if mc.Fuzz < 0 || mc.Fuzz > 1 {
			return nil, fmt.Errorf("%w: fuzz %g outside [0,1]", ErrInvalidMaterial, mc.Fuzz)
		}
		return material.NewMetal(mc.Albedo.vec(), mc.Fuzz), nil
	case "dielectric", "glass":
		if !(mc.RefractiveIndex > 0) {
			return nil, fmt.Errorf("%w: refractive index must be positive, got %g", ErrInvalidMaterial, mc.RefractiveIndex)
		}
		return material.NewDielectric(mc.RefractiveIndex), nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidMaterial, mc.Type)
	}
}
