package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/df07/go-weekend-pathtracer/pkg/output"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
	"github.com/df07/go-weekend-pathtracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string        // Scene name
	Width           int           // Image width
	Height          int           // Image height
	SamplesPerPixel int           // Rays per pixel
	MaxDepth        int           // Bounce limit
	Seed            int64         // Random seed
	Format          output.Format // png or ppm
}

// handleRender renders a single frame and responds with the encoded image.
// A client disconnect cancels the render between scanlines.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}
	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}

	req, err := parseRenderRequest(r, sceneObj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	camera, err := sceneObj.NewCamera(req.Width, req.Height)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	integ := sceneObj.Integrator
	integ.MaxDepth = req.MaxDepth
	rt, err := renderer.NewRaytracer(camera, sceneObj.World, integrator.NewPathTracingIntegrator(integ), renderer.SamplingConfig{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.SamplesPerPixel,
		Seed:            req.Seed,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Width*req.Height > 800*600 && req.SamplesPerPixel > 100 {
		logger.Warning("large image with high samples may render slowly")
	}

	start := time.Now()
	frame, stats, err := rt.RenderPass(r.Context())
	if err != nil {
		logger.Warningf("render of %q aborted: %v", req.Scene, err)
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, frame, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
	w.Header().Set("X-Total-Samples", strconv.Itoa(stats.TotalSamples))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warningf("failed to write render response: %v", err)
	}
}

// parseRenderRequest reads query parameters, defaulting to the scene's
// recommended settings
func parseRenderRequest(r *http.Request, sceneObj *scene.Scene) (*RenderRequest, error) {
	query := r.URL.Query()
	defaults := sceneObj.SamplingConfig
	req := &RenderRequest{Scene: sceneObj.Name, Seed: defaults.Seed, Format: output.FormatPNG}

	var err error
	if req.Width, err = parseIntParam(query, "width", defaults.Width, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", defaults.Height, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "spp", defaults.SamplesPerPixel, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", sceneObj.Integrator.MaxDepth, 1, maxDepthLimit); err != nil {
		return nil, err
	}
	if seed := query.Get("seed"); seed != "" {
		if req.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
			return nil, errors.New("invalid seed: " + seed)
		}
	}
	if format := query.Get("format"); format != "" {
		switch output.Format(format) {
		case output.FormatPNG, output.FormatPPM:
			req.Format = output.Format(format)
		default:
			return nil, errors.New("unsupported format: " + format)
		}
	}
	return req, nil
}
