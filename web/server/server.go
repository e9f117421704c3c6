package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-weekend-pathtracer/pkg/log"
	"github.com/df07/go-weekend-pathtracer/pkg/scene"
)

var logger = log.New("web")

// Request limits
const (
	minImageSize  = 1
	maxImageSize  = 2000
	maxSamples    = 10000
	maxDepthLimit = 1000
)

// Server renders scenes on demand over HTTP
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server. JSON scenes are listed from scenesDir.
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and discovered scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	files, err := scene.ListJSONScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scenes": append(scene.List(), files...),
	})
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sampling := sceneObj.SamplingConfig
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene":       sceneObj.Name,
		"description": sceneObj.Description,
		"spheres":     sceneObj.GetPrimitiveCount(),
		"defaults": map[string]interface{}{
			"width":           sampling.Width,
			"height":          sampling.Height,
			"samplesPerPixel": sampling.SamplesPerPixel,
			"seed":            sampling.Seed,
			"maxDepth":        sceneObj.Integrator.MaxDepth,
			"tMin":            sceneObj.Integrator.TMin,
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":   map[string]int{"min": minImageSize, "max": maxImageSize},
			"spp":      map[string]int{"min": 1, "max": maxSamples},
			"maxDepth": map[string]int{"min": 1, "max": maxDepthLimit},
		},
	})
}

// createScene resolves a built-in scene or a file from the scenes directory.
// Arbitrary paths are not accepted from clients.
func (s *Server) createScene(name string) (*scene.Scene, error) {
	files, err := scene.ListJSONScenes(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if info.Name == name {
			return scene.LoadJSONScene(info.FilePath)
		}
	}
	for _, info := range scene.List() {
		if info.Name == name {
			return scene.Create(name)
		}
	}
	return nil, fmt.Errorf("%w %q", scene.ErrUnknownScene, name)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warningf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
