package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testScene = `{
  "name": "tiny",
  "description": "one red sphere",
  "camera": {"lookFrom": [0, 0, 0], "lookAt": [0, 0, -1], "vfov": 90},
  "image": {"width": 8, "height": 4, "samplesPerPixel": 2},
  "materials": {"red": {"type": "lambertian", "albedo": [0.8, 0.1, 0.1]}},
  "spheres": [{"center": [0, 0, -1], "radius": 0.5, "material": "red"}]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tiny.json"), []byte(testScene), 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}
	return NewServer(0, dir)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestScenes(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body struct {
		Scenes []struct{ Name, Type string }
	}
	decode(t, rec, &body)

	names := map[string]bool{}
	for _, s := range body.Scenes {
		names[s.Name] = true
	}
	for _, want := range []string{"default", "simple", "random", "tiny"} {
		if !names[want] {
			t.Errorf("Expected scene %q in %v", want, body.Scenes)
		}
	}
}

func TestSceneConfig(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/scene-config?scene=tiny")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Scene    string
		Spheres  int
		Defaults map[string]float64
	}
	decode(t, rec, &body)
	if body.Scene != "tiny" || body.Spheres != 1 {
		t.Errorf("Unexpected scene info %+v", body)
	}
	if body.Defaults["width"] != 8 || body.Defaults["height"] != 4 || body.Defaults["samplesPerPixel"] != 2 {
		t.Errorf("Expected defaults from the scene file, got %v", body.Defaults)
	}

	if rec := get(t, s, "/api/scene-config?scene=nope"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown scene, got %d", rec.Code)
	}
}

func TestRender_PNG(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/render?scene=tiny&width=6&height=3&spp=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
	if got := rec.Header().Get("X-Total-Samples"); got != "18" {
		t.Errorf("Expected 18 samples, got %q", got)
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Errorf("Expected 6x3 image, got %v", b)
	}
}

func TestRender_PPM(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/render?scene=tiny&width=2&height=2&spp=1&format=ppm")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Body.String(), "P3\n2 2\n255\n") {
		t.Errorf("Unexpected PPM header %q", rec.Body.String())
	}
	if lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n"); len(lines) != 3+4 {
		t.Errorf("Expected 7 lines, got %d", len(lines))
	}
}

func TestRender_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"unknown scene", "scene=missing", http.StatusNotFound},
		{"path not allowed", "scene=../etc/passwd.json", http.StatusNotFound},
		{"bad width", "scene=tiny&width=abc", http.StatusBadRequest},
		{"width too large", "scene=tiny&width=5000", http.StatusBadRequest},
		{"zero spp", "scene=tiny&spp=0", http.StatusBadRequest},
		{"bad seed", "scene=tiny&seed=x", http.StatusBadRequest},
		{"bad format", "scene=tiny&format=gif", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/api/render?"+tt.query)
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestInspect(t *testing.T) {
	s := newTestServer(t)

	// Center pixel looks straight at the red sphere
	rec := get(t, s, "/api/inspect?scene=tiny&width=8&height=4&x=4&y=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var hit InspectResponse
	decode(t, rec, &hit)
	if !hit.Hit || hit.MaterialType != "lambertian" {
		t.Fatalf("Expected a lambertian hit, got %+v", hit)
	}
	if hit.Distance <= 0.4 || hit.Distance >= 0.6 {
		t.Errorf("Expected distance near 0.5, got %f", hit.Distance)
	}
	if hit.Normal[2] <= 0 {
		t.Errorf("Expected normal facing the camera, got %v", hit.Normal)
	}

	// Top left corner sees only sky
	rec = get(t, s, "/api/inspect?scene=tiny&width=8&height=4&x=0&y=0")
	var miss InspectResponse
	decode(t, rec, &miss)
	if miss.Hit {
		t.Errorf("Expected a miss at the corner, got %+v", miss)
	}

	for _, query := range []string{"x=8&y=0", "x=-1&y=0", "x=a&y=0", "x=0"} {
		if rec := get(t, s, "/api/inspect?scene=tiny&width=8&height=4&"+query); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", query, rec.Code)
		}
	}
}
