package output

import (
	"bufio"
	"bytes"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// newTestFrame builds a frame with one sample per pixel
func newTestFrame(width, height int, color func(x, y int) core.Vec3) *renderer.Frame {
	frame := renderer.NewFrame(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			frame.Pixel(x, y).AddSample(color(x, y))
		}
	}
	return frame
}

func TestPixelBytes(t *testing.T) {
	tests := []struct {
		name     string
		radiance core.Vec3
		expected [3]uint8
	}{
		{"black", core.NewVec3(0, 0, 0), [3]uint8{0, 0, 0}},
		{"white", core.NewVec3(1, 1, 1), [3]uint8{255, 255, 255}},
		{"quarter is half after gamma", core.NewVec3(0.25, 0.25, 0.25), [3]uint8{127, 127, 127}},
		{"overexposed clamps", core.NewVec3(4, 1.5, 100), [3]uint8{255, 255, 255}},
		{"negative clamps", core.NewVec3(-1, -0.1, 0), [3]uint8{0, 0, 0}},
		{"NaN is black", core.NewVec3(math.NaN(), 0.25, 1), [3]uint8{0, 127, 255}},
		{"sky blue", core.NewVec3(0.5, 0.7, 1.0), [3]uint8{uint8(255.99 * math.Sqrt(0.5)), uint8(255.99 * math.Sqrt(0.7)), 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := PixelBytes(tt.radiance)
			if got := [3]uint8{r, g, b}; got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestEncodePPM_Format(t *testing.T) {
	// Left column white, right column black, rows distinguished by red
	frame := newTestFrame(2, 3, func(x, y int) core.Vec3 {
		if x == 0 {
			return core.NewVec3(1, 1, 1)
		}
		return core.NewVec3(float64(y)/4, 0, 0)
	})

	var buf bytes.Buffer
	if err := EncodePPM(&buf, frame); err != nil {
		t.Fatalf("EncodePPM: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	expected := []string{
		"P3",
		"2 3",
		"255",
		"255 255 255",
		"0 0 0",
		"255 255 255",
		"127 0 0",
		"255 255 255",
		"181 0 0",
	}
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(expected), len(lines), buf.String())
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("Line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}
}

func TestEncodePPM_ChannelRange(t *testing.T) {
	sampler := core.NewSeededSampler(42)
	frame := newTestFrame(16, 8, func(x, y int) core.Vec3 {
		return sampler.Get3D().Multiply(3).Subtract(core.NewVec3(1, 1, 1))
	})

	var buf bytes.Buffer
	if err := EncodePPM(&buf, frame); err != nil {
		t.Fatalf("EncodePPM: %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	count := 0
	for line := 0; scanner.Scan(); line++ {
		if line < 3 {
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) != 3 {
			t.Fatalf("Pixel line %q should have three fields", scanner.Text())
		}
		count++
	}
	if count != 16*8 {
		t.Errorf("Expected %d pixel lines, got %d", 16*8, count)
	}
}

func TestToRGBA_TopRowFirst(t *testing.T) {
	frame := newTestFrame(1, 2, func(x, y int) core.Vec3 {
		if y == 0 {
			return core.NewVec3(1, 0, 0)
		}
		return core.NewVec3(0, 0, 1)
	})

	img := ToRGBA(frame)
	if top := img.RGBAAt(0, 0); top.R != 255 || top.B != 0 || top.A != 255 {
		t.Errorf("Expected red top pixel, got %v", top)
	}
	if bottom := img.RGBAAt(0, 1); bottom.B != 255 || bottom.R != 0 {
		t.Errorf("Expected blue bottom pixel, got %v", bottom)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		err      error
	}{
		{"out.ppm", FormatPPM, nil},
		{"dir/OUT.PNG", FormatPNG, nil},
		{"image.jpg", "", ErrUnknownFormat},
		{"noext", "", ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, err := FormatFromPath(tt.path)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Expected error %v, got %v", tt.err, err)
			}
			if format != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, format)
			}
		})
	}

	if err := Encode(&bytes.Buffer{}, renderer.NewFrame(1, 1), Format("tiff")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	frame := newTestFrame(4, 2, func(x, y int) core.Vec3 {
		return core.NewVec3(0.25, 0.5, 1)
	})

	ppmPath := filepath.Join(dir, "out.ppm")
	if err := WriteFile(ppmPath, frame); err != nil {
		t.Fatalf("WriteFile(ppm): %v", err)
	}
	data, err := os.ReadFile(ppmPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "P3\n4 2\n255\n") {
		t.Errorf("Unexpected PPM header: %q", string(data[:min(len(data), 16)]))
	}

	pngPath := filepath.Join(dir, "out.png")
	if err := WriteFile(pngPath, frame); err != nil {
		t.Fatalf("WriteFile(png): %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Errorf("Expected 4x2 PNG, got %v", img.Bounds())
	}

	if err := WriteFile(filepath.Join(dir, "out.bmp"), frame); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}
