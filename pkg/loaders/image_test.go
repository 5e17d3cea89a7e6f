package loaders

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()

	// Create a simple 2x2 test image
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}) // Top-left: white
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})     // Top-right: red
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})     // Bottom-left: green
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})     // Bottom-right: blue

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
}

// TestLoadImage creates a test PNG and verifies loading
func TestLoadImage(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.png")
	writeTestPNG(t, testFile)

	imageData, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if imageData.Width != 2 || imageData.Height != 2 {
		t.Errorf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
	}
	if len(imageData.Pixels) != 4 {
		t.Errorf("Expected 4 pixels, got %d", len(imageData.Pixels))
	}

	checkColor := func(name string, got, expected core.Vec3) {
		const tolerance = 0.01
		if got.Subtract(expected).Length() > tolerance {
			t.Errorf("%s: expected %v, got %v", name, expected, got)
		}
	}

	// Row-major order
	checkColor("Top-left (white)", imageData.Pixels[0], core.NewVec3(1, 1, 1))
	checkColor("Top-right (red)", imageData.Pixels[1], core.NewVec3(1, 0, 0))
	checkColor("Bottom-left (green)", imageData.Pixels[2], core.NewVec3(0, 1, 0))
	checkColor("Bottom-right (blue)", imageData.Pixels[3], core.NewVec3(0, 0, 1))
}

func TestImageData_AtClamps(t *testing.T) {
	data := &ImageData{
		Width:  2,
		Height: 1,
		Pixels: []core.Vec3{core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},
	}

	tests := []struct {
		x, y     int
		expected core.Vec3
	}{
		{0, 0, core.NewVec3(1, 0, 0)},
		{1, 0, core.NewVec3(0, 1, 0)},
		{-5, 3, core.NewVec3(1, 0, 0)},
		{7, -1, core.NewVec3(0, 1, 0)},
	}
	for _, tt := range tests {
		if got := data.At(tt.x, tt.y); got != tt.expected {
			t.Errorf("At(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
		}
	}
}

// TestLoadImageNotFound verifies error handling for missing files
func TestLoadImageNotFound(t *testing.T) {
	_, err := LoadImage("nonexistent.png")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestDecodeImage_Invalid(t *testing.T) {
	if _, err := DecodeImage(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("Expected error for garbage input, got nil")
	}
}
