package scene

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

func TestNew_AllPresets(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := New(name, Options{Seed: 42})
			if err != nil {
				t.Fatalf("Failed to build %s: %v", name, err)
			}
			if s.Background == nil {
				t.Error("Expected a background")
			}
			if _, err := geometry.NewCamera(s.CameraConfig); err != nil {
				t.Errorf("Preset camera is invalid: %v", err)
			}
			sc := s.SamplingConfig
			if sc.Width <= 0 || sc.Height <= 0 || sc.SamplesPerPixel <= 0 || sc.MaxDepth <= 0 {
				t.Errorf("Invalid recommended sampling config %+v", sc)
			}
			for _, p := range s.Primitives {
				if _, ok := s.Material(p.MaterialID()); !ok {
					t.Errorf("Primitive %v references unknown material", p)
				}
			}
			if name != "empty" && s.GetPrimitiveCount() == 0 {
				t.Error("Expected preset to contain geometry")
			}
		})
	}
}

func TestNew_UnknownScene(t *testing.T) {
	_, err := New("does-not-exist", Options{})
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestNew_CameraOverride(t *testing.T) {
	vfov, aperture := 25.0, 0.0
	s, err := New("default", Options{Camera: geometry.CameraOverride{VFov: &vfov, Aperture: &aperture}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.CameraConfig.VFov != 25 {
		t.Errorf("Expected overridden vfov 25, got %f", s.CameraConfig.VFov)
	}
	if s.CameraConfig.Aperture != 0 {
		t.Errorf("Expected explicit zero aperture, got %f", s.CameraConfig.Aperture)
	}
	if s.CameraConfig.LookAt != core.NewVec3(0, 0.5, -1) {
		t.Errorf("Expected preset look-at preserved, got %v", s.CameraConfig.LookAt)
	}
}

func TestNewTwoSpheresScene_Layout(t *testing.T) {
	s, err := New("two-spheres", Options{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(s.Primitives) != 2 {
		t.Fatalf("Expected 2 primitives, got %d", len(s.Primitives))
	}

	r := math.Cos(math.Pi / 4)
	left := s.Primitives[0].Sphere
	right := s.Primitives[1].Sphere
	if left.Center != core.NewVec3(-r, 0, -1) || right.Center != core.NewVec3(r, 0, -1) {
		t.Errorf("Unexpected centers %v, %v", left.Center, right.Center)
	}

	leftMat, _ := s.Material(left.Material)
	rightMat, _ := s.Material(right.Material)
	if leftMat.Albedo.Z <= leftMat.Albedo.X || rightMat.Albedo.X <= rightMat.Albedo.Z {
		t.Errorf("Expected blue left and red right, got %v and %v", leftMat.Albedo, rightMat.Albedo)
	}
}

func TestNewRandomScene_Deterministic(t *testing.T) {
	a, err := New("random", Options{Seed: 7})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b, _ := New("random", Options{Seed: 7})
	c, _ := New("random", Options{Seed: 8})

	if len(a.Primitives) != len(b.Primitives) {
		t.Fatalf("Same seed produced %d and %d primitives", len(a.Primitives), len(b.Primitives))
	}
	for i := range a.Primitives {
		if a.Primitives[i] != b.Primitives[i] {
			t.Fatalf("Primitive %d differs for the same seed", i)
		}
	}

	differs := len(a.Primitives) != len(c.Primitives)
	for i := 0; !differs && i < len(a.Primitives); i++ {
		differs = a.Primitives[i] != c.Primitives[i]
	}
	if !differs {
		t.Error("Expected different seeds to produce different layouts")
	}
}

func TestNamesAndList(t *testing.T) {
	names := Names()
	if !sort.StringsAreSorted(names) {
		t.Errorf("Expected sorted names, got %v", names)
	}
	if len(List()) != len(names) {
		t.Errorf("Expected %d scene infos, got %d", len(names), len(List()))
	}

	found := false
	for _, name := range names {
		if name == DefaultSceneName {
			found = true
		}
	}
	if !found {
		t.Errorf("Default scene %q not registered", DefaultSceneName)
	}
}
