package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewMetal_ClampsFuzz(t *testing.T) {
	tests := []struct {
		name     string
		fuzz     float64
		expected float64
	}{
		{"negative", -0.5, 0},
		{"in range", 0.3, 0.3},
		{"above one", 2.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetal(core.NewVec3(0.8, 0.8, 0.8), tt.fuzz)
			if m.Fuzz != tt.expected {
				t.Errorf("Expected fuzz %f, got %f", tt.expected, m.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectMirror(t *testing.T) {
	m := NewMetal(core.NewVec3(0.9, 0.6, 0.2), 0)
	hit := hitAt(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), true)
	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	result, scattered := m.Scatter(ray, hit, core.NewSeededSampler(3))
	if !scattered {
		t.Fatal("Expected mirror reflection to scatter")
	}
	expected := core.NewVec3(1, 1, 0).Normalize()
	if !vecClose(result.Scattered.Direction, expected) {
		t.Errorf("Expected reflected direction %v, got %v", expected, result.Scattered.Direction)
	}
	if result.Attenuation != m.Albedo {
		t.Errorf("Expected attenuation %v, got %v", m.Albedo, result.Attenuation)
	}
}

func TestMetal_AbsorbsRaysScatteredBelowSurface(t *testing.T) {
	m := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	hit := hitAt(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), true)
	// Grazing incidence: the reflection is nearly tangent so large fuzz often pushes it below
	ray := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))

	absorbed, reflected := 0, 0
	for seed := int64(0); seed < 500; seed++ {
		result, scattered := m.Scatter(ray, hit, core.NewRandomSampler(rand.New(rand.NewSource(seed))))
		if scattered {
			reflected++
			if result.Scattered.Direction.Dot(hit.Normal) <= 0 {
				t.Fatalf("Scattered ray %v points into the surface", result.Scattered.Direction)
			}
		} else {
			absorbed++
		}
	}

	if absorbed == 0 {
		t.Error("Expected some grazing rays to be absorbed with fuzz 1")
	}
	if reflected == 0 {
		t.Error("Expected some grazing rays to reflect with fuzz 1")
	}
}
