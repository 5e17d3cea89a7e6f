package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/background"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrUnknownMaterial is returned when a primitive references a handle not in the material table
var ErrUnknownMaterial = errors.New("unknown material handle")

// Scene contains all the elements needed for rendering. It is built once
// and read-only while a render is in flight.
type Scene struct {
	Primitives     []geometry.Primitive // Objects in the scene, tested in order
	Materials      *material.Table      // Materials referenced by primitives
	Background     background.Source    // Radiance for escaping rays
	CameraConfig   geometry.CameraConfig
	SamplingConfig SamplingConfig
}

// SamplingConfig contains the recommended render settings for a scene
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// NewScene creates an empty scene under the default sky
func NewScene() *Scene {
	return &Scene{
		Materials:  material.NewTable(),
		Background: background.NewDefaultSky(),
		CameraConfig: geometry.CameraConfig{
			LookFrom:    core.NewVec3(0, 0, 0),
			LookAt:      core.NewVec3(0, 0, -1),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        90,
			AspectRatio: 16.0 / 9.0,
		},
		SamplingConfig: SamplingConfig{
			Width:           400,
			Height:          225,
			SamplesPerPixel: 100,
			MaxDepth:        50,
		},
	}
}

// AddMaterial stores a material and returns the handle primitives use to reference it
func (s *Scene) AddMaterial(m material.Material) core.MaterialID {
	return s.Materials.Add(m)
}

// Add appends a primitive after checking its material handle
func (s *Scene) Add(p geometry.Primitive) error {
	id := p.MaterialID()
	if _, ok := s.Materials.Get(id); !ok {
		return fmt.Errorf("%w: %d for %v", ErrUnknownMaterial, id, p)
	}
	s.Primitives = append(s.Primitives, p)
	return nil
}

// AddSphere adds a sphere referencing material mat
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat core.MaterialID) error {
	return s.Add(geometry.SpherePrimitive(geometry.NewSphere(center, radius, mat)))
}

// AddQuad adds a parallelogram referencing material mat
func (s *Scene) AddQuad(corner, u, v core.Vec3, mat core.MaterialID) error {
	return s.Add(geometry.QuadPrimitive(geometry.NewQuad(corner, u, v, mat)))
}

// Hit returns the nearest intersection across every primitive in (tMin, tMax).
// Each successful hit shrinks the search interval, so hit ends up holding the closest one.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64, hit *core.HitRecord) bool {
	var candidate core.HitRecord
	hitAnything := false
	closest := tMax

	for i := range s.Primitives {
		if s.Primitives[i].Hit(ray, tMin, closest, &candidate) {
			hitAnything = true
			closest = candidate.T
			*hit = candidate
		}
	}

	return hitAnything
}

// Material resolves a material handle
func (s *Scene) Material(id core.MaterialID) (*material.Material, bool) {
	return s.Materials.Get(id)
}

// GetPrimitiveCount returns the number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Primitives)
}

// NewGroundQuad creates a large horizontal quad centered at the given point with normal (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, mat core.MaterialID) geometry.Quad {
	// Create corner at the -X/+Z end so u × v points up
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z+size/2)
	// Edge vectors: u along +X, v along -Z
	// u × v = (size,0,0) × (0,0,-size) = (0,size²,0) which normalizes to (0,1,0)
	u := core.NewVec3(size, 0, 0)
	v := core.NewVec3(0, 0, -size)
	return geometry.NewQuad(corner, u, v, mat)
}
