package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene(opts Options) (*Scene, error) {
	s := NewScene()
	s.CameraConfig = geometry.CameraConfig{
		LookFrom:      core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0, // Narrower field of view for focus effect
		Aperture:      0.05,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	// Create materials
	lambertianGreen := s.AddMaterial(material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6)))
	lambertianBlue := s.AddMaterial(material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	lambertianRed := s.AddMaterial(material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2)))
	metalSilver := s.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0))
	metalGold := s.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3))
	materialGlass := s.AddMaterial(material.NewDielectric(1.5))

	if err := s.addAll(
		geometry.SpherePrimitive(geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed)),
		geometry.SpherePrimitive(geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver)),
		geometry.SpherePrimitive(geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold)),
		geometry.SpherePrimitive(geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, materialGlass)),

		// Large but finite ground
		geometry.QuadPrimitive(NewGroundQuad(core.NewVec3(0, 0, 0), 10000.0, lambertianGreen)),

		// Hollow glass sphere with blue sphere inside
		geometry.SpherePrimitive(geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, materialGlass)),
		geometry.SpherePrimitive(geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), -0.24, materialGlass)),
		geometry.SpherePrimitive(geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue)),
	); err != nil {
		return nil, err
	}
	return s, nil
}

// NewTwoSpheresScene creates two touching diffuse spheres, blue on the left and red on the right
func NewTwoSpheresScene(opts Options) (*Scene, error) {
	s := NewScene()
	s.CameraConfig.VFov = 90

	r := math.Cos(math.Pi / 4)
	blue := s.AddMaterial(material.NewLambertian(core.NewVec3(0, 0, 1)))
	red := s.AddMaterial(material.NewLambertian(core.NewVec3(1, 0, 0)))

	if err := s.addAll(
		geometry.SpherePrimitive(geometry.NewSphere(core.NewVec3(-r, 0, -1), r, blue)),
		geometry.SpherePrimitive(geometry.NewSphere(core.NewVec3(r, 0, -1), r, red)),
	); err != nil {
		return nil, err
	}
	return s, nil
}

// NewEmptyScene creates a scene with no geometry; every ray sees the sky
func NewEmptyScene(opts Options) (*Scene, error) {
	return NewScene(), nil
}

// addAll appends primitives, stopping at the first with an unknown material
func (s *Scene) addAll(prims ...geometry.Primitive) error {
	for _, p := range prims {
		if err := s.Add(p); err != nil {
			return err
		}
	}
	return nil
}
