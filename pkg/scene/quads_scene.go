package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewQuadsScene creates five colored quads facing a square camera
func NewQuadsScene(opts Options) (*Scene, error) {
	s := NewScene()
	s.CameraConfig = geometry.CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 9),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        80,
		AspectRatio: 1.0,
	}
	s.SamplingConfig.Width = 400
	s.SamplingConfig.Height = 400

	leftRed := s.AddMaterial(material.NewLambertian(core.NewVec3(1.0, 0.2, 0.2)))
	backGreen := s.AddMaterial(material.NewLambertian(core.NewVec3(0.2, 1.0, 0.2)))
	rightBlue := s.AddMaterial(material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0)))
	upperOrange := s.AddMaterial(material.NewLambertian(core.NewVec3(1.0, 0.5, 0.0)))
	lowerTeal := s.AddMaterial(material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8)))

	if err := s.addAll(
		geometry.QuadPrimitive(geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), leftRed)),
		geometry.QuadPrimitive(geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), backGreen)),
		geometry.QuadPrimitive(geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), rightBlue)),
		geometry.QuadPrimitive(geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), upperOrange)),
		geometry.QuadPrimitive(geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), lowerTeal)),
	); err != nil {
		return nil, err
	}
	return s, nil
}
