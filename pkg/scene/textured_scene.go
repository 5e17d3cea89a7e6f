package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewTexturedScene creates a checkered ground with cell-noise and checker spheres
func NewTexturedScene(opts Options) (*Scene, error) {
	s := NewScene()
	s.CameraConfig = geometry.CameraConfig{
		LookFrom:    core.NewVec3(0, 1.5, 4),
		LookAt:      core.NewVec3(0, 0.5, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        35,
		AspectRatio: 16.0 / 9.0,
	}

	noise := material.NewCellNoise(rand.New(rand.NewSource(opts.Seed)))

	// Ground UV spans [0,1] over the whole quad, so 1/40 gives 40x40 tiles
	checkerGround := s.AddMaterial(material.NewTexturedLambertian(core.NewVec3(0.8, 0.8, 0.8), material.NewChecker(1.0/40.0)))
	noisy := s.AddMaterial(material.NewTexturedLambertian(core.NewVec3(0.9, 0.5, 0.3), noise))
	checkered := s.AddMaterial(material.NewTexturedLambertian(core.NewVec3(0.2, 0.4, 0.9), material.NewChecker(0.1)))
	chrome := s.AddMaterial(material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.05))

	if err := s.addAll(
		geometry.QuadPrimitive(NewGroundQuad(core.NewVec3(0, 0, -1), 20, checkerGround)),
		geometry.SpherePrimitive(geometry.NewSphere(core.NewVec3(-1.1, 0.5, -1), 0.5, noisy)),
		geometry.SpherePrimitive(geometry.NewSphere(core.NewVec3(0, 0.5, -1.4), 0.5, chrome)),
		geometry.SpherePrimitive(geometry.NewSphere(core.NewVec3(1.1, 0.5, -1), 0.5, checkered)),
	); err != nil {
		return nil, err
	}
	return s, nil
}
