package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// randomFieldExtent bounds the grid of small spheres to [-extent, extent) on X and Z
const randomFieldExtent = 11

// NewRandomScene creates a large ground sphere covered in small randomly placed
// spheres, plus three large feature spheres. Layout is fixed by opts.Seed.
func NewRandomScene(opts Options) (*Scene, error) {
	random := rand.New(rand.NewSource(opts.Seed))

	s := NewScene()
	s.CameraConfig = geometry.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 10,
	}
	s.SamplingConfig.SamplesPerPixel = 50

	ground := s.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	if err := s.AddSphere(core.NewVec3(0, -1000, 0), 1000, ground); err != nil {
		return nil, err
	}

	// Shared glass material for every small glass sphere
	glass := s.AddMaterial(material.NewDielectric(1.5))
	keepClear := core.NewVec3(4, 0.2, 0)

	for a := -randomFieldExtent; a < randomFieldExtent; a++ {
		for b := -randomFieldExtent; b < randomFieldExtent; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(keepClear).Length() <= 0.9 {
				continue
			}

			var mat core.MaterialID
			switch {
			case chooseMat < 0.8:
				albedo := randomColor(random, 0, 1).MultiplyVec(randomColor(random, 0, 1))
				mat = s.AddMaterial(material.NewLambertian(albedo))
			case chooseMat < 0.95:
				albedo := randomColor(random, 0.5, 1)
				fuzz := 0.5 * random.Float64()
				mat = s.AddMaterial(material.NewMetal(albedo, fuzz))
			default:
				mat = glass
			}
			if err := s.AddSphere(center, 0.2, mat); err != nil {
				return nil, err
			}
		}
	}

	brown := s.AddMaterial(material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	mirror := s.AddMaterial(material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	if err := s.addAll(
		geometry.SpherePrimitive(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass)),
		geometry.SpherePrimitive(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, brown)),
		geometry.SpherePrimitive(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, mirror)),
	); err != nil {
		return nil, err
	}
	return s, nil
}

// randomColor returns a color with each component uniform in [lo, hi)
func randomColor(random *rand.Rand, lo, hi float64) core.Vec3 {
	span := hi - lo
	return core.NewVec3(
		lo+span*random.Float64(),
		lo+span*random.Float64(),
		lo+span*random.Float64(),
	)
}
