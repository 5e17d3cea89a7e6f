package core

import "math/rand"

// maxRejectionAttempts bounds the rejection samplers. A uniform source accepts
// in under two draws on average, so this only triggers for degenerate samplers.
const maxRejectionAttempts = 64

// Sampler provides random sampling for rendering algorithms.
// Each render task owns its sampler; implementations are not safe for concurrent use.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler backed by its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomInUnitSphere returns a point strictly inside the unit sphere by rejection sampling
// the [-1,1]³ cube. Falls back to the origin if the sampler never produces an interior point.
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for range maxRejectionAttempts {
		s := sampler.Get3D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 2*s.Z-1)
		if p.LengthSquared() < 1 {
			return p
		}
	}
	return Vec3{}
}

// RandomInUnitDisk returns a point strictly inside the unit disk in the z=0 plane (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for range maxRejectionAttempts {
		s := sampler.Get2D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
	return Vec3{}
}

// RandomUnitVector returns a uniformly distributed unit direction
func RandomUnitVector(sampler Sampler) Vec3 {
	for range maxRejectionAttempts {
		s := sampler.Get3D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 2*s.Z-1)
		// Reject points too close to the origin to normalize reliably
		if lenSq := p.LengthSquared(); lenSq < 1 && lenSq > 1e-160 {
			return p.Normalize()
		}
	}
	return NewVec3(0, 0, 1)
}
