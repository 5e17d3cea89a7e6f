package material

import "github.com/df07/go-pathtracer/pkg/core"

// NewMetal creates a new metal material. Fuzz is clamped to [0, 1]:
// 0 is a perfect mirror, 1 is very fuzzy.
func NewMetal(albedo core.Vec3, fuzz float64) Material {
	return Material{Kind: KindMetal, Albedo: albedo, Fuzz: core.ClampFloat(fuzz, 0, 1)}
}

// scatterMetal reflects about the normal and perturbs the result inside a sphere of radius Fuzz
func (m *Material) scatterMetal(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzz))
	}

	scattered := core.NewRay(hit.Point, reflected)

	// Fuzzed rays that end up below the surface are absorbed
	scatters := scattered.Direction.Dot(hit.Normal) > 0

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, scatters
}
