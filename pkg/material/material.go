package material

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Kind identifies a material variant
type Kind uint8

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

// String returns the variant name
func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Material is a closed set of scattering behaviors selected by Kind.
// Only the fields relevant to Kind are meaningful. Materials are read-only
// once added to a Table and are shared by every primitive referencing them.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3    // Lambertian and Metal base color
	Fuzz            float64      // Metal roughness in [0, 1]
	RefractiveIndex float64      // Dielectric index of refraction
	Texture         ScalarSource // Optional Lambertian albedo modulation
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The outgoing ray
	Attenuation core.Vec3 // Color attenuation for this bounce
}

// Scatter computes the outgoing ray for an incoming ray at a surface hit.
// It returns false when the ray is absorbed.
func (m *Material) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	default:
		return ScatterResult{}, false
	}
}

// String describes the material for logs
func (m Material) String() string {
	switch m.Kind {
	case KindMetal:
		return fmt.Sprintf("metal{albedo=%v fuzz=%g}", m.Albedo, m.Fuzz)
	case KindDielectric:
		return fmt.Sprintf("dielectric{ior=%g}", m.RefractiveIndex)
	default:
		return fmt.Sprintf("%s{albedo=%v textured=%t}", m.Kind, m.Albedo, m.Texture != nil)
	}
}
