package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// NewDielectric creates a transparent material like glass (1.5) or water (1.33).
// A non-positive index has no physical meaning and is clamped to 1.
func NewDielectric(refractiveIndex float64) Material {
	if !(refractiveIndex > 0) {
		refractiveIndex = 1
	}
	return Material{Kind: KindDielectric, RefractiveIndex: refractiveIndex}
}

// scatterDielectric chooses between reflection and refraction using Schlick's approximation
func (m *Material) scatterDielectric(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	refractionRatio := m.RefractiveIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / m.RefractiveIndex // entering the material
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)

	var direction core.Vec3
	if CannotRefract(cosTheta, refractionRatio) || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = core.Reflect(unitDirection, hit.Normal)
	} else {
		direction = core.Refract(unitDirection, hit.Normal, refractionRatio)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: core.NewVec3(1, 1, 1),
	}, true
}

// CannotRefract reports total internal reflection for the given incidence cosine
func CannotRefract(cosTheta, refractionRatio float64) bool {
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	return refractionRatio*sinTheta > 1.0
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
