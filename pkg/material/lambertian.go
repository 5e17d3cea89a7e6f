package material

import "github.com/df07/go-pathtracer/pkg/core"

// NewLambertian creates a perfectly diffuse material with a solid albedo
func NewLambertian(albedo core.Vec3) Material {
	return Material{Kind: KindLambertian, Albedo: albedo}
}

// NewTexturedLambertian creates a diffuse material whose albedo is scaled by a procedural texture
func NewTexturedLambertian(albedo core.Vec3, texture ScalarSource) Material {
	return Material{Kind: KindLambertian, Albedo: albedo, Texture: texture}
}

// scatterLambertian always scatters: the direction is the normal plus a random unit vector
func (m *Material) scatterLambertian(hit *core.HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))

	// Catch degenerate scatter direction
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	attenuation := m.Albedo
	if m.Texture != nil {
		attenuation = attenuation.Multiply(m.Texture.Value(hit.UV, hit.Point))
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: attenuation,
	}, true
}
