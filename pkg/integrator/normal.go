package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// NormalIntegrator shades the first hit by its surface normal, mapped from
// [-1,1] to [0,1]. Ignores materials; useful for checking geometry.
type NormalIntegrator struct{}

// NewNormalIntegrator creates a normal-shading integrator
func NewNormalIntegrator() *NormalIntegrator {
	return &NormalIntegrator{}
}

// RayColor implements Integrator
func (ni *NormalIntegrator) RayColor(ray core.Ray, world *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	var hit core.HitRecord
	if !world.Hit(ray, HitEpsilon, math.Inf(1), &hit) {
		return world.Background.Color(ray.Direction)
	}
	return fit01(hit.Normal)
}

// fit01 maps each component from [-1,1] to [0,1]
func fit01(v core.Vec3) core.Vec3 {
	return v.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
