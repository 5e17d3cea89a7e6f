package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct{}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{}
}

// RayColor follows the path one bounce at a time, multiplying attenuations into
// the throughput until the path escapes to the background, is absorbed, or
// runs out of depth. This is the recurrence
// color(r, d) = attenuation * color(scattered, d-1), bounded by depth.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)
	var hit core.HitRecord

	for remaining := depth; remaining > 0; remaining-- {
		if !world.Hit(ray, HitEpsilon, math.Inf(1), &hit) {
			return throughput.MultiplyVec(world.Background.Color(ray.Direction))
		}

		mat, ok := world.Material(hit.Material)
		if !ok {
			// Unresolvable handle absorbs
			return core.Vec3{}
		}

		scatter, didScatter := mat.Scatter(ray, &hit, sampler)
		if !didScatter {
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Exceeded the bounce limit, no more light is gathered
	return core.Vec3{}
}
