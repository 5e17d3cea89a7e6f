package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// HitEpsilon is the minimum hit distance for every ray, suppressing self-intersection
const HitEpsilon = 1e-4

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe for concurrent use; all per-call randomness
// comes from sampler.
type Integrator interface {
	// RayColor estimates the radiance along ray with at most depth scattering events.
	// depth <= 0 returns black.
	RayColor(ray core.Ray, world *scene.Scene, sampler core.Sampler, depth int) core.Vec3
}
