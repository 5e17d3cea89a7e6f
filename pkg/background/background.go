// Package background provides the radiance returned for rays that escape the scene.
package background

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Source returns the radiance arriving from direction dir. Implementations
// must be safe for concurrent use.
type Source interface {
	Color(dir core.Vec3) core.Vec3
}

// Gradient blends linearly between a horizon and a zenith color on the
// direction's Y component.
type Gradient struct {
	Horizon core.Vec3 // Color at dir.Y = -1
	Zenith  core.Vec3 // Color at dir.Y = +1
}

// NewGradient creates a gradient background
func NewGradient(horizon, zenith core.Vec3) *Gradient {
	return &Gradient{Horizon: horizon, Zenith: zenith}
}

// NewDefaultSky returns the white-to-light-blue sky
func NewDefaultSky() *Gradient {
	return NewGradient(core.NewVec3(1.0, 1.0, 1.0), core.NewVec3(0.5, 0.7, 1.0))
}

// Color implements Source
func (g *Gradient) Color(dir core.Vec3) core.Vec3 {
	unit := dir.Normalize()
	t := 0.5 * (unit.Y + 1.0) // Map Y from [-1,1] to [0,1]
	return g.Horizon.Lerp(g.Zenith, t)
}
