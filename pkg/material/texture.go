package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ScalarSource provides a spatially varying scalar used to modulate albedo.
// Implementations must be safe for concurrent reads.
type ScalarSource interface {
	// Value returns the scalar at the given surface UV and world-space point
	Value(uv core.Vec2, point core.Vec3) float64
}

// Checker alternates between full and half intensity in UV space
type Checker struct {
	Size float64 // Cell size in UV units
}

// NewChecker creates a UV checkerboard with the given cell size
func NewChecker(size float64) *Checker {
	return &Checker{Size: size}
}

// Value returns 0.5 on odd cells and 1 on even cells
func (c *Checker) Value(uv core.Vec2, point core.Vec3) float64 {
	if c.Size <= 0 {
		return 1
	}
	cu := int(math.Floor(uv.X / c.Size))
	cv := int(math.Floor(uv.Y / c.Size))
	if (cu+cv)&1 != 0 {
		return 0.5
	}
	return 1
}
