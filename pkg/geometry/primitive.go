package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Kind identifies a primitive variant
type Kind uint8

const (
	KindSphere Kind = iota
	KindQuad
)

// Primitive is a closed union of the intersectable shapes. Dispatch is a
// switch on Kind; only the field matching Kind is meaningful.
type Primitive struct {
	Kind   Kind
	Sphere Sphere
	Quad   Quad
}

// SpherePrimitive wraps a sphere
func SpherePrimitive(s Sphere) Primitive {
	return Primitive{Kind: KindSphere, Sphere: s}
}

// QuadPrimitive wraps a quad
func QuadPrimitive(q Quad) Primitive {
	return Primitive{Kind: KindQuad, Quad: q}
}

// Hit tests the wrapped shape
func (p *Primitive) Hit(ray core.Ray, tMin, tMax float64, hit *core.HitRecord) bool {
	switch p.Kind {
	case KindSphere:
		return p.Sphere.Hit(ray, tMin, tMax, hit)
	case KindQuad:
		return p.Quad.Hit(ray, tMin, tMax, hit)
	default:
		return false
	}
}

// MaterialID returns the material handle of the wrapped shape
func (p *Primitive) MaterialID() core.MaterialID {
	switch p.Kind {
	case KindSphere:
		return p.Sphere.Material
	case KindQuad:
		return p.Quad.Material
	default:
		return core.NoMaterial
	}
}

// String describes the primitive for logs
func (p Primitive) String() string {
	switch p.Kind {
	case KindSphere:
		return fmt.Sprintf("sphere{center=%v radius=%g material=%d}", p.Sphere.Center, p.Sphere.Radius, p.Sphere.Material)
	case KindQuad:
		return fmt.Sprintf("quad{corner=%v u=%v v=%v material=%d}", p.Quad.Corner, p.Quad.U, p.Quad.V, p.Quad.Material)
	default:
		return fmt.Sprintf("primitive{kind=%d}", p.Kind)
	}
}
