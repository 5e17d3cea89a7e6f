package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// parallelEpsilon is the smallest |normal·direction| treated as an intersection
const parallelEpsilon = 1e-8

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3       // One corner of the quad
	U        core.Vec3       // First edge vector
	V        core.Vec3       // Second edge vector
	Normal   core.Vec3       // Unit normal (U × V normalized)
	D        float64         // Plane equation constant: normal · p = D
	W        core.Vec3       // (U × V) / |U × V|², for planar coordinates
	Material core.MaterialID // Material of the quad
}

// NewQuad creates a new quad from a corner point and two edge vectors.
// Collinear edges produce a degenerate quad that never reports a hit.
func NewQuad(corner, u, v core.Vec3, material core.MaterialID) Quad {
	n := u.Cross(v)
	q := Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Material: material,
	}

	lengthSq := n.LengthSquared()
	if lengthSq == 0 {
		return q
	}

	q.Normal = n.Normalize()
	q.D = q.Normal.Dot(corner)
	q.W = n.Divide(lengthSq)
	return q
}

// Hit tests if a ray intersects the quad in the open interval (tMin, tMax).
// On success it overwrites hit; UV are the planar coordinates along U and V.
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64, hit *core.HitRecord) bool {
	denominator := q.Normal.Dot(ray.Direction)

	// Ray is parallel to the plane (or the quad is degenerate)
	if math.Abs(denominator) < parallelEpsilon {
		return false
	}

	t := (q.D - q.Normal.Dot(ray.Origin)) / denominator
	if t <= tMin || t >= tMax {
		return false
	}

	// Express the hit point in the (U, V) edge basis
	hitPoint := ray.At(t)
	planar := hitPoint.Subtract(q.Corner)
	alpha := q.W.Dot(planar.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(planar))

	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return false
	}

	hit.T = t
	hit.Point = hitPoint
	hit.SetFaceNormal(ray, q.Normal)
	hit.UV = core.NewVec2(alpha, beta)
	hit.Material = q.Material

	return true
}
