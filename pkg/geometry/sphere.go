package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Sphere represents a sphere shape. A negative radius flips the normals
// inward, which turns the sphere into a hollow shell when nested in another.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.MaterialID
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.MaterialID) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects the sphere in the open interval (tMin, tMax).
// On success it overwrites hit with the nearest intersection.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, hit *core.HitRecord) bool {
	if s.Radius == 0 {
		return false
	}

	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	if a == 0 {
		return false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}
	sqrtD := math.Sqrt(discriminant)

	// Find the nearest root that lies in the acceptable range
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return false
		}
	}

	hit.T = root
	hit.Point = ray.At(root)
	outwardNormal := hit.Point.Subtract(s.Center).Divide(s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)
	hit.UV = sphereUV(outwardNormal)
	hit.Material = s.Material

	return true
}

// sphereUV maps a point on the unit sphere to (u, v) in [0,1]²:
// u is the angle around the Y axis from X=-1, v is the angle from Y=-1 to Y=+1.
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(core.ClampFloat(-p.Y, -1, 1))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
