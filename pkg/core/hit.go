package core

// MaterialID is a handle into a scene's material table. Geometry stores the
// handle instead of the material so many primitives can share one material.
type MaterialID int

// NoMaterial marks a hit record that has not been filled by a primitive
const NoMaterial MaterialID = -1

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3       // Point of intersection
	Normal    Vec3       // Unit surface normal, always facing against the incoming ray
	T         float64    // Parameter t along the ray
	FrontFace bool       // Whether the ray approached from the outward side
	Material  MaterialID // Material of the hit object
	UV        Vec2       // Surface coordinates of the hit
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must be unit length.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
