package material

import "github.com/df07/go-pathtracer/pkg/core"

// fixedSampler returns the same value for every dimension
type fixedSampler struct{ value float64 }

func (f fixedSampler) Get1D() float64 { return f.value }
func (f fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(f.value, f.value)
}
func (f fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(f.value, f.value, f.value)
}

func hitAt(point, normal core.Vec3, frontFace bool) *core.HitRecord {
	return &core.HitRecord{
		Point:     point,
		Normal:    normal,
		T:         1.0,
		FrontFace: frontFace,
	}
}
