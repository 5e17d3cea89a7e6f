package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidCamera is returned when a camera configuration cannot produce rays
var ErrInvalidCamera = errors.New("invalid camera configuration")

// CameraConfig describes a thin-lens camera
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction; zero means +Y
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Viewport width / height
	Aperture      float64   // Lens diameter; 0 is a pinhole camera
	FocusDistance float64   // Distance to the plane of perfect focus; 0 means |LookAt - LookFrom|
}

// WithImageSize returns a copy of the config with the aspect ratio of a width x height image
func (c CameraConfig) WithImageSize(width, height int) CameraConfig {
	if width > 0 && height > 0 {
		c.AspectRatio = float64(width) / float64(height)
	}
	return c
}

// CameraOverride replaces selected fields of a camera configuration. Nil
// fields keep the base value, so an explicit zero (a pinhole aperture, a
// look-at at the origin) is a valid override.
type CameraOverride struct {
	LookFrom      *core.Vec3
	LookAt        *core.Vec3
	Up            *core.Vec3
	VFov          *float64
	Aperture      *float64
	FocusDistance *float64
}

// IsZero reports whether the override changes nothing
func (o CameraOverride) IsZero() bool {
	return o == CameraOverride{}
}

// Apply returns base with every set field of the override applied
func (o CameraOverride) Apply(base CameraConfig) CameraConfig {
	result := base
	if o.LookFrom != nil {
		result.LookFrom = *o.LookFrom
	}
	if o.LookAt != nil {
		result.LookAt = *o.LookAt
	}
	if o.Up != nil {
		result.Up = *o.Up
	}
	if o.VFov != nil {
		result.VFov = *o.VFov
	}
	if o.Aperture != nil {
		result.Aperture = *o.Aperture
	}
	if o.FocusDistance != nil {
		result.FocusDistance = *o.FocusDistance
	}
	return result
}

// Camera generates rays for rendering. It is immutable after construction
// and may be shared by all render workers.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis
	lensRadius      float64
	config          CameraConfig
}

// NewCamera derives the viewport and lens from the configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Up == (core.Vec3{}) {
		config.Up = core.NewVec3(0, 1, 0)
	}
	if !(config.VFov > 0 && config.VFov < 180) {
		return nil, fmt.Errorf("%w: vertical fov must be in (0, 180) degrees, got %g", ErrInvalidCamera, config.VFov)
	}
	if !(config.AspectRatio > 0) || math.IsInf(config.AspectRatio, 0) {
		return nil, fmt.Errorf("%w: aspect ratio must be positive, got %g", ErrInvalidCamera, config.AspectRatio)
	}
	if config.Aperture < 0 {
		return nil, fmt.Errorf("%w: aperture cannot be negative, got %g", ErrInvalidCamera, config.Aperture)
	}
	if config.FocusDistance < 0 {
		return nil, fmt.Errorf("%w: focus distance cannot be negative, got %g", ErrInvalidCamera, config.FocusDistance)
	}

	view := config.LookFrom.Subtract(config.LookAt)
	if view.NearZero() {
		return nil, fmt.Errorf("%w: look-from and look-at are the same point %v", ErrInvalidCamera, config.LookFrom)
	}
	if config.FocusDistance == 0 {
		config.FocusDistance = view.Length()
	}

	w := view.Normalize()
	right := config.Up.Cross(w)
	if right.NearZero() {
		return nil, fmt.Errorf("%w: up vector %v is parallel to the view direction", ErrInvalidCamera, config.Up)
	}
	u := right.Normalize()
	v := w.Cross(u)

	h := math.Tan(core.DegreesToRadians(config.VFov) / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	// Scale the viewport out to the focus plane so objects there are sharp
	origin := config.LookFrom
	horizontal := u.Multiply(config.FocusDistance * viewportWidth)
	vertical := v.Multiply(config.FocusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Divide(2)).
		Subtract(vertical.Divide(2)).
		Subtract(w.Multiply(config.FocusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		config:          config,
	}, nil
}

// GetRay generates a ray through normalized image-plane coordinates (s, t),
// where (0, 0) is the lower-left corner. With a non-zero aperture the origin
// is jittered over the lens disk using sampler.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	return core.NewRay(origin, target.Subtract(origin))
}

// GetCenterRay generates the pinhole ray through (s, t): it starts at the
// lens center and passes through the same focus-plane point as GetRay
func (c *Camera) GetCenterRay(s, t float64) core.Ray {
	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))
	return core.NewRay(c.origin, target.Subtract(c.origin))
}

// Config returns the effective configuration, with defaults resolved
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Origin returns the camera position
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}
