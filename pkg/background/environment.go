package background

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
)

// Environment looks up an equirectangular (latitude-longitude) image by direction
type Environment struct {
	image *loaders.ImageData
}

// NewEnvironment wraps decoded image data. Returns nil for an image without pixels.
func NewEnvironment(image *loaders.ImageData) *Environment {
	if image == nil || image.Width <= 0 || image.Height <= 0 || len(image.Pixels) < image.Width*image.Height {
		return nil
	}
	return &Environment{image: image}
}

// Color implements Source using nearest-neighbor filtering
func (e *Environment) Color(dir core.Vec3) core.Vec3 {
	unit := dir.Normalize()
	if unit == (core.Vec3{}) {
		return core.Vec3{}
	}

	// Same parameterization as sphere UV: u around Y from -X, v from -Y to +Y
	theta := math.Acos(core.ClampFloat(-unit.Y, -1, 1))
	phi := math.Atan2(-unit.Z, unit.X) + math.Pi
	u := phi / (2 * math.Pi)
	v := theta / math.Pi

	// V=0 is bottom, V=1 is top; image rows start at the top
	x := int(u * float64(e.image.Width))
	y := int((1.0 - v) * float64(e.image.Height))
	return e.image.At(x, y)
}

// LoadEnvironment loads an environment map from path. Any failure is logged
// and fallback is returned instead, so a render never fails on a bad map.
func LoadEnvironment(path string, fallback Source, logger core.Logger) Source {
	data, err := loaders.LoadImage(path)
	if err != nil {
		if logger != nil {
			logger.Printf("Warning: environment map unavailable, using gradient sky: %v\n", err)
		}
		return fallback
	}

	env := NewEnvironment(data)
	if env == nil {
		if logger != nil {
			logger.Printf("Warning: environment map %s is empty, using gradient sky\n", path)
		}
		return fallback
	}
	if logger != nil {
		logger.Printf("Loaded environment map %s (%dx%d)\n", path, data.Width, data.Height)
	}
	return env
}
