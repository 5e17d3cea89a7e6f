// Package config reads render settings from a TOML file.
//
// A file looks like:
//
//	scene = "random"
//	environment = "sky.png"
//
//	[render]
//	width = 400
//	height = 225
//	samples = 100
//	depth = 50
//	workers = 0
//	seed = 42
//	gamma = 2.0
//	jitter = true
//
//	[camera]
//	look_from = [13.0, 2.0, 3.0]
//	look_at = [0.0, 0.0, 0.0]
//	vfov = 20.0
//	aperture = 0.1
//	focus_distance = 10.0
//
// Every key is optional. Keys not present keep their defaults. Image size,
// samples and depth left unset (or 0) fall back to the scene's recommended
// values. Camera keys that are present replace the preset scene's camera,
// zero values included; keys not present keep it.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ErrInvalidFile is returned for files that decode but contain unknown keys
var ErrInvalidFile = errors.New("invalid config file")

// Settings is the resolved configuration of one render
type Settings struct {
	Scene       string                  // Preset scene name
	Environment string                  // Optional environment map path
	Render      renderer.Config         // Image and sampling settings
	Camera      geometry.CameraOverride // Keys set in the file replace the preset camera
}

// Default returns the settings used when no file is given. Size, samples
// and depth are left at 0 so RenderConfig takes them from the scene.
func Default() Settings {
	r := renderer.DefaultConfig()
	r.Width, r.Height, r.SamplesPerPixel, r.MaxDepth = 0, 0, 0, 0
	return Settings{
		Scene:  scene.DefaultSceneName,
		Render: r,
	}
}

// RenderConfig returns the render settings with unset fields filled from the
// scene's recommendation. Setting only one of width or height keeps the
// recommended aspect ratio.
func (s Settings) RenderConfig(recommended scene.SamplingConfig) renderer.Config {
	r := s.Render
	switch {
	case r.Width <= 0 && r.Height <= 0:
		r.Width, r.Height = recommended.Width, recommended.Height
	case r.Height <= 0 && recommended.Width > 0:
		r.Height = max(1, int(math.Round(float64(r.Width*recommended.Height)/float64(recommended.Width))))
	case r.Width <= 0 && recommended.Height > 0:
		r.Width = max(1, int(math.Round(float64(r.Height*recommended.Width)/float64(recommended.Height))))
	}
	if r.SamplesPerPixel <= 0 {
		r.SamplesPerPixel = recommended.SamplesPerPixel
	}
	if r.MaxDepth <= 0 {
		r.MaxDepth = recommended.MaxDepth
	}
	return r
}

type fileFormat struct {
	Scene       string         `toml:"scene"`
	Environment string         `toml:"environment,omitempty"`
	Render      renderSection  `toml:"render"`
	Camera      *cameraSection `toml:"camera,omitempty"`
}

type renderSection struct {
	Width   int     `toml:"width"`
	Height  int     `toml:"height"`
	Samples int     `toml:"samples"`
	Depth   int     `toml:"depth"`
	Workers int     `toml:"workers"`
	Seed    int64   `toml:"seed"`
	Gamma   float64 `toml:"gamma"`
	Jitter  bool    `toml:"jitter"`
}

// cameraSection uses pointers so a key set to zero is told apart from a
// missing key. Nil fields are not encoded.
type cameraSection struct {
	LookFrom      *[3]float64 `toml:"look_from"`
	LookAt        *[3]float64 `toml:"look_at"`
	Up            *[3]float64 `toml:"up"`
	VFov          *float64    `toml:"vfov"`
	Aperture      *float64    `toml:"aperture"`
	FocusDistance *float64    `toml:"focus_distance"`
}

// Load reads and resolves a TOML settings file over Default
func Load(path string) (Settings, error) {
	var f fileFormat
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	s, err := resolve(f, md)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode resolves TOML settings text over Default
func Decode(data string) (Settings, error) {
	var f fileFormat
	md, err := toml.Decode(data, &f)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return resolve(f, md)
}

// resolve applies only the keys present in the file
func resolve(f fileFormat, md toml.MetaData) (Settings, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Settings{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidFile, strings.Join(keys, ", "))
	}

	s := Default()
	if md.IsDefined("scene") {
		s.Scene = f.Scene
	}
	if md.IsDefined("environment") {
		s.Environment = f.Environment
	}

	r := &s.Render
	setInt(md, &r.Width, f.Render.Width, "render", "width")
	setInt(md, &r.Height, f.Render.Height, "render", "height")
	setInt(md, &r.SamplesPerPixel, f.Render.Samples, "render", "samples")
	setInt(md, &r.MaxDepth, f.Render.Depth, "render", "depth")
	setInt(md, &r.NumWorkers, f.Render.Workers, "render", "workers")
	if md.IsDefined("render", "seed") {
		r.Seed = f.Render.Seed
	}
	if md.IsDefined("render", "gamma") {
		r.Gamma = f.Render.Gamma
	}
	if md.IsDefined("render", "jitter") {
		r.DisableJitter = !f.Render.Jitter
	}

	if f.Camera != nil {
		s.Camera = geometry.CameraOverride{
			LookFrom:      toVec3(f.Camera.LookFrom),
			LookAt:        toVec3(f.Camera.LookAt),
			Up:            toVec3(f.Camera.Up),
			VFov:          f.Camera.VFov,
			Aperture:      f.Camera.Aperture,
			FocusDistance: f.Camera.FocusDistance,
		}
	}

	return s, nil
}

func setInt(md toml.MetaData, dst *int, value int, key ...string) {
	if md.IsDefined(key...) {
		*dst = value
	}
}

func toVec3(a *[3]float64) *core.Vec3 {
	if a == nil {
		return nil
	}
	v := core.NewVec3(a[0], a[1], a[2])
	return &v
}

func fromVec3(v *core.Vec3) *[3]float64 {
	if v == nil {
		return nil
	}
	return &[3]float64{v.X, v.Y, v.Z}
}

// Encode writes the settings in the file format Load reads
func (s Settings) Encode(w io.Writer) error {
	f := fileFormat{
		Scene:       s.Scene,
		Environment: s.Environment,
		Render: renderSection{
			Width:   s.Render.Width,
			Height:  s.Render.Height,
			Samples: s.Render.SamplesPerPixel,
			Depth:   s.Render.MaxDepth,
			Workers: s.Render.NumWorkers,
			Seed:    s.Render.Seed,
			Gamma:   s.Render.Gamma,
			Jitter:  !s.Render.DisableJitter,
		},
	}
	if !s.Camera.IsZero() {
		c := s.Camera
		f.Camera = &cameraSection{
			LookFrom:      fromVec3(c.LookFrom),
			LookAt:        fromVec3(c.LookAt),
			Up:            fromVec3(c.Up),
			VFov:          c.VFov,
			Aperture:      c.Aperture,
			FocusDistance: c.FocusDistance,
		}
	}
	return toml.NewEncoder(w).Encode(f)
}
