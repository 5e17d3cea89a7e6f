package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/geometry"
)

// ErrUnknownScene is returned by New for a name with no registered preset
var ErrUnknownScene = errors.New("unknown scene")

// DefaultSceneName is the preset used when none is requested
const DefaultSceneName = "default"

// Options parameterize preset construction
type Options struct {
	Seed   int64                   // Seed for presets with random layout or textures
	Camera geometry.CameraOverride // Set fields replace the preset camera
}

// SceneInfo describes a registered preset
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to New
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
}

type preset struct {
	info  SceneInfo
	build func(Options) (*Scene, error)
}

var presets = map[string]preset{
	"default": {
		info:  SceneInfo{ID: "default", DisplayName: "Default", Description: "Diffuse, metal, glass and hollow glass spheres on a ground plane"},
		build: NewDefaultScene,
	},
	"two-spheres": {
		info:  SceneInfo{ID: "two-spheres", DisplayName: "Two Spheres", Description: "Touching blue and red diffuse spheres under a wide camera"},
		build: NewTwoSpheresScene,
	},
	"quads": {
		info:  SceneInfo{ID: "quads", DisplayName: "Quads", Description: "Five colored parallelograms forming an open box"},
		build: NewQuadsScene,
	},
	"random": {
		info:  SceneInfo{ID: "random", DisplayName: "Random Spheres", Description: "Seeded field of small random spheres with three large feature spheres"},
		build: NewRandomScene,
	},
	"textured": {
		info:  SceneInfo{ID: "textured", DisplayName: "Textured", Description: "Checker and cell-noise textured surfaces"},
		build: NewTexturedScene,
	},
	"empty": {
		info:  SceneInfo{ID: "empty", DisplayName: "Empty", Description: "No geometry, sky only"},
		build: NewEmptyScene,
	},
}

// New builds the named preset and applies the camera overrides in opts
func New(name string, opts Options) (*Scene, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
	}

	s, err := p.build(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %q: %w", name, err)
	}
	s.CameraConfig = opts.Camera.Apply(s.CameraConfig)
	return s, nil
}

// Names returns the registered preset names in sorted order
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns metadata for every preset, sorted by display name
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(presets))
	for _, p := range presets {
		scenes = append(scenes, p.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes
}
