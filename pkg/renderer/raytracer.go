package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Raytracer renders a scene through a camera. The scene, camera and
// materials are treated as read-only for the duration of Render.
type Raytracer struct {
	world      *scene.Scene
	camera     *geometry.Camera
	config     Config
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a raytracer using the path tracing integrator.
// A nil logger discards messages.
func NewRaytracer(world *scene.Scene, camera *geometry.Camera, config Config, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if world == nil {
		return nil, fmt.Errorf("%w: scene is required", ErrInvalidConfig)
	}
	if camera == nil {
		return nil, fmt.Errorf("%w: camera is required", ErrInvalidConfig)
	}
	if logger == nil {
		logger = NewDiscardLogger()
	}

	return &Raytracer{
		world:      world,
		camera:     camera,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(),
		logger:     logger,
	}, nil
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(i integrator.Integrator) {
	if i != nil {
		rt.integrator = i
	}
}

// Config returns the render configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render computes every pixel and returns the averaged linear image.
// Cancelling ctx stops the render and returns the context error.
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	start := time.Now()
	img := NewImage(rt.config.Width, rt.config.Height)
	workers := rt.config.Workers()

	rt.config.Dump(rt.logger)

	var counters rowCounters
	err := runRows(ctx, rt.config.Height, workers, func(y int) int64 {
		return rt.renderRow(y, img.Row(y))
	}, &counters)

	stats := RenderStats{
		TotalPixels:  rt.config.Width * rt.config.Height,
		TotalSamples: counters.samples.Load(),
		RowsRendered: int(counters.rows.Load()),
		Workers:      workers,
		Elapsed:      time.Since(start),
	}
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}

	if err != nil {
		rt.logger.Printf("Render stopped after %d/%d scanlines: %v\n", stats.RowsRendered, rt.config.Height, err)
		return nil, stats, err
	}

	rt.logger.Printf("== Elapsed render %v (%d samples, %.0f samples/s)\n",
		stats.Elapsed, stats.TotalSamples, stats.SamplesPerSecond())
	return img, stats, nil
}

// renderRow fills one scanline using a generator seeded from the row index
func (rt *Raytracer) renderRow(y int, row []core.Vec3) int64 {
	sampler := core.NewSeededSampler(rowSeed(rt.config.Seed, y))
	var samples int64

	for x := range row {
		var ps PixelStats
		for s := 0; s < rt.config.SamplesPerPixel; s++ {
			ps.AddSample(rt.samplePixel(x, y, sampler))
		}
		row[x] = ps.GetColor()
		samples += int64(ps.SampleCount)
	}

	return samples
}

// samplePixel traces one camera ray through pixel (x, y)
func (rt *Raytracer) samplePixel(x, y int, sampler core.Sampler) core.Vec3 {
	jx, jy := 0.5, 0.5
	if !rt.config.DisableJitter {
		offset := sampler.Get2D()
		jx, jy = offset.X, offset.Y
	}

	u, v := PixelToViewport(x, y, rt.config.Width, rt.config.Height, jx, jy)
	ray := rt.camera.GetRay(u, v, sampler)
	return rt.integrator.RayColor(ray, rt.world, sampler, rt.config.MaxDepth)
}

// PixelToViewport maps pixel (x, y) plus a sub-pixel offset in [0,1)² to the
// camera's normalized (u, v). Row 0 is the top of the image, so the vertical
// coordinate is flipped to match the camera's lower-left origin.
func PixelToViewport(x, y, width, height int, jx, jy float64) (u, v float64) {
	u = (float64(x) + jx) / float64(width)
	v = (float64(height-1-y) + jy) / float64(height)
	return u, v
}

// Render builds a camera-bound raytracer and renders world with config,
// returning packed RGB bytes (three per pixel, row-major, row 0 at the top).
func Render(ctx context.Context, camera *geometry.Camera, world *scene.Scene, config Config) ([]byte, error) {
	rt, err := NewRaytracer(world, camera, config, nil)
	if err != nil {
		return nil, err
	}
	img, _, err := rt.Render(ctx)
	if err != nil {
		return nil, err
	}
	return img.Bytes(config.Gamma), nil
}
