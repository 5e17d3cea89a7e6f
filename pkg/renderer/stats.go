package renderer

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int64         // Total number of camera samples taken
	AverageSamples float64       // Average samples per pixel
	RowsRendered   int           // Scanlines completed
	Workers        int           // Concurrent scanline limit used
	Elapsed        time.Duration // Wall time of the render
}

// SamplesPerSecond returns camera samples per second of wall time
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of the linear image
func CalculateAverageLuminance(img *Image) float64 {
	if len(img.Pix) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range img.Pix {
		total += 0.2126*c.X + 0.7152*c.Y + 0.0722*c.Z
	}
	return total / float64(len(img.Pix))
}
