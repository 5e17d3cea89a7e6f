package renderer

import (
	"errors"
	"fmt"
	"math"
	"runtime"
)

// ErrInvalidConfig is returned when render settings cannot produce an image
var ErrInvalidConfig = errors.New("invalid render configuration")

// Config contains rendering configuration
type Config struct {
	Width           int     // Image width in pixels
	Height          int     // Image height in pixels
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	NumWorkers      int     // Concurrent scanlines; 0 means runtime.NumCPU()
	Seed            int64   // Base seed for the per-row generators
	DisableJitter   bool    // Sample pixel centers instead of random offsets
	Gamma           float64 // Output encoding exponent; 0 or 1 writes linear values
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      0,
		Seed:            42,
		Gamma:           1.0,
	}
}

// Validate rejects settings that would divide by zero or render nothing
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: worker count cannot be negative, got %d", ErrInvalidConfig, c.NumWorkers)
	case c.Gamma < 0 || math.IsNaN(c.Gamma) || math.IsInf(c.Gamma, 0):
		return fmt.Errorf("%w: gamma must be a finite non-negative number, got %g", ErrInvalidConfig, c.Gamma)
	}
	return nil
}

// Workers returns the effective number of concurrent scanlines
func (c Config) Workers() int {
	if c.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.NumWorkers
}

// AspectRatio returns width / height
func (c Config) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Dump logs the effective settings
func (c Config) Dump(logger Logger) {
	jitter := "jittered"
	if c.DisableJitter {
		jitter = "pixel centers"
	}
	logger.Printf("= Settings\n")
	logger.Printf("=== %dx%d, %d samples/pixel (%s), max depth %d\n", c.Width, c.Height, c.SamplesPerPixel, jitter, c.MaxDepth)
	logger.Printf("=== %d workers, seed %d, gamma %g\n", c.Workers(), c.Seed, c.Gamma)
	logger.Printf("========================================================\n")
}
