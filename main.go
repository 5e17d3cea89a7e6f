package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/background"
	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// cliOptions holds the parsed command line after the config file and flags are merged
type cliOptions struct {
	settings    config.Settings
	normals     bool
	outPath     string
	cpuProfile  string
	printConfig bool
	help        bool
}

func main() {
	if err := execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// execute holds the deferred cleanup (profile, signal handler) so it runs before exit
func execute(args []string) error {
	opts, err := parseFlags(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		printHelp(os.Stdout)
		return nil
	}
	if err != nil {
		return err
	}

	if opts.help {
		printHelp(os.Stdout)
		return nil
	}
	if opts.printConfig {
		return opts.settings.Encode(os.Stdout)
	}

	if opts.cpuProfile != "" {
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			return fmt.Errorf("failed to create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	// Ctrl-C cancels the render instead of killing the process mid-write
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Starting Path Tracer...")
	_, err = run(ctx, opts, renderer.NewDefaultLogger())
	return err
}

// flagValues are the raw flag destinations before merging
type flagValues struct {
	configPath string
	sceneName  string
	envPath    string
	width      int
	height     int
	samples    int
	depth      int
	workers    int
	seed       int64
	gamma      float64
	opts       cliOptions
}

func newFlagSet(output io.Writer) (*flag.FlagSet, *flagValues) {
	defaults := config.Default()
	v := &flagValues{}
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {}

	fs.StringVar(&v.sceneName, "scene", defaults.Scene, "Scene preset: "+strings.Join(scene.Names(), ", "))
	fs.StringVar(&v.configPath, "config", "", "TOML render settings file")
	fs.IntVar(&v.width, "width", 0, "Image width (0 uses the scene's recommendation)")
	fs.IntVar(&v.height, "height", 0, "Image height (0 uses the scene's recommendation)")
	fs.IntVar(&v.samples, "samples", 0, "Samples per pixel (0 uses the scene's recommendation)")
	fs.IntVar(&v.depth, "depth", 0, "Maximum bounce depth (0 uses the scene's recommendation)")
	fs.IntVar(&v.workers, "workers", defaults.Render.NumWorkers, "Concurrent scanlines (0 = all CPUs)")
	fs.Int64Var(&v.seed, "seed", defaults.Render.Seed, "Random seed")
	fs.Float64Var(&v.gamma, "gamma", defaults.Render.Gamma, "Output gamma (1 = linear, 2 = sqrt encoding)")
	fs.StringVar(&v.envPath, "env", "", "Equirectangular PNG/JPEG environment map")
	fs.BoolVar(&v.opts.normals, "normals", false, "Shade by surface normal instead of path tracing")
	fs.StringVar(&v.opts.outPath, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	fs.StringVar(&v.opts.cpuProfile, "cpuprofile", "", "Write a CPU profile to this file")
	fs.BoolVar(&v.opts.printConfig, "print-config", false, "Print the effective settings as TOML and exit")
	fs.BoolVar(&v.opts.help, "help", false, "Show help information")
	return fs, v
}

// parseFlags reads args into options. Values come from, in increasing
// priority: defaults, the -config file, then flags given explicitly.
func parseFlags(args []string, output io.Writer) (cliOptions, error) {
	fs, v := newFlagSet(output)
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}
	if fs.NArg() > 0 {
		return cliOptions{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	opts := v.opts
	opts.settings = config.Default()
	if v.configPath != "" {
		loaded, err := config.Load(v.configPath)
		if err != nil {
			return cliOptions{}, err
		}
		opts.settings = loaded
	}

	s := &opts.settings
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			s.Scene = v.sceneName
		case "env":
			s.Environment = v.envPath
		case "width":
			s.Render.Width = v.width
		case "height":
			s.Render.Height = v.height
		case "samples":
			s.Render.SamplesPerPixel = v.samples
		case "depth":
			s.Render.MaxDepth = v.depth
		case "workers":
			s.Render.NumWorkers = v.workers
		case "seed":
			s.Render.Seed = v.seed
		case "gamma":
			s.Render.Gamma = v.gamma
		}
	})

	return opts, nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs, _ := newFlagSet(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.List() {
		fmt.Fprintf(w, "  %-12s - %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.png")
}

// run renders the configured scene and writes the PNG, returning its path
func run(ctx context.Context, opts cliOptions, logger core.Logger) (string, error) {
	chronoTotal := time.Now()
	s := opts.settings

	world, err := scene.New(s.Scene, scene.Options{Seed: s.Render.Seed, Camera: s.Camera})
	if err != nil {
		return "", err
	}
	logger.Printf("Using %s scene (%d primitives, %d materials)\n", s.Scene, world.GetPrimitiveCount(), world.Materials.Len())

	if s.Environment != "" {
		world.Background = background.LoadEnvironment(s.Environment, world.Background, logger)
	}

	renderConfig := s.RenderConfig(world.SamplingConfig)
	camera, err := geometry.NewCamera(world.CameraConfig.WithImageSize(renderConfig.Width, renderConfig.Height))
	if err != nil {
		return "", err
	}

	raytracer, err := renderer.NewRaytracer(world, camera, renderConfig, logger)
	if err != nil {
		return "", err
	}
	if opts.normals {
		raytracer.SetIntegrator(integrator.NewNormalIntegrator())
	}

	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return "", err
	}
	logger.Printf("Samples per pixel: %.1f, average luminance %.4f\n", stats.AverageSamples, renderer.CalculateAverageLuminance(img))

	filename := opts.outPath
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", s.Scene, fmt.Sprintf("render_%s.png", timestamp))
	}

	chronoSave := time.Now()
	if err := savePNG(filename, img.ToRGBA(renderConfig.Gamma)); err != nil {
		return "", err
	}
	logger.Printf("== Elapsed save %v\n", time.Since(chronoSave))
	logger.Printf("= Elapsed total %v\n", time.Since(chronoTotal))
	logger.Printf("Render saved as %s\n", filename)

	return filename, nil
}

// savePNG encodes img to path, creating parent directories as needed
func savePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to save PNG: %w", err)
	}
	return file.Close()
}
