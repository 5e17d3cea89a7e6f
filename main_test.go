package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags(nil, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if opts.settings != config.Default() {
		t.Errorf("Expected default settings, got %+v", opts.settings)
	}
	if opts.normals || opts.help || opts.outPath != "" {
		t.Errorf("Unexpected options %+v", opts)
	}
}

func TestParseFlags_FlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.toml")
	data := "scene = \"quads\"\n[render]\nwidth = 50\nheight = 40\nseed = 9\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	opts, err := parseFlags([]string{"-config", path, "-width", "20", "-normals"}, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	s := opts.settings
	if s.Scene != "quads" {
		t.Errorf("Expected scene from file, got %q", s.Scene)
	}
	if s.Render.Width != 20 {
		t.Errorf("Expected -width to override file, got %d", s.Render.Width)
	}
	if s.Render.Height != 40 || s.Render.Seed != 9 {
		t.Errorf("Expected file values for unset flags, got %+v", s.Render)
	}
	if !opts.normals {
		t.Error("Expected -normals to be set")
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus"}},
		{"bad int", []string{"-width", "wide"}},
		{"positional", []string{"extra"}},
		{"missing config", []string{"-config", filepath.Join(t.TempDir(), "nope.toml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseFlags(tt.args, io.Discard); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}

	if _, err := parseFlags([]string{"-h"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("Expected flag.ErrHelp for -h, got %v", err)
	}
}

func TestPrintHelp(t *testing.T) {
	var buf bytes.Buffer
	printHelp(&buf)
	out := buf.String()
	for _, name := range append(scene.Names(), "-samples", "-cpuprofile") {
		if !strings.Contains(out, name) {
			t.Errorf("Expected help to mention %q", name)
		}
	}
}

func TestRun_WritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "render.png")
	opts := cliOptions{settings: config.Default(), outPath: out}
	opts.settings.Scene = "two-spheres"
	opts.settings.Render.Width = 16
	opts.settings.Render.Height = 8
	opts.settings.Render.SamplesPerPixel = 2
	opts.settings.Render.MaxDepth = 3
	// Missing environment maps fall back to the sky
	opts.settings.Environment = filepath.Join(t.TempDir(), "missing.png")

	path, err := run(context.Background(), opts, renderer.NewDiscardLogger())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if path != out {
		t.Errorf("Expected output %s, got %s", out, path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("Expected 16x8 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRun_Errors(t *testing.T) {
	unknown := cliOptions{settings: config.Default()}
	unknown.settings.Scene = "nonexistent"
	if _, err := run(context.Background(), unknown, renderer.NewDiscardLogger()); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}

	badConfig := cliOptions{settings: config.Default(), outPath: filepath.Join(t.TempDir(), "x.png")}
	badConfig.settings.Render.Gamma = -1
	if _, err := run(context.Background(), badConfig, renderer.NewDiscardLogger()); !errors.Is(err, renderer.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cancelled := cliOptions{settings: config.Default(), outPath: filepath.Join(t.TempDir(), "y.png")}
	cancelled.settings.Scene = "empty"
	if _, err := run(ctx, cancelled, renderer.NewDiscardLogger()); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
