package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/integrator"
	"github.com/df07/go-sdf-raytracer/pkg/sampler"
)

// MonteCarloWorkers is the worker count used by Monte Carlo renders when none is configured
const MonteCarloWorkers = 32

// Config describes one render invocation
type Config struct {
	Scene            string     `yaml:"scene"`            // Built-in scene name
	OBJ              string     `yaml:"obj"`              // OBJ file rendered instead of the built-in scene
	Integrator       string     `yaml:"integrator"`       // flat, whitted or montecarlo ("" = the scene's own)
	Width            int        `yaml:"width"`            // Image width in pixels
	Height           int        `yaml:"height"`           // Image height in pixels
	Passes           int        `yaml:"passes"`           // Progressive passes of stochastic integrators
	SamplesPerPixel  int        `yaml:"samplesPerPixel"`  // Monte Carlo samples per pixel and pass
	Workers          int        `yaml:"workers"`          // Worker goroutines (0 = automatic)
	Sampler          string     `yaml:"sampler"`          // independent, stratified or regular
	Seed             int64      `yaml:"seed"`             // Base seed of the per-worker samplers
	AmbientOcclusion [3]float64 `yaml:"ambientOcclusion"` // Color of Monte Carlo bounces escaping the scene
	EmittedRadiance  float64    `yaml:"emittedRadiance"`  // Radiance of light primitives
	OutputDir        string     `yaml:"outputDir"`        // Directory receiving the images
	RawEvery         int        `yaml:"rawEvery"`         // Raw dump every RawEvery passes (0 = never)
}

// Default returns the configuration used when no file is given
func Default() Config {
	mc := integrator.DefaultMonteCarloConfig()
	return Config{
		Scene:           "spheres",
		Width:           400,
		Height:          300,
		Passes:          10,
		SamplesPerPixel: mc.SamplesPerPixel,
		Sampler:         sampler.KindStratified,
		EmittedRadiance: mc.EmittedRadiance,
		OutputDir:       "output",
		RawEvery:        10,
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("while reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("while parsing %s: %w", filename, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("while decoding YAML: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations that cannot be rendered
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Passes <= 0 {
		return fmt.Errorf("passes must be positive, got %d", c.Passes)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.RawEvery < 0 {
		return fmt.Errorf("rawEvery must not be negative, got %d", c.RawEvery)
	}
	if c.Scene == "" && c.OBJ == "" {
		return errors.New("either a scene or an OBJ file is required")
	}

	switch c.Integrator {
	case "", integrator.KindFlat, integrator.KindWhitted, integrator.KindMonteCarlo:
	default:
		return fmt.Errorf("%w: %q", integrator.ErrUnknownIntegrator, c.Integrator)
	}

	if err := sampler.Validate(c.Sampler, c.SamplesPerPixel); err != nil {
		return fmt.Errorf("while validating sampler: %w", err)
	}
	return nil
}

// MonteCarlo returns the Monte Carlo integrator settings
func (c Config) MonteCarlo() integrator.MonteCarloConfig {
	mc := integrator.DefaultMonteCarloConfig()
	mc.SamplesPerPixel = c.SamplesPerPixel
	mc.EmittedRadiance = c.EmittedRadiance
	mc.AmbientOcclusion = core.NewVec3(c.AmbientOcclusion[0], c.AmbientOcclusion[1], c.AmbientOcclusion[2])
	return mc
}

// WorkersFor returns the worker count for the named integrator. Monte Carlo
// renders default to a fixed pool; the others use one worker per CPU.
func (c Config) WorkersFor(kind string) int {
	if c.Workers == 0 && kind == integrator.KindMonteCarlo {
		return MonteCarloWorkers
	}
	return c.Workers
}
