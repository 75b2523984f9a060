package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/df07/go-sdf-raytracer/pkg/config"
	"github.com/df07/go-sdf-raytracer/pkg/integrator"
	"github.com/df07/go-sdf-raytracer/pkg/loaders"
	"github.com/df07/go-sdf-raytracer/pkg/renderer"
	"github.com/df07/go-sdf-raytracer/pkg/sampler"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
	"github.com/df07/go-sdf-raytracer/pkg/telemetry"
)

func main() {
	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	if err := newRootCommand().Execute(); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}

// renderFlags holds the command line overrides of the render command
type renderFlags struct {
	configFile string
	trace      bool
	listScenes bool
	cfg        config.Config
}

func newRootCommand() *cobra.Command {
	flags := &renderFlags{cfg: config.Default()}

	cmdRoot := &cobra.Command{
		Use:           "sdf-raytracer",
		Short:         "Progressive raytracer for analytic and implicit surfaces",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.listScenes {
				printScenes(cmd)
				return nil
			}

			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if flags.trace {
				shutdown := telemetry.InstallGlogTracing()
				defer shutdown(context.Background())
			}

			_, err = render(ctx, cfg, progressPrinter())
			return err
		},
	}

	f := cmdRoot.Flags()
	f.StringVar(&flags.configFile, "config", "", "YAML render configuration; flags override its values")
	f.BoolVar(&flags.trace, "trace", false, "Log render spans")
	f.BoolVar(&flags.listScenes, "list-scenes", false, "List the built-in scenes and exit")
	f.StringVar(&flags.cfg.Scene, "scene", flags.cfg.Scene, "Built-in scene: "+strings.Join(scene.Names(), ", "))
	f.StringVar(&flags.cfg.OBJ, "obj", flags.cfg.OBJ, "Render the groups of an OBJ file instead of a built-in scene")
	f.StringVar(&flags.cfg.Integrator, "integrator", flags.cfg.Integrator, "flat, whitted or montecarlo (default: the scene's own)")
	f.IntVar(&flags.cfg.Width, "width", flags.cfg.Width, "Image width in pixels")
	f.IntVar(&flags.cfg.Height, "height", flags.cfg.Height, "Image height in pixels")
	f.IntVar(&flags.cfg.Passes, "passes", flags.cfg.Passes, "Progressive passes of the Monte Carlo integrator")
	f.IntVar(&flags.cfg.SamplesPerPixel, "spp", flags.cfg.SamplesPerPixel, "Monte Carlo samples per pixel and pass")
	f.IntVar(&flags.cfg.Workers, "workers", flags.cfg.Workers, "Worker goroutines (0 = automatic)")
	f.StringVar(&flags.cfg.Sampler, "sampler", flags.cfg.Sampler, "independent, stratified or regular")
	f.Int64Var(&flags.cfg.Seed, "seed", flags.cfg.Seed, "Base random seed")
	f.Float64Var(&flags.cfg.EmittedRadiance, "radiance", flags.cfg.EmittedRadiance, "Radiance emitted by light primitives")
	f.StringVar(&flags.cfg.OutputDir, "output", flags.cfg.OutputDir, "Output directory")
	f.IntVar(&flags.cfg.RawEvery, "raw-every", flags.cfg.RawEvery, "Write a raw dump every N passes (0 = never)")

	cmdRoot.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	cmdRoot.AddCommand(newCompareCommand())
	return cmdRoot
}

// resolveConfig loads the config file, if any, then applies the flags the user set
func resolveConfig(cmd *cobra.Command, flags *renderFlags) (config.Config, error) {
	cfg := flags.cfg
	if flags.configFile != "" {
		fromFile, err := config.Load(flags.configFile)
		if err != nil {
			return config.Config{}, err
		}

		overrides := flags.cfg
		cfg = fromFile
		cmd.Flags().Visit(func(f *pflag.Flag) {
			switch f.Name {
			case "scene":
				cfg.Scene = overrides.Scene
			case "obj":
				cfg.OBJ = overrides.OBJ
			case "integrator":
				cfg.Integrator = overrides.Integrator
			case "width":
				cfg.Width = overrides.Width
			case "height":
				cfg.Height = overrides.Height
			case "passes":
				cfg.Passes = overrides.Passes
			case "spp":
				cfg.SamplesPerPixel = overrides.SamplesPerPixel
			case "workers":
				cfg.Workers = overrides.Workers
			case "sampler":
				cfg.Sampler = overrides.Sampler
			case "seed":
				cfg.Seed = overrides.Seed
			case "radiance":
				cfg.EmittedRadiance = overrides.EmittedRadiance
			case "output":
				cfg.OutputDir = overrides.OutputDir
			case "raw-every":
				cfg.RawEvery = overrides.RawEvery
			}
		})
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("while validating configuration: %w", err)
	}
	return cfg, nil
}

// createScene builds the configured scene and returns it along with its name
// and the integrator it is designed for
func createScene(cfg config.Config) (*scene.Scene, string, string, error) {
	if cfg.OBJ != "" {
		groups, err := loaders.LoadOBJ(cfg.OBJ)
		if err != nil {
			return nil, "", "", err
		}
		name := strings.TrimSuffix(filepath.Base(cfg.OBJ), filepath.Ext(cfg.OBJ))
		return scene.FromOBJ(groups, cfg.Width, cfg.Height), name, integrator.KindWhitted, nil
	}

	sc, err := scene.New(cfg.Scene, cfg.Width, cfg.Height)
	if err != nil {
		return nil, "", "", err
	}
	info, _ := scene.Lookup(cfg.Scene)
	return sc, cfg.Scene, info.Integrator, nil
}

// createOutputDir returns the checkpointer writing into the scene's output directory
func createOutputDir(cfg config.Config, sceneName string) (*loaders.Checkpointer, error) {
	return loaders.NewCheckpointer(filepath.Join(cfg.OutputDir, sceneName), cfg.RawEvery)
}

// render runs a whole render and writes its images
func render(ctx context.Context, cfg config.Config, progress func(pass, done, total int)) (*renderer.Image, error) {
	sc, sceneName, kind, err := createScene(cfg)
	if err != nil {
		return nil, fmt.Errorf("while creating scene: %w", err)
	}
	if cfg.Integrator != "" {
		kind = cfg.Integrator
	}

	integ, err := integrator.New(kind, cfg.MonteCarlo())
	if err != nil {
		return nil, err
	}

	samplers, err := sampler.NewFactory(cfg.Sampler, cfg.Seed)
	if err != nil {
		return nil, err
	}

	metrics := telemetry.NewMetrics()
	if err := metrics.RegisterMetrics(); err != nil {
		return nil, err
	}
	defer metrics.UnregisterMetrics()

	r, err := renderer.NewRenderer(sc, integ, renderer.Config{
		Passes:     cfg.Passes,
		NumWorkers: cfg.WorkersFor(kind),
		Samplers:   samplers,
		Metrics:    metrics,
		SceneName:  sceneName,
		Progress:   progress,
	})
	if err != nil {
		return nil, fmt.Errorf("while creating renderer: %w", err)
	}

	checkpoints, err := createOutputDir(cfg, sceneName)
	if err != nil {
		return nil, err
	}

	glog.Infof("Rendering scene %q (%dx%d) with %s", sceneName, cfg.Width, cfg.Height, integ.Name())
	start := time.Now()

	img, err := r.Render(ctx, checkpoints.OnPass)
	if err != nil {
		return nil, err
	}
	if progress != nil {
		fmt.Fprintln(os.Stderr)
	}

	glog.Infof("Render completed in %v", time.Since(start))
	if err := checkpoints.Finish(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// progressPrinter draws a progress line when stderr is a terminal
func progressPrinter() func(pass, done, total int) {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	return func(pass, done, total int) {
		fmt.Fprintf(os.Stderr, "\rpass %d: %5.1f%%", pass, 100*float64(done)/float64(total))
	}
}

func printScenes(cmd *cobra.Command) {
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-12s %s\n", info.Name, info.Integrator, info.Description)
	}
}

func newCompareCommand() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "compare <image> <image>",
		Short: "Print the RMSE between two renders (raw dumps or PNG files)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadImage(args[0], width, height)
			if err != nil {
				return err
			}
			b, err := loadImage(args[1], width, height)
			if err != nil {
				return err
			}

			rmse, err := loaders.Compare(a, b)
			if err != nil {
				return fmt.Errorf("while comparing images: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", rmse)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Width of raw dumps")
	cmd.Flags().IntVar(&height, "height", 0, "Height of raw dumps")
	return cmd
}

// loadImage reads a PNG by extension, or a raw dump of the given size
func loadImage(filename string, width, height int) (*renderer.Image, error) {
	if strings.EqualFold(filepath.Ext(filename), ".png") {
		return loaders.LoadPNG(filename)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("--width and --height are required for raw dump %s", filename)
	}
	return loaders.LoadRaw(filename, width, height)
}
