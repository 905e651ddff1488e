package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config holds command line options
type Config struct {
	SceneType string
	SceneFile string
	Width     int
	Height    int
	FOV       float64
	Frames    int
	Workers   int
	TileSize  int
	MaxDepth  int
	Format    string
	Scale     int
	OutputDir string
	Upload    bool
	Verbose   bool
	Help      bool
}

// SceneSetup is a scene plus the view it should be rendered from
type SceneSetup struct {
	Name       string
	Scene      *scene.Scene
	Width      int
	Height     int
	FOV        float32
	Origin     core.Vec3
	Background *material.Color
}

// Publisher uploads encoded frames
type Publisher interface {
	Publish(ctx context.Context, key string, data []byte, contentType string) error
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func main() {
	// Optional; real environment variables win
	_ = godotenv.Load()

	config := parseFlags()
	if config.Help {
		showHelp()
		return
	}

	level := slog.LevelInfo
	if config.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	core.SetLogger(logger)

	var publisher Publisher
	if config.Upload {
		p, err := output.NewS3Publisher(s3ConfigFromEnv())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		publisher = p
	}

	path, err := run(context.Background(), config, publisher)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", path)
}

// parseFlags parses command line flags and returns configuration
func parseFlags() Config {
	defaults := renderer.DefaultConfig()
	config := Config{}
	flag.StringVar(&config.SceneType, "scene", "default", "Built-in scene: "+strings.Join(sceneIDs(), ", "))
	flag.StringVar(&config.SceneFile, "scene-file", "", "Path to a JSON scene file (overrides -scene)")
	flag.IntVar(&config.Width, "width", 0, "Image width (0 = scene default)")
	flag.IntVar(&config.Height, "height", 0, "Image height (0 = scene default)")
	flag.Float64Var(&config.FOV, "fov", 0, "Vertical field of view in degrees (0 = scene default)")
	flag.IntVar(&config.Frames, "frames", 1, "Number of frames to render")
	flag.IntVar(&config.Workers, "workers", defaults.NumWorkers, "Number of parallel workers (0 = auto-detect)")
	flag.IntVar(&config.TileSize, "tile", defaults.TileSize, "Tile size in pixels")
	flag.IntVar(&config.MaxDepth, "depth", defaults.MaxDepth, "Maximum reflection/refraction depth")
	flag.StringVar(&config.Format, "format", "png", "Output format: png, bmp or tiff")
	flag.IntVar(&config.Scale, "scale", 1, "Integer upscale factor for the saved image")
	flag.StringVar(&config.OutputDir, "out", getEnv("RT_OUTPUT_DIR", "output"), "Output directory")
	flag.BoolVar(&config.Upload, "upload", false, "Upload the last frame to S3 (RT_S3_* environment)")
	flag.BoolVar(&config.Verbose, "v", false, "Verbose (debug) logging")
	flag.BoolVar(&config.Help, "help", false, "Show help information")
	flag.Parse()
	return config
}

// showHelp displays help information
func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.Builtins() {
		fmt.Printf("  %-14s %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to <out>/<scene>/render_<frame>.<format>")
	fmt.Println("Uploads read RT_S3_BUCKET, RT_S3_REGION, RT_S3_ENDPOINT, RT_S3_ACCESS_KEY and RT_S3_SECRET_KEY (also from .env)")
}

func s3ConfigFromEnv() output.S3Config {
	return output.S3Config{
		Bucket:    getEnv("RT_S3_BUCKET", ""),
		Region:    getEnv("RT_S3_REGION", "us-east-1"),
		Endpoint:  getEnv("RT_S3_ENDPOINT", ""),
		AccessKey: getEnv("RT_S3_ACCESS_KEY", ""),
		SecretKey: getEnv("RT_S3_SECRET_KEY", ""),
	}
}

func sceneIDs() []string {
	var ids []string
	for _, info := range scene.Builtins() {
		ids = append(ids, info.ID)
	}
	return ids
}

// createScene resolves a built-in scene name or a JSON scene file
func createScene(sceneType, sceneFile string) (*SceneSetup, error) {
	if sceneFile != "" {
		f, err := loaders.LoadSceneFile(sceneFile)
		if err != nil {
			return nil, err
		}
		s, err := f.Build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sceneFile, err)
		}

		setup := &SceneSetup{
			Name:   strings.TrimSuffix(filepath.Base(sceneFile), filepath.Ext(sceneFile)),
			Scene:  s,
			Width:  f.Camera.Width,
			Height: f.Camera.Height,
			FOV:    f.Camera.FOV,
			Origin: f.Camera.Origin,
		}
		if bg, ok := f.BackgroundColor(); ok {
			setup.Background = &bg
		}
		return setup, nil
	}

	s, info, err := scene.ByName(sceneType)
	if err != nil {
		return nil, err
	}
	return &SceneSetup{
		Name:   info.ID,
		Scene:  s,
		Width:  info.Width,
		Height: info.Height,
		FOV:    info.FOV,
	}, nil
}

// run renders the configured frames, saves the last one and optionally
// uploads it. It returns the saved path.
func run(ctx context.Context, config Config, publisher Publisher) (string, error) {
	logger := core.Logger()

	setup, err := createScene(config.SceneType, config.SceneFile)
	if err != nil {
		return "", err
	}

	// Flags override the scene's recommended view
	width, height, fov := setup.Width, setup.Height, setup.FOV
	if config.Width > 0 {
		width = config.Width
	}
	if config.Height > 0 {
		height = config.Height
	}
	if config.FOV != 0 {
		if !(config.FOV > 0 && config.FOV < 180) {
			return "", fmt.Errorf("fov must be between 0 and 180 degrees, got %g", config.FOV)
		}
		fov = float32(config.FOV)
	}
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("image size must be positive, got %dx%d", width, height)
	}
	if fov == 0 {
		// Scene files may leave the field of view unset
		fov = 90
	}

	renderConfig := renderer.Config{
		TileSize:   config.TileSize,
		NumWorkers: config.Workers,
		MaxDepth:   config.MaxDepth,
	}
	if err := renderConfig.Validate(); err != nil {
		return "", err
	}
	format, err := output.ParseFormat(config.Format)
	if err != nil {
		return "", err
	}
	frames := max(config.Frames, 1)

	camera := renderer.NewCamera(setup.Origin, fov)
	camera.SetSurface(renderer.NewSurface(width, height))

	r := renderer.NewRenderer(setup.Scene, camera, renderConfig)
	defer r.Close()

	if setup.Background != nil {
		integ := integrator.NewWhittedIntegrator()
		integ.Background = *setup.Background
		r.SetIntegrator(integ)
	}

	logger.Info("rendering",
		"scene", setup.Name,
		"width", width,
		"height", height,
		"fov", fov,
		"frames", frames,
		"shapes", len(setup.Scene.Shapes),
		"lights", len(setup.Scene.Lights))

	var last renderer.RenderStats
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		stats, err := r.RenderFrame()
		if err != nil {
			return "", err
		}
		logger.Info("frame done",
			"frame", stats.Frame,
			"duration", stats.Duration,
			"fps", fmt.Sprintf("%.1f", stats.FPS()))
		last = stats
	}

	img := output.Upscale(camera.Surface().RGBA(), config.Scale)
	path, err := output.SaveFrame(filepath.Join(config.OutputDir, setup.Name), "render", last.Frame, img, format)
	if err != nil {
		return "", err
	}

	if publisher != nil {
		data, err := output.EncodeBytes(img, format)
		if err != nil {
			return "", err
		}
		key := fmt.Sprintf("%s/render_%s%s", setup.Name, time.Now().UTC().Format("20060102_150405"), format.Ext())
		if err := publisher.Publish(ctx, key, data, format.ContentType()); err != nil {
			return "", err
		}
	}

	return path, nil
}
