package renderer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config contains settings for frame rendering
type Config struct {
	TileSize   int // Size of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = auto-detect)
	MaxDepth   int // Recursion budget for reflection and refraction
}

// DefaultConfig returns sensible default settings
func DefaultConfig() Config {
	return Config{
		TileSize:   16,
		NumWorkers: 0,
		MaxDepth:   4,
	}
}

// Validate reports settings that cannot be rendered
func (c Config) Validate() error {
	var errs []error
	if c.TileSize <= 0 {
		errs = append(errs, &ConfigError{Field: "TileSize", Err: fmt.Errorf("must be positive, got %d", c.TileSize)})
	}
	if c.NumWorkers < 0 {
		errs = append(errs, &ConfigError{Field: "NumWorkers", Err: fmt.Errorf("must not be negative, got %d", c.NumWorkers)})
	}
	if c.MaxDepth < 0 {
		errs = append(errs, &ConfigError{Field: "MaxDepth", Err: fmt.Errorf("must not be negative, got %d", c.MaxDepth)})
	}
	return errors.Join(errs...)
}

// Renderer draws frames of a scene through a camera onto the camera's
// surface using a persistent worker pool
type Renderer struct {
	scene      *scene.Scene
	camera     *Camera
	integrator integrator.Integrator
	config     Config
	pool       *WorkerPool
	ownsPool   bool // Close stops the pool only if the renderer created it

	mu     sync.Mutex // serializes frames
	tiles  []*Tile
	tilesW int
	tilesH int
	frame  int
	closed bool
}

// NewRenderer creates a renderer and starts its worker pool. Invalid config
// values fall back to DefaultConfig.
func NewRenderer(s *scene.Scene, camera *Camera, config Config) *Renderer {
	config = normalizeConfig(config)
	pool := NewWorkerPool(config.NumWorkers)
	pool.Start()

	r := NewRendererWithPool(s, camera, config, pool)
	r.ownsPool = true
	return r
}

// NewRendererWithPool creates a renderer that shares an existing pool.
// config.NumWorkers is ignored and Close leaves the pool running.
func NewRendererWithPool(s *scene.Scene, camera *Camera, config Config, pool *WorkerPool) *Renderer {
	pool.Start()
	return &Renderer{
		scene:      s,
		camera:     camera,
		integrator: integrator.NewWhittedIntegrator(),
		config:     normalizeConfig(config),
		pool:       pool,
	}
}

func normalizeConfig(config Config) Config {
	defaults := DefaultConfig()
	if config.TileSize <= 0 {
		config.TileSize = defaults.TileSize
	}
	if config.NumWorkers < 0 {
		config.NumWorkers = defaults.NumWorkers
	}
	if config.MaxDepth < 0 {
		config.MaxDepth = defaults.MaxDepth
	}
	return config
}

// SetIntegrator replaces the light transport used for subsequent frames
func (r *Renderer) SetIntegrator(i integrator.Integrator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.integrator = i
}

// Config returns the effective configuration
func (r *Renderer) Config() Config { return r.config }

// RenderFrame renders one frame. Every pixel of the surface is written
// before it returns; readers of the surface block until then.
func (r *Renderer) RenderFrame() (RenderStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return RenderStats{}, ErrClosed
	}
	if r.scene == nil {
		return RenderStats{}, &ConfigError{Field: "scene", Err: ErrNoScene}
	}
	if r.camera == nil {
		return RenderStats{}, &ConfigError{Field: "camera.surface", Err: ErrNoSurface}
	}

	// Snapshot so the camera may be moved while this frame is in flight
	cam := r.camera.snapshot()
	surface := cam.surface
	if surface == nil {
		return RenderStats{}, &ConfigError{Field: "camera.surface", Err: ErrNoSurface}
	}
	width, height := surface.Width(), surface.Height()
	tiles := r.tileGrid(width, height)

	sc, integ, depth := r.scene, r.integrator, r.config.MaxDepth
	render := func(tile *Tile) int {
		b := tile.Bounds
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				ray := cam.GetRay(x, y, width, height)
				surface.SetPixel(x, y, integ.RayColor(ray, sc, depth))
			}
		}
		return b.Dx() * b.Dy()
	}

	start := time.Now()
	surface.beginFrame()

	// Buffered for the whole frame so workers never wait on this barrier
	results := make(chan TileResult, len(tiles))
	go func() {
		for i, tile := range tiles {
			if err := r.pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Render: render, Results: results}); err != nil {
				results <- TileResult{TaskID: i, Error: err}
			}
		}
	}()

	var errs []error
	pixels := 0
	for range tiles {
		result := <-results
		if result.Error != nil {
			errs = append(errs, result.Error)
			continue
		}
		pixels += result.Pixels
	}

	surface.endFrame()
	r.frame++

	stats := RenderStats{
		Frame:    r.frame,
		Pixels:   pixels,
		Tiles:    len(tiles),
		Workers:  r.pool.GetNumWorkers(),
		Duration: time.Since(start),
	}
	core.Logger().Debug("frame rendered",
		"frame", stats.Frame,
		"pixels", stats.Pixels,
		"tiles", stats.Tiles,
		"duration", stats.Duration,
		"fps", stats.FPS())

	if err := errors.Join(errs...); err != nil {
		return stats, fmt.Errorf("frame %d: %w", stats.Frame, err)
	}
	return stats, nil
}

// Close stops the worker pool if the renderer owns it. The renderer cannot
// be used afterwards.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	if r.ownsPool {
		r.pool.Stop()
	}
}

// tileGrid returns the cached grid for the current surface size
func (r *Renderer) tileGrid(width, height int) []*Tile {
	if r.tiles == nil || r.tilesW != width || r.tilesH != height {
		r.tiles = NewTileGrid(width, height, r.config.TileSize)
		r.tilesW, r.tilesH = width, height
	}
	return r.tiles
}
