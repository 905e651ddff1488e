package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	maxImageSize   = 2048
	maxCoordinate  = 1000
	maxRenderDepth = 10
	renderSlots    = 2
)

// Server handles web requests for the raytracer
type Server struct {
	port    int
	console *Console
	slots   chan struct{} // bounds concurrent renders
	pool    *renderer.WorkerPool
}

// NewServer creates a new web server
func NewServer(port int, console *Console) *Server {
	if console == nil {
		console = NewConsole(200)
	}
	return &Server{
		port:    port,
		console: console,
		slots:   make(chan struct{}, renderSlots),
		pool:    renderer.NewWorkerPool(0),
	}
}

// Close stops the shared render pool
func (s *Server) Close() {
	s.pool.Stop()
}

// FrameRequest represents a single-frame render request from the client
type FrameRequest struct {
	Scene  string        `json:"scene"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	FOV    float32       `json:"fov"`
	Origin core.Vec3     `json:"origin"`
	Depth  int           `json:"depth"`
	Format output.Format `json:"format"`
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/frame", s.handleFrame)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/console", s.handleConsole)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	core.Logger().Info("starting web server", "addr", "http://localhost"+addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	defer s.Close()
	return srv.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and their recommended views
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.Builtins())
}

// handleConsole returns recent log messages
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.console.Messages())
}

// handleFrame renders one frame and returns the encoded image
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	req, err := parseFrameRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	select {
	case s.slots <- struct{}{}:
		defer func() { <-s.slots }()
	case <-r.Context().Done():
		return
	}

	sceneObj, _, err := scene.ByName(req.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	camera := renderer.NewCamera(req.Origin, req.FOV)
	camera.SetSurface(renderer.NewSurface(req.Width, req.Height))

	config := renderer.DefaultConfig()
	config.MaxDepth = req.Depth
	rt := renderer.NewRendererWithPool(sceneObj, camera, config, s.pool)
	defer rt.Close()

	stats, err := rt.RenderFrame()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	data, err := output.EncodeBytes(camera.Surface().RGBA(), req.Format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	core.Logger().Info("frame served",
		"scene", req.Scene,
		"width", req.Width,
		"height", req.Height,
		"duration", stats.Duration,
		"bytes", len(data))

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		core.Logger().Warn("write frame", "error", err)
	}
}

// parseFrameRequest parses and validates frame parameters. Size and fov
// default to the scene's recommended view.
func parseFrameRequest(values url.Values) (*FrameRequest, error) {
	req := &FrameRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	_, info, err := scene.ByName(req.Scene)
	if err != nil {
		return nil, err
	}
	req.Scene = info.ID

	if req.Width, err = parseIntParam(values, "width", info.Width, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", info.Height, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", renderer.DefaultConfig().MaxDepth, 0, maxRenderDepth); err != nil {
		return nil, err
	}

	fov, err := parseFloatParam(values, "fov", float64(info.FOV), 1, 179)
	if err != nil {
		return nil, err
	}
	req.FOV = float32(fov)

	for i, key := range []string{"x", "y", "z"} {
		v, err := parseFloatParam(values, key, 0, -maxCoordinate, maxCoordinate)
		if err != nil {
			return nil, err
		}
		req.Origin[i] = float32(v)
	}

	if req.Format, err = output.ParseFormat(values.Get("format")); err != nil {
		return nil, err
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if !(parsed >= min && parsed <= max) {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		core.Logger().Warn("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	core.Logger().Log(context.Background(), levelForStatus(status), "request failed", "status", status, "error", message)
	writeJSON(w, status, map[string]string{"error": message})
}

func levelForStatus(status int) slog.Level {
	if status >= http.StatusInternalServerError {
		return slog.LevelError
	}
	return slog.LevelWarn
}
