package renderer

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSurface is returned when a frame is requested before a render
	// target has been bound to the camera
	ErrNoSurface = errors.New("no render target bound to camera")

	// ErrNoScene is returned when the renderer has nothing to render
	ErrNoScene = errors.New("no scene")

	// ErrClosed is returned by RenderFrame after Close
	ErrClosed = errors.New("renderer closed")
)

// ConfigError reports a renderer setup problem. It unwraps to the cause so
// errors.Is(err, ErrNoSurface) works.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("renderer config %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
