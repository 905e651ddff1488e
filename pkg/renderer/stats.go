package renderer

import "time"

// RenderStats contains statistics about one rendered frame
type RenderStats struct {
	Frame    int           // 1-based frame counter
	Pixels   int           // Pixels written this frame
	Tiles    int           // Tiles dispatched this frame
	Workers  int           // Size of the worker pool
	Duration time.Duration // Wall time from first task to last result
}

// FPS returns the frame rate implied by Duration
func (s RenderStats) FPS() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(time.Second) / float64(s.Duration)
}
