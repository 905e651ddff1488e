package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// TileFunc renders one tile and returns the number of pixels written
type TileFunc func(tile *Tile) int

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int      // For deterministic ordering
	Render TileFunc // Work to run on the tile

	// Results receives the task's result; nil uses the pool's queue.
	// Frames sharing one pool each pass their own channel.
	Results chan<- TileResult
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Pixels int
	Error  error
}

// WorkerPool manages parallel tile rendering. It is started once and reused
// for every frame until Stop.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	startOnce   sync.Once
	stopOnce    sync.Once

	mu      sync.RWMutex // guards stopped against SubmitTask
	stopped bool
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID          int
	taskQueue   <-chan TileTask
	resultQueue chan<- TileResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// numWorkers <= 0 uses one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, numWorkers*2),
		resultQueue: make(chan TileResult, numWorkers*2),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers. Calling it again has no effect.
func (wp *WorkerPool) Start() {
	wp.startOnce.Do(func() {
		for _, worker := range wp.workers {
			wp.wg.Add(1)
			go worker.run(&wp.wg)
		}
		core.Logger().Info("worker pool started", "workers", wp.numWorkers)
	})
}

// Stop gracefully shuts down all workers. Tasks already queued are finished
// first. Calling it again has no effect.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		wp.mu.Lock()
		wp.stopped = true
		close(wp.taskQueue) // No more tasks
		wp.mu.Unlock()

		wp.wg.Wait() // Wait for workers to finish
		close(wp.resultQueue)
		core.Logger().Info("worker pool stopped", "workers", wp.numWorkers)
	})
}

// SubmitTask submits a tile task to the worker pool. It blocks while the
// queue is full, so callers submitting many tasks should drain results
// concurrently. It returns ErrClosed once the pool has been stopped.
func (wp *WorkerPool) SubmitTask(task TileTask) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.stopped {
		return ErrClosed
	}
	wp.taskQueue <- task
	return nil
}

// GetResult retrieves a completed tile result. ok is false once the pool
// has been stopped and drained.
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		out := w.resultQueue
		if task.Results != nil {
			out = task.Results
		}
		out <- w.render(task)
	}
}

// render runs one task, turning a panic into a result error so the frame
// barrier still receives exactly one result per task
func (w *Worker) render(task TileTask) (result TileResult) {
	result.TaskID = task.TaskID
	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("worker %d: tile %d: %v", w.ID, task.TaskID, r)
		}
	}()
	result.Pixels = task.Render(task.Tile)
	return result
}
