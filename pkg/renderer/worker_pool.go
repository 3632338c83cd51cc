package renderer

import (
	"image"
	"runtime"
	"sync"

	"github.com/softtracer/go-pbr-pathtracer/pkg/integrator"
)

// TileTask is one rectangular region of one frame to render
type TileTask struct {
	Bounds image.Rectangle
	Frame  int
	TaskID int
}

// TileResult signals completion of a tile
type TileResult struct {
	TaskID int
	Pixels int
}

// WorkerPool renders tiles in parallel. Tiles within a frame are disjoint,
// so workers write to the shared accumulation buffer without locking; the
// renderer drains all results before starting the next frame, which keeps
// frame N+1 from touching a pixel before frame N's blend is complete.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	tracer      *integrator.PathTracer
	accum       *Buffer
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool writing into the given accumulation buffer.
// queueSize must cover a full frame's tile count so submission never blocks
// against workers waiting to deliver results.
func NewWorkerPool(tracer *integrator.PathTracer, accum *Buffer, numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if queueSize < 1 {
		queueSize = 1
	}

	return &WorkerPool{
		taskQueue:   make(chan TileTask, queueSize),
		resultQueue: make(chan TileResult, queueSize),
		tracer:      tracer,
		accum:       accum,
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask queues a tile for rendering
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop: one independent task per pixel, grouped
// into tiles for scheduling
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		for y := task.Bounds.Min.Y; y < task.Bounds.Max.Y; y++ {
			for x := task.Bounds.Min.X; x < task.Bounds.Max.X; x++ {
				estimate := wp.tracer.TracePixel(x, y, task.Frame)
				wp.accum.Blend(x, y, task.Frame, estimate)
			}
		}

		wp.resultQueue <- TileResult{
			TaskID: task.TaskID,
			Pixels: task.Bounds.Dx() * task.Bounds.Dy(),
		}
	}
}
