package renderer

import (
	"context"
	"image"
	"time"

	"github.com/softtracer/go-pbr-pathtracer/log"
	"github.com/softtracer/go-pbr-pathtracer/pkg/core"
	"github.com/softtracer/go-pbr-pathtracer/pkg/geometry"
	"github.com/softtracer/go-pbr-pathtracer/pkg/integrator"
	"github.com/softtracer/go-pbr-pathtracer/pkg/material"
	"github.com/softtracer/go-pbr-pathtracer/pkg/scene"
)

var logger = log.New("renderer")

// Config contains configuration for progressive rendering
type Config struct {
	TileSize   int // Size of each tile (64x64 recommended)
	Frames     int // Number of frames to accumulate
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   64,
		Frames:     64,
		NumWorkers: 0,
	}
}

// ProgressiveRenderer re-renders the same view every frame and averages the
// estimates into the accumulation buffer, converging to the ground truth as
// the frame count grows
type ProgressiveRenderer struct {
	config Config
	width  int
	height int
	tracer *integrator.PathTracer
	accum  *Buffer
	pool   *WorkerPool
	tiles  []image.Rectangle
	frame  int
}

// NewProgressiveRenderer wires the scene's buffers into a BVH intersector,
// material resolver and path tracer. textures may be nil for untextured
// scenes.
func NewProgressiveRenderer(sc *scene.Scene, width, height int, integratorConfig integrator.Config, config Config, textures core.TextureSampler) *ProgressiveRenderer {
	bvh := geometry.NewBVH(sc)
	materials := material.NewResolver(sc.Materials, textures)
	tracer := integrator.NewPathTracer(integratorConfig, sc.Camera, bvh, materials, width, height)
	accum := NewBuffer(width, height)
	tiles := tileGrid(width, height, config.TileSize)

	return &ProgressiveRenderer{
		config: config,
		width:  width,
		height: height,
		tracer: tracer,
		accum:  accum,
		pool:   NewWorkerPool(tracer, accum, config.NumWorkers, len(tiles)),
		tiles:  tiles,
	}
}

// tileGrid covers the image with tiles of at most tileSize on a side
func tileGrid(width, height, tileSize int) []image.Rectangle {
	var tiles []image.Rectangle
	for y0 := 0; y0 < height; y0 += tileSize {
		for x0 := 0; x0 < width; x0 += tileSize {
			tiles = append(tiles, image.Rect(x0, y0, min(x0+tileSize, width), min(y0+tileSize, height)))
		}
	}
	return tiles
}

// Frame returns the index of the next frame to render
func (pr *ProgressiveRenderer) Frame() int { return pr.frame }

// Start launches the worker pool for direct RenderFrame use. Callers using
// RenderProgressive must not call Start/Stop; it manages the pool itself.
func (pr *ProgressiveRenderer) Start() { pr.pool.Start() }

// Stop shuts the worker pool down
func (pr *ProgressiveRenderer) Stop() { pr.pool.Stop() }

// ResetAccumulation restarts accumulation from frame 0, e.g. after the
// camera moved. The next frame's blend overwrites every pixel.
func (pr *ProgressiveRenderer) ResetAccumulation() { pr.frame = 0 }

// RenderFrame renders one full frame into the accumulation buffer. The
// worker pool must be running. All tiles are drained before returning, so
// the next frame never observes a partially blended pixel.
func (pr *ProgressiveRenderer) RenderFrame() FrameStats {
	start := time.Now()

	for i, bounds := range pr.tiles {
		pr.pool.SubmitTask(TileTask{Bounds: bounds, Frame: pr.frame, TaskID: i})
	}

	pixels := 0
	for range pr.tiles {
		result, ok := pr.pool.GetResult()
		if !ok {
			break
		}
		pixels += result.Pixels
	}

	stats := FrameStats{
		Frame:    pr.frame,
		Pixels:   pixels,
		Duration: time.Since(start),
	}
	pr.frame++
	return stats
}

// FrameResult is sent after each accumulated frame
type FrameResult struct {
	Stats  FrameStats
	Image  *image.RGBA // Current accumulated image
	IsLast bool
}

// RenderProgressive renders the configured number of frames, sending a
// result after each one. Cancellation is checked between frames; a frame in
// flight always runs to completion for all pixels.
func (pr *ProgressiveRenderer) RenderProgressive(ctx context.Context) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(frameChan)
		defer close(errChan)

		pr.pool.Start()
		defer pr.pool.Stop()

		logger.Infof("rendering %d frames at %dx%d with %d workers",
			pr.config.Frames, pr.width, pr.height, pr.pool.NumWorkers())

		for i := 0; i < pr.config.Frames; i++ {
			select {
			case <-ctx.Done():
				logger.Warningf("render cancelled before frame %d", pr.frame)
				errChan <- ctx.Err()
				return
			default:
			}

			stats := pr.RenderFrame()
			logger.Debugf("frame %d completed in %v", stats.Frame, stats.Duration)

			result := FrameResult{
				Stats:  stats,
				Image:  pr.accum.ToImage(2.2),
				IsLast: i == pr.config.Frames-1,
			}

			select {
			case frameChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return frameChan, errChan
}

// Image returns the current accumulated image with gamma 2.2
func (pr *ProgressiveRenderer) Image() *image.RGBA {
	return pr.accum.ToImage(2.2)
}

// Accumulation exposes the raw accumulation buffer
func (pr *ProgressiveRenderer) Accumulation() *Buffer {
	return pr.accum
}
