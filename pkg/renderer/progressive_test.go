package renderer

import (
	"context"
	"testing"

	"github.com/softtracer/go-pbr-pathtracer/pkg/integrator"
	"github.com/softtracer/go-pbr-pathtracer/pkg/scene"
)

func testRenderer(width, height, frames int) *ProgressiveRenderer {
	config := DefaultConfig()
	config.TileSize = 8
	config.Frames = frames
	config.NumWorkers = 2
	return NewProgressiveRenderer(scene.NewCornellScene(), width, height, integrator.DefaultConfig(), config, nil)
}

func TestProgressiveRenderer_RendersAllFrames(t *testing.T) {
	pr := testRenderer(16, 16, 3)

	frameChan, errChan := pr.RenderProgressive(context.Background())

	frames := 0
	var last FrameResult
	for result := range frameChan {
		if result.Stats.Frame != frames {
			t.Errorf("Expected frame %d, got %d", frames, result.Stats.Frame)
		}
		if result.Stats.Pixels != 16*16 {
			t.Errorf("Frame %d rendered %d pixels, expected %d", frames, result.Stats.Pixels, 16*16)
		}
		if result.Image == nil {
			t.Fatalf("Frame %d carried no image", frames)
		}
		last = result
		frames++
	}

	if frames != 3 {
		t.Errorf("Expected 3 frames, got %d", frames)
	}
	if !last.IsLast {
		t.Error("Final result should be flagged as last")
	}
	if err := <-errChan; err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestProgressiveRenderer_Deterministic(t *testing.T) {
	// Two independent renders of the same scene must accumulate identical
	// buffers regardless of worker scheduling
	render := func() *Buffer {
		pr := testRenderer(8, 8, 2)
		frameChan, errChan := pr.RenderProgressive(context.Background())
		for range frameChan {
		}
		if err := <-errChan; err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return pr.Accumulation()
	}

	a := render()
	b := render()

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatalf("Pixel (%d,%d) differs: %v vs %v", x, y, a.At(x, y), b.At(x, y))
			}
		}
	}
}

func TestProgressiveRenderer_Cancellation(t *testing.T) {
	pr := testRenderer(8, 8, 1000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frameChan, errChan := pr.RenderProgressive(ctx)
	for range frameChan {
	}

	if err := <-errChan; err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestProgressiveRenderer_DirectFrameLoop(t *testing.T) {
	pr := testRenderer(8, 8, 4)

	pr.Start()
	defer pr.Stop()

	if pr.Frame() != 0 {
		t.Fatalf("Fresh renderer should start at frame 0, got %d", pr.Frame())
	}

	s0 := pr.RenderFrame()
	s1 := pr.RenderFrame()
	if s0.Frame != 0 || s1.Frame != 1 {
		t.Errorf("Frame indices wrong: %d, %d", s0.Frame, s1.Frame)
	}
	if pr.Frame() != 2 {
		t.Errorf("Expected next frame 2, got %d", pr.Frame())
	}

	pr.ResetAccumulation()
	if pr.Frame() != 0 {
		t.Errorf("Reset should rewind to frame 0, got %d", pr.Frame())
	}

	if img := pr.Image(); img == nil || img.Bounds().Dx() != 8 {
		t.Error("Image should reflect the configured resolution")
	}
}

func TestProgressiveRenderer_TinyTiles(t *testing.T) {
	// Single-pixel tiles produce far more tasks than workers; the queues
	// must hold a full frame's tiles or submission deadlocks against
	// workers blocked on delivering results
	config := DefaultConfig()
	config.TileSize = 1
	config.Frames = 1
	config.NumWorkers = 2
	pr := NewProgressiveRenderer(scene.NewCornellScene(), 16, 16, integrator.DefaultConfig(), config, nil)

	pr.Start()
	defer pr.Stop()

	stats := pr.RenderFrame()
	if stats.Pixels != 16*16 {
		t.Errorf("Expected %d pixels, got %d", 16*16, stats.Pixels)
	}
}

func TestTileGrid_CoversImageExactly(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
	}{
		{"Exact fit", 64, 64, 32},
		{"Ragged edges", 100, 70, 32},
		{"Tile larger than image", 10, 10, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := tileGrid(tt.width, tt.height, tt.tileSize)

			covered := make([]bool, tt.width*tt.height)
			for _, tile := range tiles {
				for y := tile.Min.Y; y < tile.Max.Y; y++ {
					for x := tile.Min.X; x < tile.Max.X; x++ {
						i := y*tt.width + x
						if covered[i] {
							t.Fatalf("Pixel (%d,%d) covered twice", x, y)
						}
						covered[i] = true
					}
				}
			}
			for i, c := range covered {
				if !c {
					t.Fatalf("Pixel (%d,%d) never covered", i%tt.width, i/tt.width)
				}
			}
		})
	}
}
