package renderer

import "time"

// FrameStats describes one completed frame
type FrameStats struct {
	Frame    int           // Frame index (0-based)
	Pixels   int           // Pixels rendered this frame
	Duration time.Duration // Wall time for the frame
}

// RenderStats aggregates statistics across a progressive render
type RenderStats struct {
	Frames      int           // Frames accumulated
	TotalPixels int           // Pixel samples across all frames
	TotalTime   time.Duration // Wall time across all frames
}

// Add folds one frame's stats into the totals
func (rs *RenderStats) Add(fs FrameStats) {
	rs.Frames++
	rs.TotalPixels += fs.Pixels
	rs.TotalTime += fs.Duration
}

// PixelsPerSecond returns the average render throughput
func (rs *RenderStats) PixelsPerSecond() float64 {
	if rs.TotalTime <= 0 {
		return 0
	}
	return float64(rs.TotalPixels) / rs.TotalTime.Seconds()
}
