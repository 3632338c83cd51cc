package renderer

import (
	"image"
	"image/color"

	"github.com/softtracer/go-pbr-pathtracer/pkg/core"
)

// Buffer is the accumulation image: one RGB value per pixel, persisted
// across frames. It is the only state with cross-frame lifetime; each
// pixel's cell is written exactly once per frame by the tile that owns it.
type Buffer struct {
	width  int
	height int
	pixels []core.Vec3
}

// NewBuffer creates a zeroed accumulation buffer
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the buffer width in pixels
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels
func (b *Buffer) Height() int { return b.height }

// Blend folds one frame's radiance estimate into the running average.
// Frame 0 overwrites; frame N blends with weight 1/(N+1), so the stored
// value is always the exact mean of the estimates for frames 0..N.
func (b *Buffer) Blend(x, y, frame int, estimate core.Vec3) {
	i := y*b.width + x
	if frame == 0 {
		b.pixels[i] = estimate
		return
	}
	b.pixels[i] = b.pixels[i].Lerp(estimate, 1.0/float64(frame+1))
}

// At returns the accumulated color for a pixel
func (b *Buffer) At(x, y int) core.Vec3 {
	return b.pixels[y*b.width+x]
}

// ToImage converts the accumulated radiance to an 8-bit image with gamma
// correction
func (b *Buffer) ToImage(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.pixels[y*b.width+x].GammaCorrect(gamma).Clamp(0, 1)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * c.X),
				G: uint8(255 * c.Y),
				B: uint8(255 * c.Z),
				A: 255,
			})
		}
	}
	return img
}
