package texture

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/softtracer/go-pbr-pathtracer/pkg/core"
)

// Texture holds decoded RGB pixel data in row-major order
type Texture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Pixels[y*Width + x]
}

// ImageSet stores textures addressable by id and implements
// core.TextureSampler. Ids outside the set sample as white, which leaves
// the material's own factors untouched.
type ImageSet struct {
	textures []*Texture
}

// NewImageSet creates an empty texture set
func NewImageSet() *ImageSet {
	return &ImageSet{}
}

// Add decodes an image into the set and returns its texture id
func (s *ImageSet) Add(img image.Image) int {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(b)
		draw.Draw(nrgba, b, img, b.Min, draw.Src)
	}

	tex := &Texture{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: make([]core.Vec3, b.Dx()*b.Dy()),
	}
	for y := 0; y < tex.Height; y++ {
		for x := 0; x < tex.Width; x++ {
			i := nrgba.PixOffset(b.Min.X+x, b.Min.Y+y)
			tex.Pixels[y*tex.Width+x] = core.NewVec3(
				float64(nrgba.Pix[i])/255.0,
				float64(nrgba.Pix[i+1])/255.0,
				float64(nrgba.Pix[i+2])/255.0,
			)
		}
	}

	return s.AddTexture(tex)
}

// AddTexture appends a prebuilt texture and returns its id
func (s *ImageSet) AddTexture(t *Texture) int {
	s.textures = append(s.textures, t)
	return len(s.textures) - 1
}

// Sample returns the texel at uv using wrap addressing and nearest
// filtering. V=0 is the bottom of the image.
func (s *ImageSet) Sample(textureID int, uv core.Vec2) core.Vec3 {
	if textureID < 0 || textureID >= len(s.textures) {
		return core.NewVec3(1, 1, 1)
	}
	t := s.textures[textureID]

	// Wrap UV coordinates to [0, 1)
	u := uv.X - float64(int(uv.X))
	v := uv.Y - float64(int(uv.Y))
	if u < 0 {
		u += 1.0
	}
	if v < 0 {
		v += 1.0
	}

	x := int(u * float64(t.Width))
	y := int((1.0 - v) * float64(t.Height))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}

	return t.Pixels[y*t.Width+x]
}
