package renderer

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/softtracer/go-pbr-pathtracer/pkg/core"
)

func testImage() *image.RGBA {
	b := NewBuffer(4, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			b.Blend(x, y, 0, core.NewVec3(float64(x)/4, float64(y)/2, 0.5))
		}
	}
	return b.ToImage(2.2)
}

func TestWriteImage_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := WriteImage(path, testImage()); err != nil {
		t.Fatalf("WriteImage failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Output is not valid PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 4 || decoded.Bounds().Dy() != 2 {
		t.Errorf("Decoded size wrong: %v", decoded.Bounds())
	}
}

func TestWriteImage_WebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.webp")
	if err := WriteImage(path, testImage()); err != nil {
		t.Fatalf("WriteImage failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Error("Output is not a WebP container")
	}
}

func TestWriteImage_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.png")
	if err := WriteImage(path, testImage()); err == nil {
		t.Error("Expected an error for an unwritable path")
	}
}
