package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

// WriteImage encodes img to path, choosing the format from the extension
// (.webp for lossless WebP, anything else PNG)
func WriteImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		err = nativewebp.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("output: encode %s: %w", path, err)
	}
	return nil
}
