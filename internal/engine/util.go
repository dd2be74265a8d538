package engine

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

// SavePNG writes an image to a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SaveWebP writes an image to a lossless WebP file.
func SaveWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create webp: %w", err)
	}
	defer f.Close()
	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("encode webp: %w", err)
	}
	return nil
}

// SaveImage picks the encoder from the file extension; anything that is not
// .webp is written as PNG.
func SaveImage(path string, img image.Image) error {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return SaveWebP(path, img)
	}
	return SavePNG(path, img)
}
