// Package debug renders terrain diagnostics as images.
package debug

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/midgard-terrain/internal/engine/biome"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
)

// ErrUnknownFormat is returned by Save for file extensions other than .png and .bmp.
var ErrUnknownFormat = errors.New("debug: unknown image format")

// BiomeMap draws one scale x scale block per grid cell in the palette color of
// its biome. Image X follows grid X; image Y runs against grid Z so +Z is up.
func BiomeMap(grid *biome.Grid, palette terrain.Palette, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	n := grid.Size() + 1
	img := image.NewRGBA(image.Rect(0, 0, n*scale, n*scale))

	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			c := toRGBA(palette.Color(grid.At(x, z)))
			py := (n - 1 - z) * scale
			for dx := 0; dx < scale; dx++ {
				for dy := 0; dy < scale; dy++ {
					img.SetRGBA(x*scale+dx, py+dy, c)
				}
			}
		}
	}
	return img
}

// HeightMap draws vertex heights as grayscale, black at the lowest vertex and
// white at the highest. Layout matches BiomeMap.
func HeightMap(mesh *terrain.Mesh) *image.Gray {
	n := mesh.Size + 1
	img := image.NewGray(image.Rect(0, 0, n, n))

	lo, hi := mesh.Bounds.Min.Y(), mesh.Bounds.Max.Y()
	span := hi - lo
	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			y := mesh.Positions[terrain.VertexIndex(mesh.Size, x, z)].Y()
			var v uint8
			if span > 0 {
				v = uint8((y - lo) / span * 255)
			}
			img.SetGray(x, n-1-z, color.Gray{Y: v})
		}
	}
	return img
}

func toRGBA(c [3]float32) color.RGBA {
	return color.RGBA{R: unit8(c[0]), G: unit8(c[1]), B: unit8(c[2]), A: 255}
}

func unit8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

// Save encodes img to path, picking PNG or BMP from the extension, and
// creates the parent directory if needed.
func Save(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".bmp" {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	switch ext {
	case ".bmp":
		err = bmp.Encode(file, img)
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", ext, err)
	}
	return file.Close()
}
