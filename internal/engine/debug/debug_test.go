package debug

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/midgard-terrain/internal/engine/biome"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
)

func TestBiomeMapLayout(t *testing.T) {
	g := biome.NewGrid(2)
	g.Set(2, 0, biome.Snow)
	palette := terrain.DefaultPalette()

	img := BiomeMap(g, palette, 2)
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("bounds = %v, want 6x6", b)
	}

	// Cell (2, 0) sits at the bottom right.
	want := toRGBA(palette.Color(biome.Snow))
	for _, p := range []image.Point{{4, 4}, {5, 5}} {
		if got := img.RGBAAt(p.X, p.Y); got != want {
			t.Errorf("pixel %v = %v, want snow %v", p, got, want)
		}
	}
	if got := img.RGBAAt(0, 0); got != toRGBA(palette.Color(biome.Plains)) {
		t.Errorf("pixel (0,0) = %v, want plains", got)
	}
}

func TestHeightMap(t *testing.T) {
	m := terrain.NewMesher()
	m.BuildVertices(1, mgl32.Vec3{}, func(x, z int) float64 { return float64(x*2 + z) })
	m.BuildTriangles(1, func(x, z int) biome.Biome { return biome.Plains })
	mesh := m.Mesh()

	img := HeightMap(mesh)
	// Lowest vertex (0,0) is bottom left, highest (1,1) top right.
	if got := img.GrayAt(0, 1); got != (color.Gray{Y: 0}) {
		t.Errorf("lowest = %v, want black", got)
	}
	if got := img.GrayAt(1, 0); got != (color.Gray{Y: 255}) {
		t.Errorf("highest = %v, want white", got)
	}
}

func TestSaveFormats(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(1, 1, color.RGBA{R: 200, A: 255})

	bmpPath := filepath.Join(dir, "nested", "map.bmp")
	if err := Save(bmpPath, img); err != nil {
		t.Fatalf("Save(bmp) error = %v", err)
	}
	f, err := os.Open(bmpPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	decoded, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("bmp.Decode() error = %v", err)
	}
	if r, _, _, _ := decoded.At(1, 1).RGBA(); r>>8 != 200 {
		t.Errorf("decoded red = %d, want 200", r>>8)
	}

	if err := Save(filepath.Join(dir, "map.png"), img); err != nil {
		t.Errorf("Save(png) error = %v", err)
	}
	if err := Save(filepath.Join(dir, "map.gif"), img); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Save(gif) error = %v, want ErrUnknownFormat", err)
	}
}

func TestCaptureFromPixelsFlips(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "shot")
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	sc.SetFormat(".bmp")

	// 1x2: bottom row red, top row blue (GL order is bottom first).
	pixels := []byte{255, 0, 0, 255, 0, 0, 255, 255}
	name, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels() error = %v", err)
	}
	if want := filepath.Join(dir, "shot_2024-05-01_12-00-00.bmp"); name != want {
		t.Errorf("filename = %s, want %s", name, want)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("bmp.Decode() error = %v", err)
	}
	if _, _, b, _ := img.At(0, 0).RGBA(); b>>8 != 255 {
		t.Errorf("top pixel should be blue, got %v", img.At(0, 0))
	}

	if _, err := sc.CaptureFromPixels(pixels, 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}
