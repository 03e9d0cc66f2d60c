package debug

import (
	"fmt"
	"image"
	"path/filepath"
	"time"
)

// ScreenshotCapture writes framebuffer captures to timestamped files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	ext       string // ".png" or ".bmp"
	now       func() time.Time
}

// NewScreenshotCapture creates a screenshot capture handler writing PNG files.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		ext:       ".png",
		now:       time.Now,
	}
}

// SetFormat switches the output encoding; ext is ".png" or ".bmp".
func (sc *ScreenshotCapture) SetFormat(ext string) {
	sc.ext = ext
}

// CaptureFromPixels captures a screenshot from raw pixel data.
// pixels should be in RGBA format with width*height*4 bytes.
// The image is flipped vertically since OpenGL has origin at bottom-left.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcY := height - 1 - y // Flip Y
		srcOffset := srcY * rowSize
		dstOffset := y * img.Stride

		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}

	return sc.CaptureFromImage(img)
}

// CaptureFromImage saves img under a fresh timestamped name.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	filename := sc.GenerateFilename()
	if err := Save(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s%s", sc.prefix, timestamp, sc.ext)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
