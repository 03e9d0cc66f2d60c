// Package renderer provides OpenGL initialization and frame control.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Info describes the active OpenGL implementation.
type Info struct {
	Version  string
	Renderer string
	GLSL     string
}

// Renderer owns global OpenGL state for the viewer.
type Renderer struct {
	config Config
	info   Info
}

// New initializes OpenGL and the default pipeline state.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.info = Info{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		GLSL:     gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
	logger.Info("OpenGL initialized",
		zap.String("version", r.info.Version),
		zap.String("renderer", r.info.Renderer),
		zap.String("glsl", r.info.GLSL),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.FrontFace(gl.CCW)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Info returns the OpenGL implementation strings.
func (r *Renderer) Info() Info {
	return r.info
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// CheckError returns the pending OpenGL error, if any.
func (r *Renderer) CheckError(op string) error {
	return glError(op, gl.GetError())
}

func glError(op string, code uint32) error {
	if code == gl.NO_ERROR {
		return nil
	}
	return fmt.Errorf("%s: GL error 0x%x", op, code)
}

// Close logs renderer shutdown. GL resources belong to the scene.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
