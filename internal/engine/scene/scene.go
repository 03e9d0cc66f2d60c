package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terrain/internal/engine/camera"
	"github.com/Faultbox/midgard-terrain/internal/engine/lighting"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
)

// Config contains scene configuration options.
type Config struct {
	Width   int32
	Height  int32
	Palette terrain.Palette
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:   1280,
		Height:  720,
		Palette: terrain.DefaultPalette(),
	}
}

// Light is a single directional light with an ambient term.
type Light struct {
	Direction mgl32.Vec3 // Towards the light
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
}

// DefaultLight returns an afternoon sun.
func DefaultLight() Light {
	return Light{
		Direction: lighting.SunDirection(135, 50),
		Ambient:   mgl32.Vec3{0.35, 0.35, 0.38},
		Diffuse:   mgl32.Vec3{0.8, 0.78, 0.72},
	}
}

// Scene owns the terrain and water renderers.
type Scene struct {
	config Config

	terrainRenderer *TerrainRenderer
	waterRenderer   *WaterRenderer

	Light      Light
	ClearColor mgl32.Vec4
}

// New creates a new scene. Requires a current GL context.
func New(cfg Config) (*Scene, error) {
	s := &Scene{
		config:     cfg,
		Light:      DefaultLight(),
		ClearColor: mgl32.Vec4{0.55, 0.7, 0.85, 1},
	}

	var err error
	s.terrainRenderer, err = NewTerrainRenderer(cfg.Palette)
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating terrain renderer: %w", err)
	}

	s.waterRenderer, err = NewWaterRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating water renderer: %w", err)
	}

	return s, nil
}

// Terrain returns the terrain renderer, which accepts rebuilt meshes.
func (s *Scene) Terrain() *TerrainRenderer { return s.terrainRenderer }

// Water returns the water renderer, which accepts water placements.
func (s *Scene) Water() *WaterRenderer { return s.waterRenderer }

// Aspect returns the viewport aspect ratio.
func (s *Scene) Aspect() float32 {
	if s.config.Height == 0 {
		return 1
	}
	return float32(s.config.Width) / float32(s.config.Height)
}

// Update advances animations by dt seconds.
func (s *Scene) Update(dt float32) {
	s.waterRenderer.Update(dt)
}

// Render draws the scene into the default framebuffer with the camera following target.
func (s *Scene) Render(cam *camera.FollowCamera, target mgl32.Vec3) {
	s.RenderWithViewProj(cam.ViewProjection(target, s.Aspect()))
}

// RenderWithViewProj draws the scene with a pre-computed view-projection matrix.
func (s *Scene) RenderWithViewProj(viewProj mgl32.Mat4) {
	gl.Viewport(0, 0, s.config.Width, s.config.Height)
	gl.ClearColor(s.ClearColor.X(), s.ClearColor.Y(), s.ClearColor.Z(), s.ClearColor.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	s.terrainRenderer.Render(viewProj, s.Light)

	// Water is visible from below too.
	gl.Disable(gl.CULL_FACE)
	s.waterRenderer.Render(viewProj)
}

// Resize updates the scene dimensions.
func (s *Scene) Resize(width, height int32) {
	s.config.Width = width
	s.config.Height = height
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	if s.terrainRenderer != nil {
		s.terrainRenderer.Destroy()
	}
	if s.waterRenderer != nil {
		s.waterRenderer.Destroy()
	}
}
