// Package game runs the interactive terrain viewer loop.
package game

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/engine/camera"
	"github.com/Faultbox/midgard-terrain/internal/engine/debug"
	"github.com/Faultbox/midgard-terrain/internal/engine/input"
	"github.com/Faultbox/midgard-terrain/internal/engine/renderer"
	"github.com/Faultbox/midgard-terrain/internal/engine/scene"
	"github.com/Faultbox/midgard-terrain/internal/engine/window"
	"github.com/Faultbox/midgard-terrain/internal/game/world"
	"github.com/Faultbox/midgard-terrain/internal/logger"
)

// Options holds viewer settings that are not part of the terrain config.
type Options struct {
	Title         string
	ScreenshotDir string // Capture the last frame here on exit, if set
}

// Game is the viewer instance: a follower walking across terrain that is
// rebuilt around it.
type Game struct {
	cfg     *config.Config
	opts    Options
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	camera   *camera.FollowCamera

	follower   *world.PathFollower
	controller *world.Controller
}

// New creates the window, GL state, scene and terrain controller.
func New(cfg *config.Config, opts Options) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing viewer",
		zap.String("title", opts.Title),
		zap.Int("width", cfg.Viewer.Width),
		zap.Int("height", cfg.Viewer.Height),
	)

	g := &Game{
		cfg:  cfg,
		opts: opts,
		log:  log,
	}

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      opts.Title,
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Drawable size differs from window size on HiDPI displays
	dw, dh := g.window.DrawableSize()

	// Create renderer (AFTER window, since OpenGL context must exist)
	g.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	sceneCfg := scene.DefaultConfig()
	sceneCfg.Width, sceneCfg.Height = int32(dw), int32(dh)
	g.scene, err = scene.New(sceneCfg)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	g.follower = world.NewWalker(mgl32.Vec3{}, cfg.Viewer.WalkHeading, cfg.Viewer.WalkSpeed)
	g.controller, err = world.New(cfg, g.follower, g.scene.Terrain(), g.scene.Water(), logger.Named("world"))
	if err != nil {
		g.Close()
		return nil, err
	}

	g.camera = camera.NewFollowCamera(cfg.Terrain.Size)
	g.camera.SetHeading(cfg.Viewer.WalkHeading)

	g.input = input.New()

	info := g.renderer.Info()
	log.Info("viewer initialized successfully",
		zap.String("gl_renderer", info.Renderer),
		zap.String("gl_version", info.Version))
	return g, nil
}

// Run builds the first terrain and runs the loop until the window closes.
func (g *Game) Run() error {
	if err := g.controller.Start(); err != nil {
		return fmt.Errorf("initial terrain: %w", err)
	}
	if err := g.renderer.CheckError("initial terrain upload"); err != nil {
		return err
	}

	g.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting viewer loop")

	for g.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
		}
		for _, event := range g.input.Events() {
			if event.Type == input.EventWindowResize {
				dw, dh := g.window.DrawableSize()
				g.renderer.Resize(dw, dh)
				g.scene.Resize(int32(dw), int32(dh))
			}
		}

		// 2. Update follower and terrain
		if err := g.update(dt); err != nil {
			return err
		}

		// 3. Render
		g.render()

		if !g.running {
			g.captureScreenshot()
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float32("dt_ms", dt*1000),
				zap.Int("regenerations", g.controller.Regenerations()),
			)
			g.window.SetTitle(fmt.Sprintf("%s - %d fps - %d rebuilds", g.opts.Title, frameCount, g.controller.Regenerations()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) update(dt float32) error {
	g.follower.Update(dt)
	rebuilt, err := g.controller.Tick()
	if err != nil {
		return fmt.Errorf("terrain update: %w", err)
	}
	if rebuilt {
		if err := g.renderer.CheckError("terrain upload"); err != nil {
			return err
		}
	}
	g.scene.Update(dt)
	return nil
}

func (g *Game) render() {
	target := g.follower.Position()
	if mesh := g.controller.Mesh(); mesh != nil {
		target = mgl32.Vec3{target.X(), mesh.Bounds.Center().Y(), target.Z()}
	}
	g.scene.Render(g.camera, target)
}

func (g *Game) captureScreenshot() {
	if g.opts.ScreenshotDir == "" {
		return
	}
	pixels, w, h := g.renderer.ReadPixels()
	name, err := debug.NewScreenshotCapture(g.opts.ScreenshotDir, "terrain").CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", name))
}

// Close cleans up viewer resources.
func (g *Game) Close() {
	g.log.Info("closing viewer")
	if g.scene != nil {
		g.scene.Destroy()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
