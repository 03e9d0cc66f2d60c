package world

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/engine/biome"
	"github.com/Faultbox/midgard-terrain/internal/engine/noise"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/internal/engine/water"
)

// Controller rebuilds the terrain around its follower whenever the follower
// has moved far enough from the center of the last build.
type Controller struct {
	terrainCfg config.TerrainConfig
	profiles   terrain.Profiles
	waterLevel float32
	threshold  float32

	follower Follower
	surface  Surface
	sink     WaterSink
	log      *zap.Logger

	field      noise.Field
	classifier *biome.Classifier
	mesher     *terrain.Mesher

	state         State
	built         bool
	center        mgl32.Vec3
	mesh          *terrain.Mesh
	regenerations int
}

// New creates a controller. sink may be nil when no water plane is drawn.
func New(cfg *config.Config, follower Follower, surface Surface, sink WaterSink, log *zap.Logger) (*Controller, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if follower == nil || surface == nil {
		return nil, fmt.Errorf("%w: follower and surface are required", ErrInvalidConfig)
	}
	if log == nil {
		log = zap.NewNop()
	}

	src, err := noise.NewSource(cfg.NoiseSource())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	field := noise.NewField(src, cfg.Noise.Frequency, cfg.Noise.Amplitude)

	classifier, err := biome.NewClassifier(field, biome.Config{
		Rules:             cfg.Biomes.Rules,
		RequiredNeighbors: cfg.Biomes.RequiredNeighbors,
	}, log.Named("biome"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &Controller{
		terrainCfg: cfg.Terrain,
		profiles:   cfg.Heights.Profiles(),
		waterLevel: cfg.Water.Level,
		threshold:  cfg.Terrain.Threshold(),
		follower:   follower,
		surface:    surface,
		sink:       sink,
		log:        log,
		field:      field,
		classifier: classifier,
		mesher:     terrain.NewMesher(),
		state:      StateIdle,
	}, nil
}

// Start builds the first terrain around the follower's current position.
func (c *Controller) Start() error {
	return c.CreateTerrain()
}

// Tick rebuilds the terrain when the follower has moved strictly farther than
// size/distance_denominator from the last center, and reports whether it did.
// A Tick before any build behaves like Start.
func (c *Controller) Tick() (bool, error) {
	if c.built {
		moved := c.follower.Position().Sub(c.center).Len()
		if moved <= c.threshold {
			return false, nil
		}
		c.log.Debug("follower left footprint center",
			zap.Float32("moved", moved),
			zap.Float32("threshold", c.threshold))
	}
	if err := c.CreateTerrain(); err != nil {
		return false, err
	}
	return true, nil
}

// CreateTerrain runs the full pipeline around the follower's current position
// and hands the result to the surface and water sink.
func (c *Controller) CreateTerrain() error {
	c.state = StateRegenerating
	defer func() { c.state = StateIdle }()

	center := c.follower.Position()
	size := c.terrainCfg.Size

	if err := c.classifier.Initialize(size, &StaticFollower{Pos: center}); err != nil {
		return fmt.Errorf("initializing biomes: %w", err)
	}
	if err := c.classifier.Classify(); err != nil {
		return fmt.Errorf("classifying biomes: %w", err)
	}
	if err := c.classifier.Smooth(); err != nil {
		return fmt.Errorf("smoothing biomes: %w", err)
	}

	heights := terrain.NewHeightField(c.field, c.profiles, c.classifier)
	origin := terrain.GridOrigin(center, size, c.terrainCfg.CenterX, c.terrainCfg.CenterZ, c.terrainCfg.BaseY)
	c.mesher.BuildVertices(size, origin, heights.HeightAt)
	c.mesher.BuildTriangles(size, c.classifier.BiomeAt)

	mesh := c.mesher.Mesh()
	if err := mesh.Validate(); err != nil {
		return fmt.Errorf("building terrain at %v: %w", center, err)
	}
	if err := c.surface.SetMesh(mesh); err != nil {
		return fmt.Errorf("updating terrain surface: %w", err)
	}
	if c.sink != nil {
		c.sink.SetPlacement(water.Place(center, size, c.terrainCfg.CenterX, c.terrainCfg.CenterZ,
			c.terrainCfg.BaseY, c.waterLevel))
	}

	c.center = center
	c.mesh = mesh
	c.built = true
	c.regenerations++

	c.log.Debug("terrain regenerated",
		zap.Float32("x", center.X()),
		zap.Float32("z", center.Z()),
		zap.Int("size", size),
		zap.Int("indices", mesh.IndexCount()),
		zap.Int("regenerations", c.regenerations))
	return nil
}

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// Center returns the follower position used by the last build.
func (c *Controller) Center() mgl32.Vec3 { return c.center }

// Mesh returns the last mesh handed to the surface, or nil before the first build.
func (c *Controller) Mesh() *terrain.Mesh { return c.mesh }

// Biomes returns the label grid of the last build.
func (c *Controller) Biomes() *biome.Grid { return c.classifier.Grid() }

// Regenerations returns how many builds have completed.
func (c *Controller) Regenerations() int { return c.regenerations }

// IsDegenerate reports whether err came from a mesh that broke the buffer invariants.
func IsDegenerate(err error) bool {
	return errors.Is(err, terrain.ErrDegenerateMesh)
}
