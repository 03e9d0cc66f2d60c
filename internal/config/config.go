// Package config handles terrain generator configuration loading and management.
package config

import (
	"github.com/Faultbox/midgard-terrain/internal/engine/biome"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
)

// Config holds all generator settings.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Noise   NoiseConfig   `yaml:"noise"`
	Biomes  BiomesConfig  `yaml:"biomes"`
	Heights HeightsConfig `yaml:"heights"`
	Water   WaterConfig   `yaml:"water"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// TerrainConfig holds footprint and regeneration settings.
type TerrainConfig struct {
	Size                int     `yaml:"size"`                 // Quads per side
	BaseY               float32 `yaml:"base_y"`               // Elevation of height zero
	DistanceDenominator float64 `yaml:"distance_denominator"` // Regenerate after size/denominator units of travel
	CenterX             float64 `yaml:"center_x"`             // Fraction of the footprint behind the follower on X
	CenterZ             float64 `yaml:"center_z"`             // Fraction of the footprint behind the follower on Z
}

// NoiseConfig holds noise source settings.
type NoiseConfig struct {
	Kind      string  `yaml:"kind"` // perlin or simplex
	Seed      int64   `yaml:"seed"`
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`
	Alpha     float64 `yaml:"alpha"`
	Beta      float64 `yaml:"beta"`
	Octaves   int32   `yaml:"octaves"`
}

// BiomesConfig holds the ordered classification rules and smoothing threshold.
type BiomesConfig struct {
	RequiredNeighbors float64      `yaml:"required_neighbors"`
	Rules             []biome.Rule `yaml:"rules"`
}

// HeightsConfig holds the vertical transform for each biome.
type HeightsConfig struct {
	Plains   terrain.HeightProfile `yaml:"plains"`
	Mud      terrain.HeightProfile `yaml:"mud"`
	Mountain terrain.HeightProfile `yaml:"mountain"`
	Snow     terrain.HeightProfile `yaml:"snow"`
}

// Profiles returns the height profiles indexed by biome.
func (h HeightsConfig) Profiles() terrain.Profiles {
	var p terrain.Profiles
	p[biome.Plains] = h.Plains
	p[biome.Mud] = h.Mud
	p[biome.Mountain] = h.Mountain
	p[biome.Snow] = h.Snow
	return p
}

// WaterConfig holds water plane settings.
type WaterConfig struct {
	Level float32 `yaml:"level"` // Relative to terrain base_y
}

// ViewerConfig holds display settings for the terrain viewer.
type ViewerConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Fullscreen  bool    `yaml:"fullscreen"`
	VSync       bool    `yaml:"vsync"`
	WalkSpeed   float32 `yaml:"walk_speed"`   // Follower speed in units per second
	WalkHeading float32 `yaml:"walk_heading"` // Degrees clockwise from +Z
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	defaults := terrain.DefaultProfiles()
	cfg := &Config{
		Terrain: TerrainConfig{
			Size:                20,
			BaseY:               0,
			DistanceDenominator: 4,
			CenterX:             0.5,
			CenterZ:             0.25,
		},
		Noise: NoiseConfig{
			Kind:      "perlin",
			Seed:      1,
			Frequency: 0.3,
			Amplitude: 2,
			Alpha:     2,
			Beta:      2,
			Octaves:   3,
		},
		Biomes: BiomesConfig{
			RequiredNeighbors: 2,
			Rules: []biome.Rule{
				{Biome: biome.Mud, Mode: biome.ModeBelow},
				{Biome: biome.Mountain, Mode: biome.ModeAbove, Level: 1.25},
				{Biome: biome.Snow, Mode: biome.ModeAbove, Level: 1.4, RemoveFrom: biome.From(biome.Mountain)},
			},
		},
		Heights: HeightsConfig{
			Plains:   defaults[biome.Plains],
			Mud:      defaults[biome.Mud],
			Mountain: defaults[biome.Mountain],
			Snow:     defaults[biome.Snow],
		},
		Water: WaterConfig{
			Level: -0.3,
		},
		Viewer: ViewerConfig{
			Width:       1280,
			Height:      720,
			Fullscreen:  false,
			VSync:       true,
			WalkSpeed:   3,
			WalkHeading: 30,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}

	// Mud sits one unit above the water surface
	cfg.Biomes.Rules[0].Level = float64(cfg.Water.Level) + 1
	return cfg
}

// Threshold returns the follower travel distance that triggers regeneration.
func (t TerrainConfig) Threshold() float32 {
	return float32(float64(t.Size) / t.DistanceDenominator)
}
