package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/midgard-terrain/internal/engine/biome"
	"github.com/Faultbox/midgard-terrain/internal/engine/noise"
)

// Validate reports every out-of-range setting at once.
func (c *Config) Validate() error {
	var err error

	if c.Terrain.Size <= 0 {
		err = multierr.Append(err, fmt.Errorf("terrain.size must be positive, got %d", c.Terrain.Size))
	}
	if c.Terrain.DistanceDenominator <= 0 {
		err = multierr.Append(err, fmt.Errorf("terrain.distance_denominator must be positive, got %v", c.Terrain.DistanceDenominator))
	}
	if c.Terrain.CenterX < 0 || c.Terrain.CenterX > 1 {
		err = multierr.Append(err, fmt.Errorf("terrain.center_x must be in [0,1], got %v", c.Terrain.CenterX))
	}
	if c.Terrain.CenterZ < 0 || c.Terrain.CenterZ > 1 {
		err = multierr.Append(err, fmt.Errorf("terrain.center_z must be in [0,1], got %v", c.Terrain.CenterZ))
	}

	switch noise.Kind(c.Noise.Kind) {
	case noise.KindPerlin, noise.KindSimplex:
	default:
		err = multierr.Append(err, fmt.Errorf("noise.kind must be perlin or simplex, got %q", c.Noise.Kind))
	}
	if c.Noise.Frequency <= 0 || c.Noise.Frequency >= 1 {
		err = multierr.Append(err, fmt.Errorf("noise.frequency must be in (0,1), got %v", c.Noise.Frequency))
	}
	if c.Noise.Amplitude <= 0 {
		err = multierr.Append(err, fmt.Errorf("noise.amplitude must be positive, got %v", c.Noise.Amplitude))
	}
	if c.Noise.Octaves < 0 {
		err = multierr.Append(err, fmt.Errorf("noise.octaves must not be negative, got %d", c.Noise.Octaves))
	}

	if c.Biomes.RequiredNeighbors < 0 {
		err = multierr.Append(err, fmt.Errorf("biomes.required_neighbors must not be negative, got %v", c.Biomes.RequiredNeighbors))
	}
	if rulesErr := biome.ValidateRules(c.Biomes.Rules); rulesErr != nil {
		for _, e := range multierr.Errors(rulesErr) {
			err = multierr.Append(err, fmt.Errorf("biomes.rules: %w", e))
		}
	}

	for b, p := range c.Heights.Profiles() {
		if p.PeakNeighbors > 8 {
			err = multierr.Append(err, fmt.Errorf("heights.%s.peak_neighbors must be at most 8, got %d", biome.Biome(b), p.PeakNeighbors))
		}
	}

	if c.Viewer.Width < 0 || c.Viewer.Height < 0 {
		err = multierr.Append(err, fmt.Errorf("viewer size must not be negative, got %dx%d", c.Viewer.Width, c.Viewer.Height))
	}

	return err
}

// NoiseSource returns the noise.Config described by c.Noise.
func (c *Config) NoiseSource() noise.Config {
	return noise.Config{
		Kind:    noise.Kind(c.Noise.Kind),
		Seed:    c.Noise.Seed,
		Alpha:   c.Noise.Alpha,
		Beta:    c.Noise.Beta,
		Octaves: c.Noise.Octaves,
	}
}
