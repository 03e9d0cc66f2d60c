package noise

import (
	"github.com/aquilax/go-perlin"
)

// Default Perlin parameters.
const (
	DefaultAlpha   = 2.0
	DefaultBeta    = 2.0
	DefaultOctaves = 3
)

// Perlin is a Source backed by classic gradient noise.
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin creates a Perlin source. Zero parameters fall back to the defaults.
func NewPerlin(alpha, beta float64, octaves int32, seed int64) *Perlin {
	if alpha == 0 {
		alpha = DefaultAlpha
	}
	if beta == 0 {
		beta = DefaultBeta
	}
	if octaves <= 0 {
		octaves = DefaultOctaves
	}
	return &Perlin{p: perlin.NewPerlin(alpha, beta, octaves, seed)}
}

// Noise2D returns Perlin noise remapped from [-1,1] to [0,1).
func (s *Perlin) Noise2D(x, y float64) float64 {
	return clampUnit((s.p.Noise2D(x, y) + 1) / 2)
}
