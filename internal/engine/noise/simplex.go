package noise

import (
	"github.com/ojrac/opensimplex-go"
)

// Simplex is a Source backed by OpenSimplex noise.
type Simplex struct {
	n opensimplex.Noise
}

// NewSimplex creates a Simplex source for seed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.NewNormalized(seed)}
}

// Noise2D returns normalized OpenSimplex noise in [0,1).
func (s *Simplex) Noise2D(x, y float64) float64 {
	return clampUnit(s.n.Eval2(x, y))
}
