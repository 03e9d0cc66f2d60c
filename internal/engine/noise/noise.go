// Package noise provides deterministic 2D coherent noise sampling for terrain generation.
package noise

import (
	"errors"
	"fmt"
)

// Kind selects the coherent noise implementation backing a Field.
type Kind string

const (
	KindPerlin  Kind = "perlin"
	KindSimplex Kind = "simplex"
)

// ErrUnknownKind is returned when a noise kind is not recognized.
var ErrUnknownKind = errors.New("unknown noise kind")

// maxUnit is the largest float64 below 1, used to keep normalized samples in [0,1).
const maxUnit = 1 - 1e-9

// Source returns coherent noise in [0,1) for a 2D coordinate.
// Implementations must be pure functions of their construction parameters and input.
type Source interface {
	Noise2D(x, y float64) float64
}

// Config holds noise source parameters.
type Config struct {
	Kind    Kind
	Seed    int64
	Alpha   float64 // Perlin octave weight divisor
	Beta    float64 // Perlin octave frequency multiplier
	Octaves int32
}

// NewSource creates the Source described by cfg.
func NewSource(cfg Config) (Source, error) {
	switch cfg.Kind {
	case KindPerlin, "":
		return NewPerlin(cfg.Alpha, cfg.Beta, cfg.Octaves, cfg.Seed), nil
	case KindSimplex:
		return NewSimplex(cfg.Seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}

// Field scales a Source by frequency and amplitude:
// Sample(x, y) = Source.Noise2D(x*Frequency, y*Frequency) * Amplitude.
type Field struct {
	Source    Source
	Frequency float64
	Amplitude float64
}

// NewField creates a noise field over src.
func NewField(src Source, frequency, amplitude float64) Field {
	return Field{Source: src, Frequency: frequency, Amplitude: amplitude}
}

// Sample returns the scaled noise value at (x, y), in [0, Amplitude).
func (f Field) Sample(x, y float64) float64 {
	return f.Source.Noise2D(x*f.Frequency, y*f.Frequency) * f.Amplitude
}

// Normalized returns Sample(x, y) / Amplitude, in [0,1).
func (f Field) Normalized(x, y float64) float64 {
	if f.Amplitude == 0 {
		return 0
	}
	return f.Sample(x, y) / f.Amplitude
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxUnit {
		return maxUnit
	}
	return v
}
