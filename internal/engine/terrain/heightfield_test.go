package terrain

import (
	"testing"

	"github.com/Faultbox/midgard-terrain/internal/engine/biome"
	"github.com/Faultbox/midgard-terrain/internal/engine/noise"
)

type constSource float64

func (c constSource) Noise2D(x, y float64) float64 { return float64(c) }

type stubLabels struct {
	biomes    map[[2]int]biome.Biome
	neighbors int
}

func (s stubLabels) BiomeAt(x, z int) biome.Biome { return s.biomes[[2]int{x, z}] }

func (s stubLabels) NeighborCount(x, z int) int { return s.neighbors }

func (s stubLabels) WorldXZ(x, z int) (float64, float64) { return float64(x), float64(z) }

func TestHeightAtPerBiome(t *testing.T) {
	field := noise.NewField(constSource(0.5), 0.3, 2) // sample = 1.0
	labels := stubLabels{biomes: map[[2]int]biome.Biome{
		{0, 0}: biome.Plains,
		{1, 0}: biome.Mud,
		{2, 0}: biome.Mountain,
		{3, 0}: biome.Snow,
	}, neighbors: 5}
	hf := NewHeightField(field, DefaultProfiles(), labels)

	tests := []struct {
		name string
		x    int
		want float64
	}{
		{"plains uses raw sample", 0, 1.0},
		{"mud sinks below zero", 1, 0.0},
		{"mountain lifts", 2, 2.0},
		{"snow lifts more", 3, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hf.HeightAt(tt.x, 0); got != tt.want {
				t.Errorf("HeightAt(%d,0) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestHeightAtPeakBonus(t *testing.T) {
	field := noise.NewField(constSource(0.5), 1, 2)
	profiles := DefaultProfiles()

	surrounded := stubLabels{biomes: map[[2]int]biome.Biome{{1, 1}: biome.Mountain}, neighbors: 8}
	partial := stubLabels{biomes: map[[2]int]biome.Biome{{1, 1}: biome.Mountain}, neighbors: 7}

	full := NewHeightField(field, profiles, surrounded).HeightAt(1, 1)
	edge := NewHeightField(field, profiles, partial).HeightAt(1, 1)
	if full-edge != profiles[biome.Mountain].PeakBonus {
		t.Errorf("peak bonus = %v, want %v", full-edge, profiles[biome.Mountain].PeakBonus)
	}

	profiles[biome.Mountain].PeakNeighbors = 6
	relaxed := NewHeightField(field, profiles, partial).HeightAt(1, 1)
	if relaxed != full {
		t.Errorf("HeightAt with peak_neighbors 6 = %v, want %v", relaxed, full)
	}
}

func TestHeightAtDefaultPeakNeighbors(t *testing.T) {
	field := noise.NewField(constSource(0), 1, 1)
	var profiles Profiles
	profiles[biome.Mountain] = HeightProfile{PeakBonus: 2}

	seven := stubLabels{biomes: map[[2]int]biome.Biome{{0, 0}: biome.Mountain}, neighbors: 7}
	if got := NewHeightField(field, profiles, seven).HeightAt(0, 0); got != 0 {
		t.Errorf("HeightAt with 7 neighbors = %v, want 0", got)
	}
	eight := stubLabels{biomes: map[[2]int]biome.Biome{{0, 0}: biome.Mountain}, neighbors: 8}
	if got := NewHeightField(field, profiles, eight).HeightAt(0, 0); got != 2 {
		t.Errorf("HeightAt with 8 neighbors = %v, want 2", got)
	}
}
