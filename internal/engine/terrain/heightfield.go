package terrain

import (
	"github.com/Faultbox/midgard-terrain/internal/engine/biome"
	"github.com/Faultbox/midgard-terrain/internal/engine/noise"
)

// FullNeighborhood is the neighbor count of an interior cell.
const FullNeighborhood = 8

// HeightProfile is the vertical transform applied to one biome's noise samples:
// height = Offset + sample*Scale, plus PeakBonus when at least PeakNeighbors
// neighbors share the cell's biome.
type HeightProfile struct {
	Offset        float64 `yaml:"offset"`
	Scale         float64 `yaml:"scale"`
	PeakBonus     float64 `yaml:"peak_bonus,omitempty"`
	PeakNeighbors int     `yaml:"peak_neighbors,omitempty"` // <= 0 means FullNeighborhood
}

// Profiles holds one HeightProfile per biome, indexed by biome.
type Profiles [biome.Count]HeightProfile

// DefaultProfiles returns the stock vertical transforms.
func DefaultProfiles() Profiles {
	var p Profiles
	p[biome.Plains] = HeightProfile{Scale: 1}
	p[biome.Mud] = HeightProfile{Offset: -1, Scale: 1}
	p[biome.Mountain] = HeightProfile{Offset: 0.5, Scale: 1.5, PeakBonus: 1, PeakNeighbors: FullNeighborhood}
	p[biome.Snow] = HeightProfile{Offset: 1, Scale: 1.5, PeakBonus: 0.5, PeakNeighbors: FullNeighborhood}
	return p
}

// Labels is the finished biome classification a HeightField reads.
type Labels interface {
	BiomeAt(x, z int) biome.Biome
	NeighborCount(x, z int) int
	WorldXZ(x, z int) (float64, float64)
}

// HeightField derives cell elevation from biome labels and noise.
type HeightField struct {
	field    noise.Field
	profiles Profiles
	labels   Labels
}

// NewHeightField creates a height field. labels must be fully classified and
// smoothed before HeightAt is called.
func NewHeightField(field noise.Field, profiles Profiles, labels Labels) *HeightField {
	return &HeightField{field: field, profiles: profiles, labels: labels}
}

// HeightAt returns the elevation of cell (x, z), relative to the terrain base.
func (h *HeightField) HeightAt(x, z int) float64 {
	wx, wz := h.labels.WorldXZ(x, z)
	sample := h.field.Sample(wx, wz)

	b := h.labels.BiomeAt(x, z)
	p := h.profiles[b]
	height := p.Offset + sample*p.Scale

	if p.PeakBonus != 0 {
		required := p.PeakNeighbors
		if required <= 0 {
			required = FullNeighborhood
		}
		if h.labels.NeighborCount(x, z) >= required {
			height += p.PeakBonus
		}
	}
	return height
}
