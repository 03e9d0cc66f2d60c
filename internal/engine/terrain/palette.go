package terrain

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terrain/internal/engine/biome"
)

// Palette holds the flat material color of each biome submesh.
type Palette [biome.Count]mgl32.Vec3

// DefaultPalette returns the stock biome colors.
func DefaultPalette() Palette {
	var p Palette
	p[biome.Plains] = mgl32.Vec3{0.36, 0.62, 0.28}
	p[biome.Mud] = mgl32.Vec3{0.42, 0.31, 0.20}
	p[biome.Mountain] = mgl32.Vec3{0.50, 0.50, 0.52}
	p[biome.Snow] = mgl32.Vec3{0.94, 0.95, 0.97}
	return p
}

// Color returns the color of b, or magenta for a label outside the palette.
func (p Palette) Color(b biome.Biome) mgl32.Vec3 {
	if !b.Valid() {
		return mgl32.Vec3{1, 0, 1}
	}
	return p[b]
}
