// Package terrain builds biome-partitioned terrain meshes from a height field.
package terrain

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terrain/internal/engine/biome"
)

// Vertex is an interleaved vertex ready for GPU upload.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Submesh is the triangle index list drawn with one biome's material.
type Submesh struct {
	Biome   biome.Biome
	Indices []uint32
}

// Group locates a submesh inside a flattened index buffer for batched rendering.
type Group struct {
	Biome      biome.Biome
	StartIndex int32
	IndexCount int32
}

// Mesh holds a complete terrain mesh.
// Positions, Normals and UVs share the grid index mapping x*(Size+1)+z.
type Mesh struct {
	Size      int
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Submeshes []Submesh // one per biome, in biome order
	Bounds    Bounds
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}
