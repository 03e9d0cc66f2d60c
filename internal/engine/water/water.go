// Package water positions the water plane that accompanies a terrain footprint.
package water

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Placement is the transform applied to a unit water plane.
type Placement struct {
	Position mgl32.Vec3
	Scale    mgl32.Vec3
}

// Place centers the water plane on the terrain footprint at baseY+level and
// scales it to cover size x size. centerZ is the fraction of the footprint
// behind the follower along Z; the plane sits at the footprint center, which
// is follower.Z + size/4 for the default quarter offset.
func Place(follower mgl32.Vec3, size int, centerX, centerZ float64, baseY, level float32) Placement {
	extent := float64(size)
	return Placement{
		Position: mgl32.Vec3{
			follower.X() + float32(extent*(0.5-centerX)),
			baseY + level,
			follower.Z() + float32(extent*(0.5-centerZ)),
		},
		Scale: mgl32.Vec3{float32(size), float32(size), 1},
	}
}

// Plane holds water plane geometry ready for GPU upload.
type Plane struct {
	Vertices []float32 // Flat array: x,y,z for each vertex (4 vertices)
	Level    float32   // Water Y level in world coordinates
}

// BuildPlane creates water plane vertices covering the specified bounds.
func BuildPlane(minX, maxX, minZ, maxZ, level float32) *Plane {
	// Order: BL, BR, TR, TL for TRIANGLE_FAN rendering
	vertices := []float32{
		minX, level, minZ,
		maxX, level, minZ,
		maxX, level, maxZ,
		minX, level, maxZ,
	}

	return &Plane{
		Vertices: vertices,
		Level:    level,
	}
}

// Plane returns the quad covered by p. The plane's local X and Y axes map to
// world X and Z, so Scale.X and Scale.Y are the world extents.
func (p Placement) Plane() *Plane {
	halfX := p.Scale.X() / 2
	halfZ := p.Scale.Y() / 2
	return BuildPlane(
		p.Position.X()-halfX,
		p.Position.X()+halfX,
		p.Position.Z()-halfZ,
		p.Position.Z()+halfZ,
		p.Position.Y(),
	)
}
