// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SunDirection converts azimuth/elevation angles in degrees to a light direction.
// Azimuth is rotation around Y measured from +Z toward +X, elevation is the
// angle above the horizon. Returns a unit vector pointing towards the sun.
func SunDirection(azimuth, elevation float32) mgl32.Vec3 {
	az := float64(mgl32.DegToRad(azimuth))
	el := float64(mgl32.DegToRad(elevation))

	return mgl32.Vec3{
		float32(math.Cos(el) * math.Sin(az)),
		float32(math.Sin(el)),
		float32(math.Cos(el) * math.Cos(az)),
	}
}
