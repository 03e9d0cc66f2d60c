// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FollowCamera trails a target from behind and above at a fixed pitch.
type FollowCamera struct {
	Yaw      float32 // Horizontal rotation around target (radians), 0 looks toward +Z
	Pitch    float32 // Vertical angle above the horizon (radians)
	Distance float32 // Distance from target

	FOV  float32 // Vertical field of view (radians)
	Near float32
	Far  float32

	// LookHeight raises the look-at point above the target.
	LookHeight float32
}

// NewFollowCamera creates a follow camera framing a terrain footprint of the given size.
func NewFollowCamera(size int) *FollowCamera {
	return &FollowCamera{
		Yaw:        0,
		Pitch:      0.6, // ~35 degrees
		Distance:   float32(size) * 0.9,
		FOV:        mgl32.DegToRad(45),
		Near:       0.1,
		Far:        float32(size) * 10,
		LookHeight: 1,
	}
}

// Position returns the camera position for a target.
func (c *FollowCamera) Position(target mgl32.Vec3) mgl32.Vec3 {
	offsetY := c.Distance * float32(math.Sin(float64(c.Pitch)))
	horizDist := c.Distance * float32(math.Cos(float64(c.Pitch)))
	offsetX := horizDist * float32(math.Sin(float64(c.Yaw)))
	offsetZ := horizDist * float32(math.Cos(float64(c.Yaw)))

	return mgl32.Vec3{
		target.X() - offsetX,
		target.Y() + offsetY,
		target.Z() - offsetZ,
	}
}

// ViewMatrix returns the view matrix looking at target.
func (c *FollowCamera) ViewMatrix(target mgl32.Vec3) mgl32.Mat4 {
	eye := c.Position(target)
	center := target.Add(mgl32.Vec3{0, c.LookHeight, 0})
	return mgl32.LookAtV(eye, center, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective projection for a viewport aspect ratio.
func (c *FollowCamera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// ViewProjection returns Projection(aspect) * ViewMatrix(target).
func (c *FollowCamera) ViewProjection(target mgl32.Vec3, aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.ViewMatrix(target))
}

// SetHeading points the camera along a compass heading in degrees,
// clockwise from +Z toward +X.
func (c *FollowCamera) SetHeading(degrees float32) {
	c.Yaw = mgl32.DegToRad(degrees)
}
