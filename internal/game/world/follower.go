package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// StaticFollower stays wherever Pos is set.
type StaticFollower struct {
	Pos mgl32.Vec3
}

// Position implements Follower.
func (f *StaticFollower) Position() mgl32.Vec3 {
	return f.Pos
}

// PathFollower moves at a constant speed through a list of waypoints on the
// XZ plane, then keeps walking along its last heading.
type PathFollower struct {
	pos       mgl32.Vec3
	speed     float32 // units per second
	waypoints []mgl32.Vec3
	next      int
	heading   mgl32.Vec3 // unit direction on XZ, zero while stopped
	stopAtEnd bool
}

// NewPathFollower creates a follower at start that visits waypoints in order
// and stops at the last one.
func NewPathFollower(start mgl32.Vec3, speed float32, waypoints ...mgl32.Vec3) *PathFollower {
	return &PathFollower{
		pos:       start,
		speed:     speed,
		waypoints: waypoints,
		stopAtEnd: true,
	}
}

// NewWalker creates a follower at start walking forever along headingDeg,
// measured clockwise from +Z toward +X.
func NewWalker(start mgl32.Vec3, headingDeg, speed float32) *PathFollower {
	rad := float64(mgl32.DegToRad(headingDeg))
	return &PathFollower{
		pos:     start,
		speed:   speed,
		heading: mgl32.Vec3{float32(math.Sin(rad)), 0, float32(math.Cos(rad))},
	}
}

// Position implements Follower.
func (f *PathFollower) Position() mgl32.Vec3 {
	return f.pos
}

// Moving reports whether Update still changes the position.
func (f *PathFollower) Moving() bool {
	if f.next < len(f.waypoints) {
		return true
	}
	return !f.stopAtEnd && f.heading.Len() > 0
}

// Update advances the follower by dt seconds.
func (f *PathFollower) Update(dt float32) {
	step := f.speed * dt
	for step > 0 && f.next < len(f.waypoints) {
		target := f.waypoints[f.next]
		delta := mgl32.Vec3{target.X() - f.pos.X(), 0, target.Z() - f.pos.Z()}
		dist := delta.Len()
		if dist <= step {
			f.pos = mgl32.Vec3{target.X(), f.pos.Y(), target.Z()}
			if dist > 0 {
				f.heading = delta.Mul(1 / dist)
			}
			f.next++
			step -= dist
			continue
		}
		f.heading = delta.Mul(1 / dist)
		f.pos = f.pos.Add(f.heading.Mul(step))
		return
	}
	if step > 0 && !f.stopAtEnd {
		f.pos = f.pos.Add(f.heading.Mul(step))
	}
}
