// Package world keeps a procedural terrain footprint centered on a moving follower.
package world

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/internal/engine/water"
)

// ErrInvalidConfig is returned by New when the configuration cannot drive a controller.
var ErrInvalidConfig = errors.New("world: invalid config")

// Follower is the reference point the terrain footprint tracks.
type Follower interface {
	Position() mgl32.Vec3
}

// Surface receives every rebuilt terrain mesh. The mesh replaces whatever the
// surface held before.
type Surface interface {
	SetMesh(mesh *terrain.Mesh) error
}

// WaterSink receives the water plane transform after each rebuild.
type WaterSink interface {
	SetPlacement(p water.Placement)
}

// State is the controller lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRegenerating
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRegenerating:
		return "regenerating"
	default:
		return "unknown"
	}
}

// MemorySurface stores the latest mesh in memory.
type MemorySurface struct {
	Mesh    *terrain.Mesh
	Updates int
}

// SetMesh implements Surface.
func (s *MemorySurface) SetMesh(mesh *terrain.Mesh) error {
	s.Mesh = mesh
	s.Updates++
	return nil
}

// MemoryWater stores the latest water placement in memory.
type MemoryWater struct {
	Placement water.Placement
	Updates   int
}

// SetPlacement implements WaterSink.
func (w *MemoryWater) SetPlacement(p water.Placement) {
	w.Placement = p
	w.Updates++
}
