package water

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPlaceDefaultCentering(t *testing.T) {
	p := Place(mgl32.Vec3{12, 7, -4}, 20, 0.5, 0.25, 1, -0.5)

	want := mgl32.Vec3{12, 0.5, 1}
	if p.Position != want {
		t.Errorf("Position = %v, want %v", p.Position, want)
	}
	if p.Scale != (mgl32.Vec3{20, 20, 1}) {
		t.Errorf("Scale = %v, want [20 20 1]", p.Scale)
	}
}

func TestPlaceFollowsFootprintCenter(t *testing.T) {
	p := Place(mgl32.Vec3{0, 0, 0}, 10, 0.5, 0.5, 0, 0)
	if p.Position != (mgl32.Vec3{0, 0, 0}) {
		t.Errorf("centered footprint Position = %v, want origin", p.Position)
	}
}

func TestPlacementPlane(t *testing.T) {
	p := Placement{Position: mgl32.Vec3{5, 2, 5}, Scale: mgl32.Vec3{4, 6, 1}}
	plane := p.Plane()

	want := []float32{
		3, 2, 2,
		7, 2, 2,
		7, 2, 8,
		3, 2, 8,
	}
	if len(plane.Vertices) != len(want) {
		t.Fatalf("len(Vertices) = %d, want %d", len(plane.Vertices), len(want))
	}
	for i := range want {
		if plane.Vertices[i] != want[i] {
			t.Errorf("Vertices[%d] = %v, want %v", i, plane.Vertices[i], want[i])
		}
	}
	if plane.Level != 2 {
		t.Errorf("Level = %v, want 2", plane.Level)
	}
}
