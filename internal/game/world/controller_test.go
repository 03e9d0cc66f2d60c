package world

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/engine/biome"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
)

func newTestController(t *testing.T, cfg *config.Config, f Follower) (*Controller, *MemorySurface, *MemoryWater) {
	t.Helper()
	surface := &MemorySurface{}
	sink := &MemoryWater{}
	c, err := New(cfg, f, surface, sink, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, surface, sink
}

// failingSurface rejects every mesh.
type failingSurface struct{ err error }

func (s failingSurface) SetMesh(*terrain.Mesh) error { return s.err }

// stateProbe records the controller state while a mesh is being delivered.
type stateProbe struct {
	c   *Controller
	got State
}

func (s *stateProbe) SetMesh(*terrain.Mesh) error {
	s.got = s.c.State()
	return nil
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Terrain.Size = 0

	_, err := New(cfg, &StaticFollower{}, &MemorySurface{}, nil, nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("New() error = %v, want ErrInvalidConfig", err)
	}

	_, err = New(config.Default(), nil, &MemorySurface{}, nil, nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New() with nil follower error = %v, want ErrInvalidConfig", err)
	}

	_, err = New(nil, &StaticFollower{}, &MemorySurface{}, nil, nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New(nil) error = %v, want ErrInvalidConfig", err)
	}
}

func TestStartBuildsMesh(t *testing.T) {
	c, surface, sink := newTestController(t, config.Default(), &StaticFollower{})

	if c.Mesh() != nil {
		t.Fatal("Mesh() before Start should be nil")
	}
	if err := c.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if surface.Updates != 1 || sink.Updates != 1 {
		t.Fatalf("updates = (%d, %d), want (1, 1)", surface.Updates, sink.Updates)
	}
	mesh := surface.Mesh
	if got := len(mesh.Positions); got != 21*21 {
		t.Errorf("vertices = %d, want %d", got, 21*21)
	}
	if got := mesh.IndexCount(); got != 20*20*6 {
		t.Errorf("indices = %d, want %d", got, 20*20*6)
	}
	if len(mesh.Submeshes) != biome.Count {
		t.Errorf("submeshes = %d, want %d", len(mesh.Submeshes), biome.Count)
	}
	if c.State() != StateIdle {
		t.Errorf("State() = %v, want idle", c.State())
	}
	if c.Regenerations() != 1 {
		t.Errorf("Regenerations() = %d, want 1", c.Regenerations())
	}
}

func TestTickBeforeStartBuilds(t *testing.T) {
	c, surface, _ := newTestController(t, config.Default(), &StaticFollower{})

	rebuilt, err := c.Tick()
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if !rebuilt || surface.Updates != 1 {
		t.Errorf("Tick() = %v with %d updates, want first build", rebuilt, surface.Updates)
	}
}

func TestRecenterThreshold(t *testing.T) {
	// size 20, denominator 4: threshold 5
	tests := []struct {
		name   string
		moveX  float32
		expect bool
	}{
		{"below threshold", 4, false},
		{"at threshold", 5, false},
		{"past threshold", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &StaticFollower{}
			c, surface, _ := newTestController(t, config.Default(), f)
			if err := c.Start(); err != nil {
				t.Fatalf("Start() error = %v", err)
			}

			f.Pos = mgl32.Vec3{tt.moveX, 0, 0}
			rebuilt, err := c.Tick()
			if err != nil {
				t.Fatalf("Tick() error = %v", err)
			}
			if rebuilt != tt.expect {
				t.Errorf("Tick() = %v, want %v", rebuilt, tt.expect)
			}

			wantUpdates := 1
			wantCenter := mgl32.Vec3{}
			if tt.expect {
				wantUpdates = 2
				wantCenter = f.Pos
			}
			if surface.Updates != wantUpdates {
				t.Errorf("surface updates = %d, want %d", surface.Updates, wantUpdates)
			}
			if c.Center() != wantCenter {
				t.Errorf("Center() = %v, want %v", c.Center(), wantCenter)
			}
		})
	}
}

func TestDeterministicBuilds(t *testing.T) {
	pos := mgl32.Vec3{37.5, 0, -12.25}
	a, sa, _ := newTestController(t, config.Default(), &StaticFollower{Pos: pos})
	b, sb, _ := newTestController(t, config.Default(), &StaticFollower{Pos: pos})

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := b.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	for i := range sa.Mesh.Positions {
		if sa.Mesh.Positions[i] != sb.Mesh.Positions[i] {
			t.Fatalf("position %d differs: %v vs %v", i, sa.Mesh.Positions[i], sb.Mesh.Positions[i])
		}
	}
	for s := range sa.Mesh.Submeshes {
		ia, ib := sa.Mesh.Submeshes[s].Indices, sb.Mesh.Submeshes[s].Indices
		if len(ia) != len(ib) {
			t.Fatalf("submesh %d sizes differ: %d vs %d", s, len(ia), len(ib))
		}
		for i := range ia {
			if ia[i] != ib[i] {
				t.Fatalf("submesh %d index %d differs", s, i)
			}
		}
	}

	// Rebuilding at the same spot reproduces the same labels.
	before := a.Biomes().Clone()
	if err := a.CreateTerrain(); err != nil {
		t.Fatalf("CreateTerrain() error = %v", err)
	}
	for i, l := range a.Biomes().Cells() {
		if l != before.Cells()[i] {
			t.Fatalf("cell %d changed between identical builds", i)
		}
	}
}

func TestZeroWeightKeepsEverythingBaseline(t *testing.T) {
	cfg := config.Default()
	cfg.Terrain.Size = 2
	cfg.Biomes.Rules = []biome.Rule{{Biome: biome.Mud, Weight: 0}}

	c, surface, _ := newTestController(t, cfg, &StaticFollower{})
	if err := c.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	subs := surface.Mesh.Submeshes
	if got := len(subs[biome.Plains].Indices); got != 24 {
		t.Errorf("plains indices = %d, want 24", got)
	}
	for _, s := range subs[1:] {
		if len(s.Indices) != 0 {
			t.Errorf("submesh %s has %d indices, want 0", s.Biome, len(s.Indices))
		}
	}
}

func TestLabelsInConfiguredSet(t *testing.T) {
	cfg := config.Default()
	cfg.Biomes.Rules = []biome.Rule{{Biome: biome.Mountain, Weight: 50}}

	c, _, _ := newTestController(t, cfg, &StaticFollower{Pos: mgl32.Vec3{3, 0, 9}})
	if err := c.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for i, l := range c.Biomes().Cells() {
		if l != biome.Plains && l != biome.Mountain {
			t.Fatalf("cell %d labeled %s, want plains or mountain", i, l)
		}
	}
}

func TestWaterFollowsFootprint(t *testing.T) {
	cfg := config.Default()
	cfg.Terrain.BaseY = 1
	cfg.Water.Level = -0.5

	c, _, sink := newTestController(t, cfg, &StaticFollower{Pos: mgl32.Vec3{12, 7, -4}})
	if err := c.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	want := mgl32.Vec3{12, 0.5, 1}
	if sink.Placement.Position != want {
		t.Errorf("water position = %v, want %v", sink.Placement.Position, want)
	}
	if sink.Placement.Scale != (mgl32.Vec3{20, 20, 1}) {
		t.Errorf("water scale = %v, want (20, 20, 1)", sink.Placement.Scale)
	}
}

func TestVerticesCenteredOnFollower(t *testing.T) {
	pos := mgl32.Vec3{100, 0, 50}
	c, surface, _ := newTestController(t, config.Default(), &StaticFollower{Pos: pos})
	if err := c.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	first := surface.Mesh.Positions[0]
	if first.X() != 90 || first.Z() != 45 {
		t.Errorf("vertex (0,0) at (%v, %v), want (90, 45)", first.X(), first.Z())
	}
	last := surface.Mesh.Positions[len(surface.Mesh.Positions)-1]
	if last.X() != 110 || last.Z() != 65 {
		t.Errorf("vertex (20,20) at (%v, %v), want (110, 65)", last.X(), last.Z())
	}
}

func TestSurfaceErrorSurfaces(t *testing.T) {
	boom := errors.New("upload failed")
	c, err := New(config.Default(), &StaticFollower{}, failingSurface{err: boom}, nil, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = c.Start()
	if !errors.Is(err, boom) {
		t.Errorf("Start() error = %v, want wrapped %v", err, boom)
	}
	if IsDegenerate(err) {
		t.Error("surface error should not be reported as degenerate")
	}
	if c.State() != StateIdle {
		t.Errorf("State() = %v after failure, want idle", c.State())
	}
	if c.Regenerations() != 0 {
		t.Errorf("Regenerations() = %d after failure, want 0", c.Regenerations())
	}
}

func TestStateDuringRegeneration(t *testing.T) {
	probe := &stateProbe{}
	c, err := New(config.Default(), &StaticFollower{}, probe, nil, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	probe.c = c

	if err := c.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if probe.got != StateRegenerating {
		t.Errorf("state during SetMesh = %v, want regenerating", probe.got)
	}
	if c.State() != StateIdle {
		t.Errorf("State() after build = %v, want idle", c.State())
	}
}

func TestWalkerTriggersRegenerations(t *testing.T) {
	walker := NewWalker(mgl32.Vec3{}, 90, 1)
	c, surface, _ := newTestController(t, config.Default(), walker)
	if err := c.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// 18 units east at threshold 5: rebuilds after 6, 12 and 18.
	for i := 0; i < 18; i++ {
		walker.Update(1)
		if _, err := c.Tick(); err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
	}
	if surface.Updates != 4 {
		t.Errorf("surface updates = %d, want 4", surface.Updates)
	}
}

func TestIsDegenerate(t *testing.T) {
	mesh := &terrain.Mesh{Size: 2}
	if err := mesh.Validate(); !IsDegenerate(err) {
		t.Errorf("IsDegenerate(%v) = false, want true", err)
	}
}

func TestStateString(t *testing.T) {
	if StateIdle.String() != "idle" || StateRegenerating.String() != "regenerating" {
		t.Errorf("unexpected state names %q, %q", StateIdle, StateRegenerating)
	}
}
