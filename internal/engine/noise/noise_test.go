package noise

import (
	"errors"
	"testing"
)

type constSource float64

func (c constSource) Noise2D(x, y float64) float64 { return float64(c) }

type echoSource struct{ lastX, lastY *float64 }

func (e echoSource) Noise2D(x, y float64) float64 {
	*e.lastX, *e.lastY = x, y
	return 0.5
}

func TestFieldSampleScales(t *testing.T) {
	var gotX, gotY float64
	f := NewField(echoSource{&gotX, &gotY}, 0.25, 4)

	got := f.Sample(8, 12)
	if got != 2 {
		t.Errorf("Sample() = %v, want 2", got)
	}
	if gotX != 2 || gotY != 3 {
		t.Errorf("source called with (%v, %v), want (2, 3)", gotX, gotY)
	}
}

func TestFieldNormalized(t *testing.T) {
	f := NewField(constSource(0.75), 0.3, 2)
	if got := f.Normalized(1, 1); got != 0.75 {
		t.Errorf("Normalized() = %v, want 0.75", got)
	}

	zero := NewField(constSource(0.75), 0.3, 0)
	if got := zero.Normalized(1, 1); got != 0 {
		t.Errorf("Normalized() with zero amplitude = %v, want 0", got)
	}
}

func TestSourcesDeterministic(t *testing.T) {
	sources := map[string]func() Source{
		"perlin":  func() Source { return NewPerlin(2, 2, 3, 42) },
		"simplex": func() Source { return NewSimplex(42) },
	}

	for name, mk := range sources {
		t.Run(name, func(t *testing.T) {
			a, b := mk(), mk()
			for i := 0; i < 200; i++ {
				x := float64(i)*0.37 - 20
				y := float64(i)*0.11 + 5
				va, vb := a.Noise2D(x, y), b.Noise2D(x, y)
				if va != vb {
					t.Fatalf("Noise2D(%v, %v) not deterministic: %v != %v", x, y, va, vb)
				}
			}
		})
	}
}

func TestSourcesInUnitRange(t *testing.T) {
	sources := map[string]Source{
		"perlin":  NewPerlin(0, 0, 0, 7),
		"simplex": NewSimplex(7),
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			for xi := -50; xi < 50; xi++ {
				for yi := -50; yi < 50; yi += 7 {
					v := src.Noise2D(float64(xi)*0.3, float64(yi)*0.3)
					if v < 0 || v >= 1 {
						t.Fatalf("Noise2D(%d, %d) = %v, want [0,1)", xi, yi, v)
					}
				}
			}
		})
	}
}

func TestSourcesVary(t *testing.T) {
	src := NewSimplex(1)
	first := src.Noise2D(0.5, 0.5)
	for i := 1; i < 50; i++ {
		if src.Noise2D(float64(i)*1.7+0.5, 0.5) != first {
			return
		}
	}
	t.Error("simplex noise returned a constant value")
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		kind    Kind
		wantErr bool
	}{
		{KindPerlin, false},
		{KindSimplex, false},
		{"", false},
		{"worley", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			src, err := NewSource(Config{Kind: tt.kind, Seed: 3})
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownKind) {
					t.Errorf("NewSource(%q) error = %v, want ErrUnknownKind", tt.kind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSource(%q) error = %v", tt.kind, err)
			}
			if src == nil {
				t.Fatalf("NewSource(%q) returned nil source", tt.kind)
			}
		})
	}
}

func TestClampUnit(t *testing.T) {
	if clampUnit(-0.2) != 0 {
		t.Error("clampUnit should clamp negatives to 0")
	}
	if v := clampUnit(1.5); v >= 1 {
		t.Errorf("clampUnit(1.5) = %v, want < 1", v)
	}
	if clampUnit(0.4) != 0.4 {
		t.Error("clampUnit should pass through in-range values")
	}
}
