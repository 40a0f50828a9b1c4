package shutter

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func sampleMapOf(pairs ...any) *SampleMap {
	m := NewSampleMap(len(pairs) / 2)
	for i := 0; i < len(pairs); i += 2 {
		m.Set(pairs[i].(float64), pairs[i+1].(mgl64.Mat4))
	}
	return m
}

func TestSampleMapSetKeepsOrder(t *testing.T) {
	m := sampleMapOf(2.0, translate(2, 0, 0), 0.0, translate(0, 0, 0), 1.0, translate(1, 0, 0))
	if m.Len() != 3 {
		t.Fatalf("Len = %d, want 3", m.Len())
	}
	for i := 0; i < m.Len(); i++ {
		ti, v := m.At(i)
		if ti != float64(i) {
			t.Errorf("At(%d) time = %v, want %d", i, ti, i)
		}
		assertMatrix(t, "At", v, translate(float64(i), 0, 0), 0)
	}
}

func TestSampleMapSetReplaces(t *testing.T) {
	m := sampleMapOf(1.0, translate(1, 0, 0))
	m.Set(1, translate(5, 0, 0))
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
	got, ok := m.Get(1)
	if !ok {
		t.Fatal("Get(1) missing")
	}
	assertMatrix(t, "Get(1)", got, translate(5, 0, 0), 0)
	if _, ok := m.Get(1.5); ok {
		t.Error("Get(1.5) found a sample that was never set")
	}
}

func TestSampleMapCloneIsIndependent(t *testing.T) {
	m := sampleMapOf(0.0, translate(1, 0, 0))
	c := m.Clone()
	c.Set(0, translate(2, 0, 0))
	c.Set(1, translate(3, 0, 0))
	if m.Len() != 1 {
		t.Errorf("original Len = %d, want 1", m.Len())
	}
	got, _ := m.Get(0)
	assertMatrix(t, "original", got, translate(1, 0, 0), 0)
}

// --- ValueAt ---

func TestValueAtEmptyIsIdentity(t *testing.T) {
	var nilMap *SampleMap
	assertMatrix(t, "nil", nilMap.ValueAt(3), mgl64.Ident4(), 0)
	assertMatrix(t, "empty", NewSampleMap(0).ValueAt(3), mgl64.Ident4(), 0)
}

func TestValueAtSingleEntry(t *testing.T) {
	m := sampleMapOf(0.0, translate(1, 2, 3))
	for _, at := range []float64{-10, 0, 0.5, 99} {
		if got := m.ValueAt(at); got != translate(1, 2, 3) {
			t.Errorf("ValueAt(%v) = %v, want the only sample", at, got)
		}
	}
}

func TestValueAt(t *testing.T) {
	a := translate(0, 0, 0).Mul4(mgl64.HomogRotate3DX(0.2))
	b := translate(10, 0, 0)
	c := translate(10, 10, 0)
	m := sampleMapOf(1.0, a, 2.0, b, 4.0, c)

	tests := []struct {
		name string
		t    float64
		want mgl64.Mat4
		tol  float64
	}{
		{"exact first", 1, a, 0},
		{"exact middle", 2, b, 0},
		{"exact last", 4, c, 0},
		{"clamp before", 0, a, 0},
		{"clamp after", 5, c, 0},
		{"between second and third", 3, translate(10, 5, 0), matrixTolerance},
		{"quarter of the way", 2.5, translate(10, 2.5, 0), matrixTolerance},
		{"between first and second", 1.5, Interpolate(a, b, 0.5), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertMatrix(t, "ValueAt", m.ValueAt(tt.t), tt.want, tt.tol)
		})
	}
}
