package shutter

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Interpolation ---

func BenchmarkInterpolate(b *testing.B) {
	m0 := mgl64.Translate3D(1, 2, 3).Mul4(mgl64.HomogRotate3DY(0.3)).Mul4(mgl64.Scale3D(1, 2, 3))
	m1 := mgl64.Translate3D(4, 5, 6).Mul4(mgl64.HomogRotate3DY(1.2)).Mul4(mgl64.Scale3D(2, 2, 2))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Interpolate(m0, m1, 0.4)
	}
}

func BenchmarkValueAt(b *testing.B) {
	m := NewSampleMap(64)
	for i := 0; i < 64; i++ {
		m.Set(float64(i), mgl64.Translate3D(float64(i), 0, 0).Mul4(mgl64.HomogRotate3DZ(float64(i)*0.1)))
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.ValueAt(31.5)
	}
}

// --- Sample selection ---

func BenchmarkSelectSampleTimes(b *testing.B) {
	ts := UniformSampling{Start: 0, Step: 1.0 / 96}
	w := NewWindow(100, 24, -0.5, 0.5)
	inherited := SampleTimes{99.4 / 24, 100 / 24.0, 100.6 / 24}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = SelectSampleTimes(ts, 10000, w, inherited)
	}
}

// --- Hierarchy ---

// benchHierarchy builds fanout^depth leaves under a single root.
func benchHierarchy(fanout, depth int) *Node {
	track := uniformTrack(48, func(i int) mgl64.Mat4 {
		return mgl64.Translate3D(float64(i), 0, 0).Mul4(mgl64.HomogRotate3DZ(float64(i) * 0.05))
	})
	root := NewNode("root", track)
	var grow func(parent *Node, level int)
	grow = func(parent *Node, level int) {
		if level == depth {
			return
		}
		for i := 0; i < fanout; i++ {
			child := NewNode(fmt.Sprintf("n%d", i), track)
			parent.AddChild(child)
			grow(child, level+1)
		}
	}
	grow(root, 0)
	return root
}

func BenchmarkResolve1000(b *testing.B) {
	root := benchHierarchy(10, 3) // 1111 nodes
	r := NewResolver(NewWindow(24, 1, -0.5, 0.5))
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Resolve(ctx, root); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResolve1000Parallel(b *testing.B) {
	root := benchHierarchy(10, 3)
	r := NewResolver(NewWindow(24, 1, -0.5, 0.5))
	r.Parallel = true
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Resolve(ctx, root); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResolveInstanced(b *testing.B) {
	root := benchHierarchy(10, 3)
	r := NewResolver(NewWindow(24, 1, -0.5, 0.5))
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Instances = NewInstanceTable()
		if _, err := r.Resolve(ctx, root); err != nil {
			b.Fatal(err)
		}
	}
}
