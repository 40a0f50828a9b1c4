package shutter

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

// matrixTolerance is the per-component tolerance for results that pass
// through a decomposition.
const matrixTolerance = 1e-5

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want mgl64.Mat4, tol float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
			return
		}
	}
}

func assertVec3(t *testing.T, name string, got, want mgl64.Vec3, tol float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}

func translate(x, y, z float64) mgl64.Mat4 {
	return mgl64.Translate3D(x, y, z)
}

func rotateZ(angle float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(angle)
}

// uniformTrack returns a track of n samples, one per second from zero, built
// by fn(i).
func uniformTrack(n int, fn func(i int) mgl64.Mat4) *Track {
	samples := make([]mgl64.Mat4, n)
	for i := range samples {
		samples[i] = fn(i)
	}
	return NewTrack(UniformSampling{Start: 0, Step: 1}, samples)
}
